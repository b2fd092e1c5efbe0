package cache

import (
	"sync"

	"github.com/domino14/wordpuzzles/config"
	"github.com/rs/zerolog/log"
)

// ObjectCache holds large objects that are expensive to load, such as
// serialized dictionary tries, so that a long-running process loads each one
// only once. There is no process-wide instance; whoever needs one owns it and
// hands it to the loaders.
type ObjectCache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc loads the object named by key.
type LoadFunc func(cfg *config.Config, key string) (any, error)

// New creates an empty cache.
func New() *ObjectCache {
	return &ObjectCache{objects: make(map[string]any)}
}

func (c *ObjectCache) load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the object for key, calling loadFunc the first time the key
// is requested. A failed load is not cached.
func (c *ObjectCache) Load(cfg *config.Config, key string, loadFunc LoadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	return c.load(cfg, key, loadFunc)
}

// Put stores an already-loaded object.
func (c *ObjectCache) Put(key string, obj any) {
	c.Lock()
	defer c.Unlock()
	c.objects[key] = obj
}

// Evict drops the object for key, if present.
func (c *ObjectCache) Evict(key string) {
	c.Lock()
	defer c.Unlock()
	delete(c.objects, key)
}
