package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpuzzles/config"
)

func TestLoadCallsLoadFuncOnce(t *testing.T) {
	is := is.New(t)
	c := New()
	cfg := config.DefaultConfig()
	calls := 0
	lf := func(cfg *config.Config, key string) (any, error) {
		calls++
		return "value-for-" + key, nil
	}
	for i := 0; i < 3; i++ {
		obj, err := c.Load(cfg, "foo", lf)
		is.NoErr(err)
		is.Equal(obj.(string), "value-for-foo")
	}
	is.Equal(calls, 1)

	c.Evict("foo")
	_, err := c.Load(cfg, "foo", lf)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadIsNotCached(t *testing.T) {
	is := is.New(t)
	c := New()
	boom := errors.New("boom")
	fail := true
	lf := func(cfg *config.Config, key string) (any, error) {
		if fail {
			return nil, boom
		}
		return 42, nil
	}
	_, err := c.Load(nil, "k", lf)
	is.True(errors.Is(err, boom))
	fail = false
	obj, err := c.Load(nil, "k", lf)
	is.NoErr(err)
	is.Equal(obj.(int), 42)
}

func TestPut(t *testing.T) {
	is := is.New(t)
	c := New()
	c.Put("k", 7)
	obj, err := c.Load(nil, "k", func(*config.Config, string) (any, error) {
		return nil, errors.New("should not be called")
	})
	is.NoErr(err)
	is.Equal(obj.(int), 7)
}
