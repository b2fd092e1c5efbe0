package bot

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const requestTimeout = 10 * time.Second

type Client struct {
	// NATS connection
	nc      *nats.Conn
	channel string
}

func NewClient(nc *nats.Conn, channel string) *Client {
	return &Client{nc: nc, channel: channel}
}

// Do sends a request to the bot and waits for its response. A response
// carrying an error is returned as an error.
func (c *Client) Do(req *Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	res, err := c.nc.Request(c.channel, data, requestTimeout)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		log.Error().Msgf("%v for request", err)
		return nil, err
	}
	log.Debug().Msgf("res: %v", string(res.Data))

	resp := &Response{}
	if err := json.Unmarshal(res.Data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("Bot returned: " + resp.Error)
	}
	return resp, nil
}
