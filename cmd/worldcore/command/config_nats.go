package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/messaging"
)

type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (c *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartTimeout != "" {
		if _, err := time.ParseDuration(c.StartTimeout); err != nil {
			el.Add(fmt.Errorf("parsing nats.start_timeout: %w", err))
		}
	}
	if c.Port < -1 || c.Port > 65535 {
		el.Add(fmt.Errorf("nats.port %d out of range", c.Port))
	}

	return el.Err()
}

func (c *NatsConfig) buildServer() (*messaging.Server, error) {
	var opts []messaging.ServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	return messaging.NewServer(opts...)
}
