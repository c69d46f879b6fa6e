package main

import (
	"io"
	"strings"
	"sync"

	"webpconv/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loggerTo rebinds the configured logger to w so command output and logs
// follow cobra's writers.
func (c *commandContext) loggerTo(w io.Writer) {
	if c.config != nil {
		c.config.Logger = config.NewLogger(c.config.Logging.Level, w)
	}
}
