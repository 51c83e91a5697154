package ecs

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Epiphane/NCW-sub001/statsd"
)

// DefaultBlockSize is the number of components a Pool allocates at a time.
const DefaultBlockSize = 2048

// Config holds global configuration for entity managers and pools created after it changes.
var Config config = config{
	blockSize: DefaultBlockSize,
	logger:    zerolog.Nop(),
}

type config struct {
	blockSize int
	logger    zerolog.Logger
}

// SetBlockSize configures the block size, in elements, of pools created from now on.
func (c *config) SetBlockSize(n int) {
	if n <= 0 {
		n = DefaultBlockSize
	}
	c.blockSize = n
}

// SetLogger configures the logger handed to entity managers created from now on.
func (c *config) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

func (c *config) BlockSize() int {
	return c.blockSize
}

func (c *config) Logger() zerolog.Logger {
	return c.logger
}

// Settings is the environment driven configuration of the entity store.
type Settings struct {
	// Number of components allocated per pool block.
	BlockSize int `env:"ECS_POOL_BLOCK_SIZE" envDefault:"2048"`

	// Minimum zerolog level, e.g. "debug", "info", "warn".
	LogLevel string `env:"ECS_LOG_LEVEL" envDefault:"info"`

	// Address of a dogstatsd agent. Metrics are discarded when empty.
	StatsdAddress string `env:"ECS_STATSD_ADDRESS"`

	// Tags attached to every metric.
	StatsdTags []string `env:"ECS_STATSD_TAGS" envSeparator:","`
}

// LoadConfig reads Settings from environment variables.
func LoadConfig() (Settings, error) {
	settings := Settings{}

	if err := env.Parse(&settings); err != nil {
		return settings, eris.Wrap(err, "failed to parse ecs settings")
	}

	if err := settings.validate(); err != nil {
		return settings, eris.Wrap(err, "failed to validate ecs settings")
	}

	return settings, nil
}

func (s *Settings) validate() error {
	if s.BlockSize <= 0 {
		return eris.Errorf("block size must be positive, got %d", s.BlockSize)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", s.LogLevel)
	}
	return nil
}

// Apply installs the settings into Config, using logger as the base logger, and initialises the
// statsd client when an address is configured.
func (s *Settings) Apply(logger zerolog.Logger) error {
	if err := s.validate(); err != nil {
		return err
	}
	level, _ := zerolog.ParseLevel(s.LogLevel)

	Config.SetBlockSize(s.BlockSize)
	Config.SetLogger(logger.Level(level))

	if s.StatsdAddress != "" {
		if err := statsd.Init(s.StatsdAddress, s.StatsdTags); err != nil {
			return eris.Wrap(err, "failed to initialise statsd")
		}
	}
	return nil
}
