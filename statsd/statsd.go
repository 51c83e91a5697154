// Package statsd is a helper package that wraps the few statsd calls the entity store makes.
// It hides the datadog dependency behind a package level client that discards everything until
// Init is called.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// SetClient replaces the global client. Tests use it to capture metrics.
func SetClient(c ddstatsd.ClientInterface) {
	if c == nil {
		c = &ddstatsd.NoOpClient{}
	}
	client = c
}

// EmitSystemTiming reports how long a system update took.
func EmitSystemTiming(start time.Time, system string) {
	duration := time.Since(start)
	err := Client().Timing("system.update", duration, []string{"system:" + system}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit system timing: %v", err)
	}
}

// EmitEntityGauges reports the live entity count and the slot high-water mark.
func EmitEntityGauges(size, capacity int) {
	if err := Client().Gauge("entities.size", float64(size), nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit entity size: %v", err)
	}
	if err := Client().Gauge("entities.capacity", float64(capacity), nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit entity capacity: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("ecs."),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}
	// Success! replace the global client
	client = newClient
	return nil
}
