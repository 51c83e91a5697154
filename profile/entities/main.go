// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	ecs "github.com/Epiphane/NCW-sub001"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	settings, err := ecs.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := settings.Apply(logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply configuration")
	}

	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		m := ecs.NewEntityManager(nil)

		for range iters {
			for range numEntities {
				if _, err := m.Create(); err != nil {
					panic(err)
				}
			}
			for id := range m.EntitiesWithComponents().All() {
				_ = ecs.EnqueueAdd(m, id, comp1{V: 1})
				_ = ecs.EnqueueAdd(m, id, comp2{W: 1})
			}
			ecs.Each2(m, func(id ecs.EntityID, c1 *comp1, c2 *comp2) {
				c1.V += c2.V
				c1.W += c2.W
				_ = m.EnqueueDestroy(id)
			})
		}
	}
}
