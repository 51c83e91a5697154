package bench

import (
	"testing"

	ncw "github.com/Epiphane/NCW-sub001"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func populate(b *testing.B) *ncw.EntityManager {
	b.Helper()
	manager := ncw.NewEntityManager(nil)
	for i := 0; i < nPosVel; i++ {
		id, _ := manager.Create()
		ncw.Add(manager, id, Position{})
		ncw.Add(manager, id, Velocity{X: 1, Y: 1})
	}
	for i := 0; i < nPos; i++ {
		id, _ := manager.Create()
		ncw.Add(manager, id, Position{})
	}
	return manager
}

func BenchmarkIterNCWEach(b *testing.B) {
	b.StopTimer()
	manager := populate(b)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		ncw.Each2(manager, func(_ ncw.EntityID, pos *Position, vel *Velocity) {
			pos.X += vel.X
			pos.Y += vel.Y
		})
	}
}

func BenchmarkIterNCWHandle(b *testing.B) {
	b.StopTimer()
	manager := populate(b)
	view := ncw.View2[Position, Velocity](manager)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for id := range view.All() {
			pos, _ := ncw.Get[Position](manager, id)
			vel, _ := ncw.Get[Velocity](manager, id)
			p, v := pos.MustGet(), vel.MustGet()
			p.X += v.X
			p.Y += v.Y
		}
	}
}
