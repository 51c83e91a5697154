package system

import (
	"reflect"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	ecs "github.com/Epiphane/NCW-sub001"
	"github.com/Epiphane/NCW-sub001/log"
	"github.com/Epiphane/NCW-sub001/statsd"
)

var _ log.Loggable = &Manager{}

var (
	ErrDuplicateSystem   = eris.New("system is already registered")
	ErrAlreadyConfigured = eris.New("systems are already configured")
	ErrNotConfigured     = eris.New("systems must be configured before they are updated")
)

// System is one stage of the simulation loop.
type System interface {
	Update(entities *ecs.EntityManager, events *ecs.EventBus, dt time.Duration) error
}

// Configurer is implemented by systems that need a setup step, typically to subscribe to events,
// before the first update.
type Configurer interface {
	Configure(entities *ecs.EntityManager, events *ecs.EventBus) error
}

// Benchmark is the average update time of one system over its recent updates.
type Benchmark struct {
	Name    string
	Average time.Duration
}

type entry struct {
	name   string
	family ecs.Family
	system System
	timer  *timer
	logger *zerolog.Logger
}

// Manager owns the systems of a simulation and updates them in registration order.
type Manager struct {
	entities *ecs.EntityManager
	events   *ecs.EventBus
	logger   zerolog.Logger
	samples  int

	systems    []entry
	families   map[ecs.Family]struct{}
	configured bool
}

type Option func(*Manager)

// WithLogger sets the logger system sub-loggers derive from. Defaults to ecs.Config.Logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSamples sets how many recent updates Benchmarks averages over.
func WithSamples(n int) Option {
	return func(m *Manager) {
		m.samples = n
	}
}

func NewManager(entities *ecs.EntityManager, events *ecs.EventBus, opts ...Option) *Manager {
	m := &Manager{
		entities: entities,
		events:   events,
		logger:   ecs.Config.Logger(),
		samples:  DefaultSamples,
		families: make(map[ecs.Family]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers s. Each system type can be registered once, and only before Configure.
func Add[S System](m *Manager, s S) (S, error) {
	name := systemName[S]()
	if m.configured {
		return s, eris.Wrapf(ErrAlreadyConfigured, "cannot add system %s", name)
	}
	family := ecs.SystemFamilyOf[S]()
	if _, ok := m.families[family]; ok {
		return s, eris.Wrapf(ErrDuplicateSystem, "cannot add system %s", name)
	}

	m.families[family] = struct{}{}
	m.systems = append(m.systems, entry{
		name:   name,
		family: family,
		system: s,
		timer:  newTimer(m.samples),
		logger: log.CreateSystemLogger(&m.logger, name),
	})
	return s, nil
}

// Configure runs the Configure step of every system that has one, in registration order. It must
// be called once, after all systems are added.
func (m *Manager) Configure() error {
	if m.configured {
		return ErrAlreadyConfigured
	}
	for _, e := range m.systems {
		c, ok := e.system.(Configurer)
		if !ok {
			continue
		}
		if err := c.Configure(m.entities, m.events); err != nil {
			return eris.Wrapf(err, "system %s failed to configure", e.name)
		}
	}
	m.configured = true
	log.World(&m.logger, m, zerolog.DebugLevel)
	return nil
}

// UpdateAll updates every system in registration order and stops at the first error.
func (m *Manager) UpdateAll(dt time.Duration) error {
	if !m.configured {
		return ErrNotConfigured
	}

	allSystemStartTime := time.Now()
	for _, e := range m.systems {
		systemStartTime := time.Now()
		if err := e.system.Update(m.entities, m.events, dt); err != nil {
			e.logger.Error().Err(err).Msg("system update failed")
			return eris.Wrapf(err, "system %s generated an error", e.name)
		}
		elapsed := time.Since(systemStartTime)
		e.timer.record(elapsed)
		e.logger.Trace().Dur("elapsed", elapsed).Msg("system updated")

		statsd.EmitSystemTiming(systemStartTime, e.name)
	}

	statsd.EmitSystemTiming(allSystemStartTime, "all_systems")
	statsd.EmitEntityGauges(m.entities.Size(), m.entities.Capacity())
	return nil
}

// Benchmarks returns the average update time of each system, in registration order.
func (m *Manager) Benchmarks() []Benchmark {
	benchmarks := make([]Benchmark, len(m.systems))
	for i, e := range m.systems {
		benchmarks[i] = Benchmark{Name: e.name, Average: e.timer.average()}
	}
	return benchmarks
}

// Names returns system names in registration order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.systems))
	for i, e := range m.systems {
		names[i] = e.name
	}
	return names
}

// RegisteredComponents lists the component families known to the process.
func (m *Manager) RegisteredComponents() []ecs.FamilyInfo {
	return ecs.RegisteredComponents()
}

func (m *Manager) Entities() *ecs.EntityManager {
	return m.entities
}

func (m *Manager) Events() *ecs.EventBus {
	return m.events
}

func systemName[S any]() string {
	return strings.TrimPrefix(reflect.TypeFor[S]().String(), "*")
}
