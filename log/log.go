package log

import (
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	ecs "github.com/Epiphane/NCW-sub001"
)

type Loggable interface {
	RegisteredComponents() []ecs.FamilyInfo
	Names() []string
}

func loadComponentIntoDict(component ecs.FamilyInfo) *zerolog.Event {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID))
	return dictLogger.Str("component_name", component.Name)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	components := target.RegisteredComponents()
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = arrayLogger.Dict(loadComponentIntoDict(component))
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadSystemIntoEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	names := target.Names()
	zeroLoggerEvent.Int("total_systems", len(names))
	arrayLogger := zerolog.Arr()
	for _, sysName := range names {
		arrayLogger = arrayLogger.Str(sysName)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

func loadEntityIntoEvent(zeroLoggerEvent *zerolog.Event, m *ecs.EntityManager, id ecs.EntityID) *zerolog.Event {
	zeroLoggerEvent.Uint32("entity_index", id.Index())
	zeroLoggerEvent.Uint32("entity_version", id.Version())

	families, err := m.Families(id)
	if err != nil {
		return zeroLoggerEvent.Err(err)
	}
	values, err := m.Components(id)
	if err != nil {
		return zeroLoggerEvent.Err(err)
	}

	arrayLogger := zerolog.Arr()
	for i, f := range families {
		dict := loadComponentIntoDict(ecs.FamilyInfo{ID: f, Name: ecs.FamilyName(f)})
		if raw, err := json.Marshal(values[i]); err == nil {
			dict = dict.RawJSON("value", raw)
		} else {
			dict = dict.Str("value_error", err.Error())
		}
		arrayLogger = arrayLogger.Dict(dict)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

// Components logs every registered component family.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Systems logs the names of all registered systems.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadSystemIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs an entity and the JSON encoding of each of its components. Stale entities are
// logged with the lookup error.
func Entity(logger *zerolog.Logger, level zerolog.Level, m *ecs.EntityManager, id ecs.EntityID) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, m, id).Send()
}

// World logs components and systems in one entry.
func World(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent = loadSystemIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// CreateSystemLogger creates a Sub Logger with the entry {"system" : systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}

// CreateTraceLogger creates a Sub Logger with the entry {"trace_id" : traceID}, to follow one
// data path across systems.
func CreateTraceLogger(logger *zerolog.Logger, traceID string) *zerolog.Logger {
	newLogger := logger.With().Str("trace_id", traceID).Logger()
	return &newLogger
}
