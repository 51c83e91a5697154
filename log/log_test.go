package log_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	ecs "github.com/Epiphane/NCW-sub001"
	"github.com/Epiphane/NCW-sub001/log"
)

type Energy struct {
	Value int `json:"value"`
}

type Name struct {
	First string `json:"first"`
}

type fixedTarget struct {
	components []ecs.FamilyInfo
	systems    []string
}

func (f fixedTarget) RegisteredComponents() []ecs.FamilyInfo { return f.components }
func (f fixedTarget) Names() []string { return f.systems }

func newTarget() fixedTarget {
	return fixedTarget{
		components: []ecs.FamilyInfo{
			{ID: 0, Name: "game.Position"},
			{ID: 1, Name: "game.Energy"},
		},
		systems: []string{"game.MovementSystem", "game.EnergySystem"},
	}
}

func TestWorld(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.World(&logger, newTarget(), zerolog.InfoLevel)
	require.JSONEq(t, `{
		"level":"info",
		"total_components":2,
		"components":[
			{"component_id":0,"component_name":"game.Position"},
			{"component_id":1,"component_name":"game.Energy"}
		],
		"total_systems":2,
		"systems":["game.MovementSystem","game.EnergySystem"]
	}`, buf.String())
}

func TestComponentsAndSystems(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.Components(&logger, newTarget(), zerolog.DebugLevel)
	require.JSONEq(t, `{
		"level":"debug",
		"total_components":2,
		"components":[
			{"component_id":0,"component_name":"game.Position"},
			{"component_id":1,"component_name":"game.Energy"}
		]
	}`, buf.String())

	buf.Reset()
	log.Systems(&logger, newTarget(), zerolog.WarnLevel)
	require.JSONEq(t, `{
		"level":"warn",
		"total_systems":2,
		"systems":["game.MovementSystem","game.EnergySystem"]
	}`, buf.String())
}

func TestEntity(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	m := ecs.NewEntityManager(nil)
	id, err := m.Create()
	require.NoError(t, err)
	_, err = ecs.Add(m, id, Energy{Value: 10})
	require.NoError(t, err)
	_, err = ecs.Add(m, id, Name{First: "alpha"})
	require.NoError(t, err)

	energy, name := ecs.FamilyOf[Energy](), ecs.FamilyOf[Name]()
	first := fmt.Sprintf(`{"component_id":%d,"component_name":"log_test.Energy","value":{"value":10}}`, energy)
	second := fmt.Sprintf(`{"component_id":%d,"component_name":"log_test.Name","value":{"first":"alpha"}}`, name)
	if name < energy {
		first, second = second, first
	}

	log.Entity(&logger, zerolog.InfoLevel, m, id)
	require.JSONEq(t, fmt.Sprintf(`{
		"level":"info",
		"entity_index":0,
		"entity_version":1,
		"components":[%s,%s]
	}`, first, second), buf.String())
}

func TestEntityStale(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	m := ecs.NewEntityManager(nil)
	id, err := m.Create()
	require.NoError(t, err)
	require.NoError(t, m.Destroy(id))

	log.Entity(&logger, zerolog.InfoLevel, m, id)
	require.Contains(t, buf.String(), `"entity_version":1`)
	require.Contains(t, buf.String(), `"error":`)
}

func TestSubLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.CreateSystemLogger(&logger, "physics").Info().Msg("tick")
	require.JSONEq(t, `{"level":"info","system":"physics","message":"tick"}`, buf.String())

	buf.Reset()
	log.CreateTraceLogger(&logger, "abc").Info().Msg("step")
	require.JSONEq(t, `{"level":"info","trace_id":"abc","message":"step"}`, buf.String())
}
