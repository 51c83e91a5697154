package statsd

import (
	"testing"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	ddstatsd.NoOpClient
	timings map[string]time.Duration
	gauges  map[string]float64
	tags    [][]string
}

func newRecordingClient() *recordingClient {
	return &recordingClient{
		timings: make(map[string]time.Duration),
		gauges:  make(map[string]float64),
	}
}

func (c *recordingClient) Timing(name string, value time.Duration, tags []string, _ float64) error {
	c.timings[name] = value
	c.tags = append(c.tags, tags)
	return nil
}

func (c *recordingClient) Gauge(name string, value float64, _ []string, _ float64) error {
	c.gauges[name] = value
	return nil
}

func TestEmitters(t *testing.T) {
	rec := newRecordingClient()
	SetClient(rec)
	t.Cleanup(func() { SetClient(nil) })

	EmitSystemTiming(time.Now().Add(-time.Millisecond), "movement")
	EmitEntityGauges(3, 5)

	assert.GreaterOrEqual(t, rec.timings["system.update"], time.Millisecond)
	require.Len(t, rec.tags, 1)
	assert.Equal(t, []string{"system:movement"}, rec.tags[0])
	assert.InDelta(t, 3.0, rec.gauges["entities.size"], 0)
	assert.InDelta(t, 5.0, rec.gauges["entities.capacity"], 0)
}

func TestInitRequiresAddress(t *testing.T) {
	require.Error(t, Init("", nil))
}

func TestSetClientNilRestoresNoOp(t *testing.T) {
	SetClient(nil)
	_, ok := Client().(*ddstatsd.NoOpClient)
	assert.True(t, ok)
}
