package tz

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calclock/calclock/temporal"
)

const pacific = `
zones:
  Test/Pacific:
    offset: "-08:00"
    transitions:
      - at: "2024-11-03T09:00:00Z"
        offset: "-08:00"
      - at: "2024-03-10T10:00:00Z"
        offset: "-07:00"
  Test/Fixed:
    offset: "+05:30"
`

func ms(t *testing.T, s string) int64 {
	t.Helper()
	i, err := temporal.ParseInstant(s)
	require.NoError(t, err)
	return i.EpochMilliseconds()
}

func TestTableResolve(t *testing.T) {
	table, err := ParseTable([]byte(pacific))
	require.NoError(t, err)
	assert.Equal(t, []string{"Test/Fixed", "Test/Pacific"}, table.Zones())

	tests := []struct {
		name    string
		instant string
		zone    string
		want    temporal.ZoneFields
	}{
		{
			name:    "before first transition",
			instant: "2024-01-15T20:00:00Z",
			zone:    "Test/Pacific",
			want:    temporal.ZoneFields{Year: 2024, Month: 1, Day: 15, Hour: 12, OffsetMinutes: -480},
		},
		{
			name:    "at spring forward",
			instant: "2024-03-10T10:00:00Z",
			zone:    "Test/Pacific",
			want:    temporal.ZoneFields{Year: 2024, Month: 3, Day: 10, Hour: 3, OffsetMinutes: -420},
		},
		{
			name:    "last millisecond of summer time",
			instant: "2024-11-03T08:59:59.999Z",
			zone:    "Test/Pacific",
			want:    temporal.ZoneFields{Year: 2024, Month: 11, Day: 3, Hour: 1, Minute: 59, Second: 59, OffsetMinutes: -420},
		},
		{
			name:    "fixed zone",
			instant: "2024-03-25T18:00:00Z",
			zone:    "Test/Fixed",
			want:    temporal.ZoneFields{Year: 2024, Month: 3, Day: 25, Hour: 23, Minute: 30, OffsetMinutes: 330},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Resolve(ms(t, tt.instant), tt.zone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = table.Resolve(0, "Europe/Paris")
	assert.ErrorIs(t, err, temporal.ErrUnknownZone)
}

func TestTableDrivesZonedDateTime(t *testing.T) {
	table, err := ParseTable([]byte(pacific))
	require.NoError(t, err)

	// Scenario: 2024-03-25T18:00Z is 11:00 in Pacific summer time.
	z, err := temporal.NewZonedDateTimeIn(temporal.InstantFromEpochMilliseconds(ms(t, "2024-03-25T18:00:00Z")), "Test/Pacific", table)
	require.NoError(t, err)
	assert.Equal(t, 11, z.Hour())
	assert.Equal(t, "2024-03-25T11:00:00-07:00[Test/Pacific]", z.String())

	gap := temporal.MustPlainDateTime(2024, 3, 10, 2, 30, 0, 0)
	_, err = gap.ToZonedDateTimeIn("Test/Pacific", temporal.Reject, table)
	assert.ErrorIs(t, err, temporal.ErrSkippedTime)
}

func TestLoadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "zones: [\n"},
		{name: "unknown key", doc: "zonez: {}\n"},
		{name: "bad offset", doc: "zones: {A: {offset: \"+99:00\"}}\n"},
		{name: "bad instant", doc: "zones: {A: {offset: Z, transitions: [{at: yesterday, offset: Z}]}}\n"},
		{name: "duplicate transition", doc: `
zones:
  A:
    offset: Z
    transitions:
      - {at: "2024-01-01T00:00:00Z", offset: "+01:00"}
      - {at: "2024-01-01T00:00:00Z", offset: "+02:00"}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(pacific), 0o600))

	core, logs := observer.New(zapcore.DebugLevel)
	table, err := LoadTableFile(path, WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Len(t, table.Zones(), 2)
	require.Equal(t, 1, logs.FilterMessage("zone table loaded").Len())
	assert.Equal(t, path, logs.All()[0].ContextMap()["path"])

	_, err = LoadTableFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
	next  temporal.ZoneProvider
}

func (p *countingProvider) Resolve(ms int64, zone string) (temporal.ZoneFields, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.next.Resolve(ms, zone)
}

func TestCache(t *testing.T) {
	table, err := ParseTable([]byte(pacific))
	require.NoError(t, err)
	inner := &countingProvider{next: table}

	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCache(inner, WithCapacity(2), WithLogger(zap.New(core)))

	for i := 0; i < 3; i++ {
		f, err := c.Resolve(0, "Test/Pacific")
		require.NoError(t, err)
		assert.Equal(t, -480, f.OffsetMinutes)
	}
	assert.Equal(t, 1, inner.calls)
	hits, misses := c.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)

	_, err = c.Resolve(1, "Test/Pacific")
	require.NoError(t, err)
	_, err = c.Resolve(2, "Test/Pacific")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, logs.FilterMessage("zone cache eviction").Len())

	// The least recently used key (0) was evicted.
	_, err = c.Resolve(0, "Test/Pacific")
	require.NoError(t, err)
	assert.Equal(t, 4, inner.calls)

	// Errors are passed through and not cached.
	for i := 0; i < 2; i++ {
		_, err = c.Resolve(0, "Nowhere")
		assert.ErrorIs(t, err, temporal.ErrUnknownZone)
	}
	assert.Equal(t, 6, inner.calls)
	assert.Equal(t, 2, c.Len())
}

func TestCacheConcurrent(t *testing.T) {
	table, err := ParseTable([]byte(pacific))
	require.NoError(t, err)
	c := NewCache(table, WithCapacity(16))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, err := c.Resolve(int64(i%32)*3_600_000, "Test/Pacific")
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}

func TestChain(t *testing.T) {
	table, err := ParseTable([]byte(pacific))
	require.NoError(t, err)
	chain := Chain{table, temporal.SystemZones}

	f, err := chain.Resolve(ms(t, "2024-03-25T18:00:00Z"), "Test/Pacific")
	require.NoError(t, err)
	assert.Equal(t, -420, f.OffsetMinutes)

	f, err = chain.Resolve(ms(t, "2024-03-25T18:00:00Z"), "UTC")
	require.NoError(t, err)
	assert.Equal(t, 18, f.Hour)

	_, err = chain.Resolve(0, "Nowhere/Land")
	assert.ErrorIs(t, err, temporal.ErrUnknownZone)

	_, err = Chain{}.Resolve(0, "UTC")
	assert.ErrorIs(t, err, temporal.ErrUnknownZone)
}
