// Package tz provides zone providers for the temporal package beyond the
// system time zone database: a fixed rule table read from YAML, a
// memoizing cache, and a fallback chain.
package tz

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/calclock/calclock/temporal"
)

// tableDoc is the YAML form of a Table:
//
//	zones:
//	  Test/Pacific:
//	    offset: "-08:00"
//	    transitions:
//	      - at: "2024-03-10T10:00:00Z"
//	        offset: "-07:00"
type tableDoc struct {
	Zones map[string]zoneDoc `yaml:"zones"`
}

type zoneDoc struct {
	// Offset applies before the first transition.
	Offset      string          `yaml:"offset"`
	Transitions []transitionDoc `yaml:"transitions"`
}

type transitionDoc struct {
	At     temporal.Instant `yaml:"at"`
	Offset string           `yaml:"offset"`
}

type rules struct {
	initial int
	at      []int64 // ascending
	offsets []int   // offsets[i] applies from at[i]
}

func (r *rules) offsetAt(ms int64) int {
	i := sort.Search(len(r.at), func(i int) bool { return r.at[i] > ms })
	if i == 0 {
		return r.initial
	}
	return r.offsets[i-1]
}

// A Table is a read-only set of zones, each a starting UTC offset and a
// list of transitions to new offsets. It implements temporal.ZoneProvider
// and is safe for concurrent use.
type Table struct {
	zones map[string]*rules
}

var _ temporal.ZoneProvider = (*Table)(nil)

// LoadTable decodes a YAML zone table from r.
func LoadTable(r io.Reader) (*Table, error) {
	var doc tableDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode zone table")
	}
	t := &Table{zones: make(map[string]*rules, len(doc.Zones))}
	for name, z := range doc.Zones {
		r, err := z.rules()
		if err != nil {
			return nil, errors.Wrapf(err, "zone %q", name)
		}
		t.zones[name] = r
	}
	return t, nil
}

// ParseTable is LoadTable over an in-memory document.
func ParseTable(b []byte) (*Table, error) {
	return LoadTable(bytes.NewReader(b))
}

// LoadTableFile reads the zone table at path. Only WithLogger applies.
func LoadTableFile(path string, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open zone table")
	}
	defer f.Close()

	t, err := LoadTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	o.logger.Debug("zone table loaded", zap.String("path", path), zap.Int("zones", len(t.zones)))
	return t, nil
}

func (z zoneDoc) rules() (*rules, error) {
	initial, err := temporal.ParseOffset(z.Offset)
	if err != nil {
		return nil, err
	}
	r := &rules{initial: initial}
	ts := append([]transitionDoc(nil), z.Transitions...)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].At.Compare(ts[j].At) < 0 })
	for i, tr := range ts {
		if i > 0 && tr.At.Equal(ts[i-1].At) {
			return nil, errors.Errorf("two transitions at %s", tr.At)
		}
		off, err := temporal.ParseOffset(tr.Offset)
		if err != nil {
			return nil, errors.Wrapf(err, "transition at %s", tr.At)
		}
		r.at = append(r.at, tr.At.EpochMilliseconds())
		r.offsets = append(r.offsets, off)
	}
	return r, nil
}

// Zones returns the names of the zones in t, sorted.
func (t *Table) Zones() []string {
	names := make([]string, 0, len(t.zones))
	for name := range t.zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve implements temporal.ZoneProvider.
func (t *Table) Resolve(ms int64, zone string) (temporal.ZoneFields, error) {
	r, ok := t.zones[zone]
	if !ok {
		return temporal.ZoneFields{}, errors.Wrapf(temporal.ErrUnknownZone, "%q not in table", zone)
	}
	return temporal.FieldsAt(ms, r.offsetAt(ms)), nil
}
