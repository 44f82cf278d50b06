package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hitroute/hitroute/raid"
)

// DefaultDamageScale converts sheet damage, recorded in millions, to raw damage.
const DefaultDamageScale = 1_000_000

// Options controls how hit sheets are interpreted.
type Options struct {
	DamageScale float64 // multiplier applied to every damage cell
}

// DefaultOptions returns the options matching the usual raid sheet layout.
func DefaultOptions() Options {
	return Options{DamageScale: DefaultDamageScale}
}

func (o Options) scale() float64 {
	if o.DamageScale <= 0 {
		return 1
	}
	return o.DamageScale
}

// hitColumns are the CSV header names, with accepted aliases.
var hitColumns = map[string][]string{
	"player": {"player"},
	"damage": {"damage", "dmg"},
	"p1":     {"p1"},
	"p2":     {"p2"},
	"p3":     {"p3"},
	"p4":     {"p4"},
	"p5":     {"p5"},
	"target": {"target", "boss"},
}

func ext(path string) string { return strings.ToLower(filepath.Ext(path)) }

// parseDamage reads one damage cell and applies the scale.
func parseDamage(s string, scale float64) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid damage %q: %w", s, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("damage must be a finite non-negative number, got %q", s)
	}
	return v * scale, nil
}

func buildRecord(player, damage string, team []string, target string, scale float64) (raid.DamageRecord, error) {
	var rec raid.DamageRecord
	rec.Player = strings.TrimSpace(player)
	if rec.Player == "" {
		return rec, fmt.Errorf("empty player")
	}
	if len(team) != raid.CompositionSize {
		return rec, fmt.Errorf("composition has %d members, want %d", len(team), raid.CompositionSize)
	}
	for i, m := range team {
		rec.Composition[i] = strings.TrimSpace(m)
		if rec.Composition[i] == "" {
			return rec, fmt.Errorf("composition slot %d is empty", i+1)
		}
	}
	rec.Target = strings.TrimSpace(target)
	if rec.Target == "" {
		return rec, fmt.Errorf("empty target")
	}
	d, err := parseDamage(damage, scale)
	if err != nil {
		return rec, err
	}
	rec.Damage = d
	return rec, nil
}

// ReadHitsCSV reads a hit sheet with a header row naming the columns
// player, damage, p1..p5 and target (or boss). Column order is free.
func ReadHitsCSV(r io.Reader, opts Options) ([]raid.DamageRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var records []raid.DamageRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		cell := func(name string) string {
			if i := cols[name]; i < len(row) {
				return row[i]
			}
			return ""
		}
		team := []string{cell("p1"), cell("p2"), cell("p3"), cell("p4"), cell("p5")}
		rec, err := buildRecord(cell("player"), cell("damage"), team, cell("target"), opts.scale())
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func locateColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make(map[string]int, len(hitColumns))
	for name, aliases := range hitColumns {
		found := false
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				cols[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}
	return cols, nil
}

// ParseHitsJSON reads hit records from a JSON document. The list may be the root
// array or live under "hits" or "mocks". Each entry carries player, damage,
// target (or boss) and either a "composition" array or p1..p5 fields.
func ParseHitsJSON(data []byte, opts Options) ([]raid.DamageRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing hits JSON: invalid document")
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = gjson.GetBytes(data, "hits")
		if !list.Exists() {
			list = gjson.GetBytes(data, "mocks")
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("parsing hits JSON: no hits array")
	}
	return HitsFromJSON(list, opts)
}

// HitsFromJSON converts an already-located gjson array of hit objects.
func HitsFromJSON(list gjson.Result, opts Options) ([]raid.DamageRecord, error) {
	var records []raid.DamageRecord
	var err error
	list.ForEach(func(key, v gjson.Result) bool {
		var team []string
		if comp := v.Get("composition"); comp.IsArray() {
			for _, m := range comp.Array() {
				team = append(team, m.String())
			}
		} else {
			for _, k := range []string{"p1", "p2", "p3", "p4", "p5"} {
				team = append(team, v.Get(k).String())
			}
		}
		target := v.Get("target")
		if !target.Exists() {
			target = v.Get("boss")
		}
		rec, berr := buildRecord(v.Get("player").String(), v.Get("damage").String(), team, target.String(), opts.scale())
		if berr != nil {
			err = fmt.Errorf("hit %d: %w", key.Int(), berr)
			return false
		}
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadHits reads a hit sheet, choosing the format from its extension.
func LoadHits(path string, opts Options) ([]raid.DamageRecord, error) {
	switch ext(path) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening hit sheet %s: %w", path, err)
		}
		defer file.Close() //nolint:errcheck // read-only file
		records, err := ReadHitsCSV(file, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return records, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading hit sheet: %w", err)
		}
		return ParseHitsJSON(data, opts)
	default:
		return nil, fmt.Errorf("unsupported hit sheet format %q (want .csv or .json)", ext(path))
	}
}
