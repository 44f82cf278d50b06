// Package sheet reads boss lists and hit sheets into raid input records.
// Malformed rows are rejected here so the engine only ever sees well-formed data.
package sheet

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/hitroute/hitroute/raid"
)

// ParseHealth parses a health value that may carry thousands separators,
// e.g. "21,255,027,600".
func ParseHealth(s string) (float64, error) {
	clean := strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("empty health value")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid health %q: %w", s, err)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("health must be a finite positive number, got %q", s)
	}
	return v, nil
}

// Health is a YAML scalar that accepts plain numbers and separated strings.
type Health float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Health) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: health must be a scalar", value.Line)
	}
	v, err := ParseHealth(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*h = Health(v)
	return nil
}

type yamlTarget struct {
	Name   string `yaml:"name"`
	Health Health `yaml:"health"`
}

type yamlTargets struct {
	Targets []yamlTarget `yaml:"targets"`
}

// ParseTargetsYAML decodes a `targets:` list. Unknown keys are rejected.
func ParseTargetsYAML(data []byte) ([]raid.TargetSpec, error) {
	var doc yamlTargets
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing targets YAML: %w", err)
	}
	out := make([]raid.TargetSpec, 0, len(doc.Targets))
	for i, t := range doc.Targets {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("target %d: empty name", i)
		}
		if t.Health == 0 {
			return nil, fmt.Errorf("target %q: missing health", t.Name)
		}
		out = append(out, raid.TargetSpec{Name: strings.TrimSpace(t.Name), Health: float64(t.Health)})
	}
	return out, nil
}

// ParseTargetsJSON reads targets from a JSON document. The list may be the root
// array or live under "targets" or "bosses"; health may be "health" or "hp",
// as a number or a separated string.
func ParseTargetsJSON(data []byte) ([]raid.TargetSpec, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing targets JSON: invalid document")
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = gjson.GetBytes(data, "targets")
		if !list.Exists() {
			list = gjson.GetBytes(data, "bosses")
		}
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("parsing targets JSON: no targets array")
	}
	return TargetsFromJSON(list)
}

// TargetsFromJSON converts an already-located gjson array of target objects.
func TargetsFromJSON(list gjson.Result) ([]raid.TargetSpec, error) {
	var out []raid.TargetSpec
	var err error
	list.ForEach(func(key, v gjson.Result) bool {
		name := strings.TrimSpace(v.Get("name").String())
		if name == "" {
			err = fmt.Errorf("target %d: empty name", key.Int())
			return false
		}
		hp := v.Get("health")
		if !hp.Exists() {
			hp = v.Get("hp")
		}
		health, perr := ParseHealth(hp.String())
		if perr != nil {
			err = fmt.Errorf("target %q: %w", name, perr)
			return false
		}
		out = append(out, raid.TargetSpec{Name: name, Health: health})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadTargets reads a targets file, choosing the format from its extension.
func LoadTargets(path string) ([]raid.TargetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}
	switch ext(path) {
	case ".yaml", ".yml":
		return ParseTargetsYAML(data)
	case ".json":
		return ParseTargetsJSON(data)
	default:
		return nil, fmt.Errorf("unsupported targets format %q (want .yaml, .yml or .json)", ext(path))
	}
}
