package raid

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// TargetSpec is one boss as handed over by the input collaborator.
type TargetSpec struct {
	Name   string  `yaml:"name" json:"name"`
	Health float64 `yaml:"health" json:"health"`
}

// Roster is the immutable, name-keyed index over the raw record pool.
// It is built once per plan and shared read-only by every route attempt.
type Roster struct {
	targets     []TargetSpec
	targetIndex map[string]int
	records     []DamageRecord
	players     []string                              // first-seen order
	byPlayer    map[string]map[string][]*DamageRecord // player → target → records
	byTarget    map[string][]*DamageRecord
	dropped     int
}

// NewRoster validates targets and records and builds the lookup maps.
// Records naming an unknown target are never eligible for anything and are dropped
// with a warning. Record IDs are reassigned to their position in records.
func NewRoster(targets []TargetSpec, records []DamageRecord) (*Roster, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("at least one target is required")
	}
	r := &Roster{
		targets:     make([]TargetSpec, len(targets)),
		targetIndex: make(map[string]int, len(targets)),
		records:     make([]DamageRecord, len(records)),
		byPlayer:    make(map[string]map[string][]*DamageRecord),
		byTarget:    make(map[string][]*DamageRecord, len(targets)),
	}
	copy(r.targets, targets)
	for i, t := range r.targets {
		if t.Name == "" {
			return nil, fmt.Errorf("target %d has an empty name", i)
		}
		if _, dup := r.targetIndex[t.Name]; dup {
			return nil, fmt.Errorf("duplicate target %q", t.Name)
		}
		if t.Health <= 0 || math.IsNaN(t.Health) || math.IsInf(t.Health, 0) {
			return nil, fmt.Errorf("target %q health must be a finite positive number, got %v", t.Name, t.Health)
		}
		r.targetIndex[t.Name] = i
	}

	copy(r.records, records)
	for i := range r.records {
		rec := &r.records[i]
		rec.ID = i
		if rec.Player == "" {
			return nil, fmt.Errorf("record %d has an empty player name", i)
		}
		if rec.Damage < 0 || math.IsNaN(rec.Damage) || math.IsInf(rec.Damage, 0) {
			return nil, fmt.Errorf("record %d (%s) damage must be a finite non-negative number, got %v", i, rec.Player, rec.Damage)
		}
		if _, ok := r.targetIndex[rec.Target]; !ok {
			logrus.Warnf("dropping record %d of %s: unknown target %q", i, rec.Player, rec.Target)
			r.dropped++
			continue
		}
		perTarget, seen := r.byPlayer[rec.Player]
		if !seen {
			perTarget = make(map[string][]*DamageRecord)
			r.byPlayer[rec.Player] = perTarget
			r.players = append(r.players, rec.Player)
		}
		perTarget[rec.Target] = append(perTarget[rec.Target], rec)
		r.byTarget[rec.Target] = append(r.byTarget[rec.Target], rec)
	}
	return r, nil
}

// Targets returns the targets in input order.
func (r *Roster) Targets() []TargetSpec { return r.targets }

// Players returns player names in first-seen order.
func (r *Roster) Players() []string { return r.players }

// Records returns the full input pool, including dropped records.
func (r *Roster) Records() []DamageRecord { return r.records }

// Dropped returns how many records referenced an unknown target.
func (r *Roster) Dropped() int { return r.dropped }

// TargetRecords returns every indexed record against target, in pool order.
func (r *Roster) TargetRecords(target string) []*DamageRecord { return r.byTarget[target] }

// PlayerRecords returns all of player's records across every target, in pool order.
func (r *Roster) PlayerRecords(player string) []*DamageRecord {
	var out []*DamageRecord
	for i := range r.records {
		rec := &r.records[i]
		if rec.Player != player {
			continue
		}
		if _, ok := r.targetIndex[rec.Target]; ok {
			out = append(out, rec)
		}
	}
	return out
}
