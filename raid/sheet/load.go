package sheet

import (
	"fmt"

	"github.com/hitroute/hitroute/raid"
)

// Input is everything the engine needs from the outside world.
type Input struct {
	Targets []raid.TargetSpec
	Records []raid.DamageRecord
}

// Load reads the targets file and the hit sheet.
func Load(targetsPath, hitsPath string, opts Options) (*Input, error) {
	targets, err := LoadTargets(targetsPath)
	if err != nil {
		return nil, fmt.Errorf("loading targets from %s: %w", targetsPath, err)
	}
	records, err := LoadHits(hitsPath, opts)
	if err != nil {
		return nil, fmt.Errorf("loading hits from %s: %w", hitsPath, err)
	}
	return &Input{Targets: targets, Records: records}, nil
}

// Roster indexes the input for the engine.
func (in *Input) Roster() (*raid.Roster, error) {
	return raid.NewRoster(in.Targets, in.Records)
}
