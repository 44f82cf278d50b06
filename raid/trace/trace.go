package trace

// TraceLevel controls the verbosity of solve tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every per-target solve of every route.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelDecisions
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// PlanTrace collects solve records during a plan run, in route index order.
type PlanTrace struct {
	Config TraceConfig
	Solves []SolveRecord
}

// NewPlanTrace creates a PlanTrace ready for recording.
func NewPlanTrace(config TraceConfig) *PlanTrace {
	return &PlanTrace{
		Config: config,
		Solves: make([]SolveRecord, 0),
	}
}

// RecordSolve appends a solve record.
func (pt *PlanTrace) RecordSolve(record SolveRecord) {
	pt.Solves = append(pt.Solves, record)
}

// RecordAll appends records in order.
func (pt *PlanTrace) RecordAll(records []SolveRecord) {
	pt.Solves = append(pt.Solves, records...)
}
