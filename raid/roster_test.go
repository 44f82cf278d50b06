package raid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoster_Rejections(t *testing.T) {
	ok := []DamageRecord{rec("P1", 1, "a", "A")}
	tests := []struct {
		name    string
		targets []TargetSpec
		records []DamageRecord
		errPart string
	}{
		{"no targets", nil, ok, "at least one target"},
		{"empty target name", []TargetSpec{{Name: "", Health: 1}}, ok, "empty name"},
		{"duplicate target", []TargetSpec{{Name: "A", Health: 1}, {Name: "A", Health: 2}}, ok, "duplicate"},
		{"zero health", []TargetSpec{{Name: "A", Health: 0}}, ok, "health"},
		{"infinite health", []TargetSpec{{Name: "A", Health: math.Inf(1)}}, ok, "health"},
		{"empty player", []TargetSpec{{Name: "A", Health: 1}}, []DamageRecord{rec("", 1, "a", "A")}, "empty player"},
		{"negative damage", []TargetSpec{{Name: "A", Health: 1}}, []DamageRecord{rec("P1", -1, "a", "A")}, "damage"},
		{"NaN damage", []TargetSpec{{Name: "A", Health: 1}}, []DamageRecord{rec("P1", math.NaN(), "a", "A")}, "damage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.targets, tt.records)
			assert.ErrorContains(t, err, tt.errPart)
		})
	}
}

func TestNewRoster_IndexesAndDropsUnknownTargets(t *testing.T) {
	// GIVEN records including one against a boss that is not listed
	records := []DamageRecord{
		{ID: 99, Player: "P2", Damage: 5, Composition: Composition{"x"}, Target: "A"},
		rec("P1", 7, "a", "B"),
		rec("P3", 9, "c", "Nope"),
		rec("P1", 3, "b", "A"),
	}

	// WHEN the roster is built
	r := mustRoster(t, []TargetSpec{{Name: "A", Health: 10}, {Name: "B", Health: 10}}, records)

	// THEN IDs follow pool position and the unknown-target record is dropped
	assert.Equal(t, 1, r.Dropped())
	assert.Equal(t, []string{"P2", "P1"}, r.Players())
	require.Len(t, r.Records(), 4)
	for i, rc := range r.Records() {
		assert.Equal(t, i, rc.ID)
	}
	assert.Len(t, r.TargetRecords("A"), 2)
	assert.Len(t, r.TargetRecords("B"), 1)
	assert.Empty(t, r.TargetRecords("Nope"))
	assert.Len(t, r.PlayerRecords("P1"), 2)
	assert.Empty(t, r.PlayerRecords("P3"))
	// caller slice untouched
	assert.Equal(t, 99, records[0].ID)
}

func TestLedger_SpendAndExhaust(t *testing.T) {
	r := mustRoster(t, []TargetSpec{{Name: "A", Health: 1}}, []DamageRecord{rec("P1", 1, "a", "A")})
	l := r.NewLedger(2)

	assert.Equal(t, 2, l.HitsLeft("P1"))
	assert.Equal(t, 0, l.HitsLeft("ghost"))
	require.NotNil(t, l.Entry("P1"))
	assert.Len(t, l.Entry("P1").RecordsByTarget["A"], 1)

	left, err := l.Spend("P1")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
	left, err = l.Spend("P1")
	require.NoError(t, err)
	assert.Equal(t, 0, left)

	_, err = l.Spend("P1")
	assert.ErrorIs(t, err, ErrBudgetExhausted)
	_, err = l.Spend("ghost")
	assert.Error(t, err)
}

func TestLedger_FreshPerAttempt(t *testing.T) {
	r := mustRoster(t, []TargetSpec{{Name: "A", Health: 1}}, []DamageRecord{rec("P1", 1, "a", "A")})
	first := r.NewLedger(3)
	_, _ = first.Spend("P1")

	assert.Equal(t, 3, r.NewLedger(3).HitsLeft("P1"))
}

func TestConflictScope_Conflicts(t *testing.T) {
	a := &DamageRecord{ID: 0, Player: "P1", Composition: Composition{"x", "b", "c", "d", "e"}}
	sameOwner := &DamageRecord{ID: 1, Player: "P1", Composition: Composition{"f", "g", "h", "i", "x"}}
	otherOwner := &DamageRecord{ID: 2, Player: "P2", Composition: Composition{"x", "k", "l", "m", "n"}}
	disjoint := &DamageRecord{ID: 3, Player: "P1", Composition: Composition{"p", "q", "r", "s", "t"}}

	assert.False(t, ConflictScopeGlobal.Conflicts(a, a), "self")
	assert.True(t, ConflictScopeGlobal.Conflicts(a, sameOwner))
	assert.True(t, ConflictScopeGlobal.Conflicts(a, otherOwner))
	assert.False(t, ConflictScopeGlobal.Conflicts(a, disjoint))

	assert.True(t, ConflictScopePlayer.Conflicts(a, sameOwner))
	assert.False(t, ConflictScopePlayer.Conflicts(a, otherOwner))
}

func TestComposition_EmptySlotsNeverMatch(t *testing.T) {
	a := Composition{"x", "", "", "", ""}
	b := Composition{"y", "", "", "", ""}
	assert.False(t, a.SharesMember(b))
	assert.Equal(t, "x////", a.String())
}

func TestTargetState_Err(t *testing.T) {
	ts := &TargetState{Name: "A", Threshold: 100, Status: StatusShort, Dealt: 90}
	err := ts.Err()
	assert.ErrorIs(t, err, ErrTargetShort)
	var short *ShortTargetError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 90.0, short.Dealt)

	ts.Status = StatusCleared
	assert.NoError(t, ts.Err())
}

func TestTargetState_ApplyOverkill(t *testing.T) {
	ts := newTargetState(TargetSpec{Name: "A", Health: 100}, 1.0)
	ts.apply(SolveResult{Sum: 110, Status: StatusCleared, Strategy: StrategyPair})
	assert.InDelta(t, 10, ts.OverkillAmount, 1e-12)
	assert.InDelta(t, 0.1, ts.OverkillRatio, 1e-12)

	ts.apply(SolveResult{Sum: 80, Status: StatusShort, Strategy: StrategyExhausted})
	assert.Zero(t, ts.OverkillAmount)
}
