package raid

import "strings"

// CompositionSize is the number of team members used by a single hit.
const CompositionSize = 5

// Composition is the ordered team used for one hit.
type Composition [CompositionSize]string

// String renders the team as "a/b/c/d/e".
func (c Composition) String() string {
	return strings.Join(c[:], "/")
}

// SharesMember reports whether any member of c also appears in other.
// Empty member slots never match.
func (c Composition) SharesMember(other Composition) bool {
	for _, m := range c {
		if m == "" {
			continue
		}
		for _, o := range other {
			if m == o {
				return true
			}
		}
	}
	return false
}

// DamageRecord is one player's hit against one target.
// Records are immutable once the Roster is built and shared by every route attempt.
type DamageRecord struct {
	ID          int // position in the input pool; identity and stable tie-break
	Player      string
	Damage      float64
	Composition Composition
	Target      string
}

// ConflictScope selects which pairs of records can conflict on a shared team member.
type ConflictScope string

const (
	// ConflictScopeGlobal treats any two records sharing a member as conflicting.
	ConflictScopeGlobal ConflictScope = "global"
	// ConflictScopePlayer only compares records owned by the same player.
	ConflictScopePlayer ConflictScope = "player"
)

// validConflictScopes maps accepted scope strings. Empty defaults to global.
var validConflictScopes = map[ConflictScope]bool{
	ConflictScopeGlobal: true,
	ConflictScopePlayer: true,
	"":                  true,
}

// IsValidConflictScope returns true if s is a recognized conflict scope.
func IsValidConflictScope(s string) bool { return validConflictScopes[ConflictScope(s)] }

// Conflicts reports whether a and b cannot both be used in one route under scope.
// A record never conflicts with itself.
func (scope ConflictScope) Conflicts(a, b *DamageRecord) bool {
	if a.ID == b.ID {
		return false
	}
	if scope == ConflictScopePlayer && a.Player != b.Player {
		return false
	}
	return a.Composition.SharesMember(b.Composition)
}
