package raid

import "fmt"

// BudgetView is the read-only budget lookup the solver needs.
type BudgetView interface {
	HitsLeft(player string) int
}

// LedgerEntry tracks one player during a single route attempt.
type LedgerEntry struct {
	Name            string
	HitsLeft        int
	RecordsByTarget map[string][]*DamageRecord // read-only view into the Roster
}

// Ledger holds every player's remaining budget for one route attempt.
// A fresh Ledger is built per attempt; nothing carries over between routes.
type Ledger struct {
	entries map[string]*LedgerEntry
}

// NewLedger creates a ledger with every roster player at the initial budget.
func (r *Roster) NewLedger(budget int) *Ledger {
	l := &Ledger{
		entries: make(map[string]*LedgerEntry, len(r.players)),
	}
	for _, name := range r.players {
		l.entries[name] = &LedgerEntry{
			Name:            name,
			HitsLeft:        budget,
			RecordsByTarget: r.byPlayer[name],
		}
	}
	return l
}

// Entry returns the ledger entry for player, or nil if the player is unknown.
func (l *Ledger) Entry(player string) *LedgerEntry { return l.entries[player] }

// HitsLeft implements BudgetView. Unknown players have no budget.
func (l *Ledger) HitsLeft(player string) int {
	if e, ok := l.entries[player]; ok {
		return e.HitsLeft
	}
	return 0
}

// Spend commits one hit for player and returns the budget left afterwards.
func (l *Ledger) Spend(player string) (int, error) {
	e, ok := l.entries[player]
	if !ok {
		return 0, fmt.Errorf("spending hit for unknown player %q", player)
	}
	if e.HitsLeft <= 0 {
		return 0, fmt.Errorf("player %q: %w", player, ErrBudgetExhausted)
	}
	e.HitsLeft--
	return e.HitsLeft, nil
}
