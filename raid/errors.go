package raid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachableTarget marks a target whose eligible damage cannot meet its threshold.
	ErrUnreachableTarget = errors.New("unreachable target")
	// ErrTargetShort marks a reachable target the solver could not fill.
	ErrTargetShort = errors.New("target left short")
	// ErrBudgetExhausted is returned when committing a hit for a player with no hits left.
	ErrBudgetExhausted = errors.New("hit budget exhausted")
)

// UnreachableTargetError reports the damage that was available against a target.
type UnreachableTargetError struct {
	Target    string
	Available float64
	Threshold float64
}

func (e *UnreachableTargetError) Error() string {
	return fmt.Sprintf("%s: %v (%v of %v damage available)", e.Target, ErrUnreachableTarget, e.Available, e.Threshold)
}

// Unwrap lets errors.Is match ErrUnreachableTarget.
func (e *UnreachableTargetError) Unwrap() error { return ErrUnreachableTarget }

// ShortTargetError reports how far the solver's selection fell below a threshold.
type ShortTargetError struct {
	Target    string
	Dealt     float64
	Threshold float64
}

func (e *ShortTargetError) Error() string {
	return fmt.Sprintf("%s: %v (selection dealt %v of %v)", e.Target, ErrTargetShort, e.Dealt, e.Threshold)
}

func (e *ShortTargetError) Unwrap() error { return ErrTargetShort }
