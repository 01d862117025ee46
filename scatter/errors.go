package scatter

import (
	"errors"
	"fmt"
)

// ErrNoStringGenerator is returned when a string-excitation channel is
// needed but no generator has been configured on the action.
var ErrNoStringGenerator = errors.New(
	"scatter: string generator not initialized")

// ErrNoChannels is returned when a channel must be chosen from an empty
// list or one with non-positive total weight.
var ErrNoChannels = errors.New(
	"scatter: no collision channels with positive weight")

// InvalidActionError reports a structurally impossible final-state request,
// e.g. an unsupported process type or the wrong outgoing multiplicity for a
// resonance-formation channel. It names the incoming PDG codes so the
// caller can locate the offending pair.
type InvalidActionError struct {
	Reason       string
	CodeA, CodeB int
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("scatter: %s (PDG codes %d, %d)",
		e.Reason, e.CodeA, e.CodeB)
}

// RetryError reports that the bounded soft-string retry budget was
// exhausted without the generator producing a final state.
type RetryError struct {
	Tries int
}

func (e *RetryError) Error() string {
	return fmt.Sprintf(
		"scatter: soft string excitation failed after %d tries", e.Tries)
}
