// SPDX-License-Identifier: MIT

package symmetry

import "fmt"

// Status is the outcome of Episode.Compute.
type Status int

const (
	// StatusNotComputed is the state of a new or reset episode.
	StatusNotComputed Status = iota
	// StatusTrivial means the symmetry group is empty.
	StatusTrivial
	// StatusComputed means generators were found and handled.
	StatusComputed
	// StatusSkipped means the episode gave up gracefully; see the reason.
	StatusSkipped
	// StatusFailed means Compute returned an error.
	StatusFailed
)

var statusNames = [...]string{"not-computed", "trivial", "computed", "skipped", "failed"}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Policy selects between static constraints and dynamic reducers.
type Policy int

const (
	// PolicyStatic emits every handling as a constraint.
	PolicyStatic Policy = iota
	// PolicyDynamic prefers the reducers where one is registered.
	PolicyDynamic
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == PolicyDynamic {
		return "dynamic"
	}
	return "static"
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "static", "":
		*p = PolicyStatic
	case "dynamic":
		*p = PolicyDynamic
	default:
		return fmt.Errorf("policy %q: %w", b, ErrInvalidConfig)
	}
	return nil
}
