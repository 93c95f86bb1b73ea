package reviews

import "fmt"

// EmptyIDPolicy decides what assigning an empty boat id does
type EmptyIDPolicy int

const (
	// RetainLast ignores the empty id and keeps the reviews on display
	RetainLast EmptyIDPolicy = iota
	// ClearOnEmpty drops the reviews and the error without fetching
	ClearOnEmpty
)

// ParsePolicy maps the config names "retain" and "clear" to a policy
func ParsePolicy(name string) (EmptyIDPolicy, error) {
	switch name {
	case "", "retain":
		return RetainLast, nil
	case "clear":
		return ClearOnEmpty, nil
	}
	return RetainLast, fmt.Errorf("unknown empty id policy %q", name)
}

// Phase is the state of the reviews component
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)
