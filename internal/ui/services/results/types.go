package results

// Phase is the state of the results component. Loading is derived from it.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
	PhaseSaving
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	case PhaseSaving:
		return "saving"
	}
	return "unknown"
}

// Busy reports whether the phase has remote work outstanding
func (p Phase) Busy() bool {
	return p == PhaseLoading || p == PhaseSaving
}

// Source identifies the results component in loading events
const Source = "results"
