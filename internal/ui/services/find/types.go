package find

// State holds find state
type State struct {
	Query        string
	Matches      []int // Row indices of matching boats
	CurrentMatch int   // Position in Matches
}
