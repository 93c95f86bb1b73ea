package sorting

// Mode is the column the results are ordered by
type Mode string

const (
	SortNone   Mode = "" // order returned by the data service
	SortName   Mode = "name"
	SortLength Mode = "length"
	SortPrice  Mode = "price"
)

// Modes lists the sort modes in cycling order
var Modes = []Mode{SortNone, SortName, SortLength, SortPrice}

// State holds sorting state
type State struct {
	Mode       Mode
	Descending bool
}
