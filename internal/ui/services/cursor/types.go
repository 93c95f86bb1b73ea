package cursor

// State holds the row cursor and the visible window
type State struct {
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	Count          int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)
