// Package grid is the editable boat table: rows, a cell cursor, edit
// sessions and the draft changes waiting to be saved.
package grid

import (
	"boatyard/internal/domain"
	"boatyard/internal/ui/services/cursor"
	"boatyard/internal/ui/services/sorting"
)

// Grid holds the rows shown by the results component
type Grid struct {
	columns []Column
	records []domain.Boat // as delivered
	rows    []domain.Boat // display order
	drafts  domain.UpdateBatch

	sorter *sorting.Service
	cursor *cursor.Service
	col    int

	editing bool
}

// New creates an empty grid with its own copy of the default columns
func New(sorter *sorting.Service) *Grid {
	if sorter == nil {
		sorter = sorting.NewService()
	}
	g := &Grid{
		columns: DefaultColumns(),
		drafts:  make(domain.UpdateBatch),
		sorter:  sorter,
	}
	g.cursor = cursor.NewService(func() int { return len(g.rows) })
	return g
}

// Columns returns a copy of the grid's columns
func (g *Grid) Columns() []Column {
	out := make([]Column, len(g.columns))
	copy(out, g.columns)
	return out
}

// Cursor exposes the row cursor
func (g *Grid) Cursor() *cursor.Service {
	return g.cursor
}

// Sorter exposes the row order
func (g *Grid) Sorter() *sorting.Service {
	return g.sorter
}

// SetRecords replaces the rows, keeping the cursor on the same boat when it is still present
func (g *Grid) SetRecords(records []domain.Boat) {
	current := g.SelectedID()
	g.records = append([]domain.Boat(nil), records...)
	g.rows = g.sorter.Sorted(g.records)
	g.editing = false
	g.follow(current)
}

// Resort reapplies the sort order after its mode changed
func (g *Grid) Resort() {
	current := g.SelectedID()
	g.rows = g.sorter.Sorted(g.records)
	g.follow(current)
}

func (g *Grid) follow(id string) {
	if id != "" {
		if i := g.IndexOf(id); i >= 0 {
			g.cursor.MoveToIndex(i)
			return
		}
	}
	g.cursor.Clamp()
}

// Rows returns the rows in display order, without drafts applied
func (g *Grid) Rows() []domain.Boat {
	return g.rows
}

// Len returns the number of rows
func (g *Grid) Len() int {
	return len(g.rows)
}

// IndexOf returns the display index of a boat, or -1
func (g *Grid) IndexOf(id string) int {
	for i, b := range g.rows {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// SelectedID returns the id of the boat under the cursor
func (g *Grid) SelectedID() string {
	i := g.cursor.Cursor()
	if i < 0 || i >= len(g.rows) {
		return ""
	}
	return g.rows[i].ID
}

// Column returns the index of the focused column
func (g *Grid) Column() int {
	return g.col
}

// MoveColumn moves the column focus by delta, clamped to the columns
func (g *Grid) MoveColumn(delta int) {
	g.col += delta
	if g.col < 0 {
		g.col = 0
	}
	if g.col >= len(g.columns) {
		g.col = len(g.columns) - 1
	}
}

// Cell returns the display text of a cell with any draft applied
func (g *Grid) Cell(row, col int) string {
	c := g.columns[col]
	return c.Format(g.value(row, c.Field))
}

// IsDirty reports whether a cell holds a draft change
func (g *Grid) IsDirty(row, col int) bool {
	if row < 0 || row >= len(g.rows) {
		return false
	}
	_, ok := g.drafts[g.rows[row].ID][g.columns[col].Field]
	return ok
}

func (g *Grid) value(row int, f domain.Field) any {
	b := g.rows[row]
	if v, ok := g.drafts[b.ID][f]; ok {
		return v
	}
	return b.Get(f)
}

// Editing reports whether an edit session is open
func (g *Grid) Editing() bool {
	return g.editing
}

// BeginEdit opens an edit session on the focused cell and returns its current text
func (g *Grid) BeginEdit() (string, bool) {
	row := g.cursor.Cursor()
	if row >= len(g.rows) || !g.columns[g.col].Editable {
		return "", false
	}
	g.editing = true
	c := g.columns[g.col]
	return c.EditValue(g.value(row, c.Field)), true
}

// CommitEdit parses input into a draft for the focused cell. Input equal to
// the stored value removes the draft. A parse error keeps the session open.
func (g *Grid) CommitEdit(input string) error {
	if !g.editing {
		return nil
	}
	row := g.cursor.Cursor()
	if row >= len(g.rows) {
		g.editing = false
		return nil
	}
	c := g.columns[g.col]
	v, err := c.Parse(input)
	if err != nil {
		return err
	}

	b := g.rows[row]
	if v == b.Get(c.Field) {
		g.dropDraft(b.ID, c.Field)
	} else {
		if g.drafts[b.ID] == nil {
			g.drafts[b.ID] = make(map[domain.Field]any)
		}
		g.drafts[b.ID][c.Field] = v
	}
	g.editing = false
	return nil
}

// CancelEdit closes the edit session without changes
func (g *Grid) CancelEdit() {
	g.editing = false
}

func (g *Grid) dropDraft(id string, f domain.Field) {
	delete(g.drafts[id], f)
	if len(g.drafts[id]) == 0 {
		delete(g.drafts, id)
	}
}

// HasDrafts reports whether any change is waiting to be saved
func (g *Grid) HasDrafts() bool {
	return len(g.drafts) > 0
}

// DraftCount returns the number of changed cells
func (g *Grid) DraftCount() int {
	n := 0
	for _, fields := range g.drafts {
		n += len(fields)
	}
	return n
}

// DraftBatch returns a copy of the pending changes
func (g *Grid) DraftBatch() domain.UpdateBatch {
	out := make(domain.UpdateBatch, len(g.drafts))
	for id, fields := range g.drafts {
		cp := make(map[domain.Field]any, len(fields))
		for f, v := range fields {
			cp[f] = v
		}
		out[id] = cp
	}
	return out
}

// ClearDrafts forgets every pending change
func (g *Grid) ClearDrafts() {
	g.drafts = make(domain.UpdateBatch)
	g.editing = false
}
