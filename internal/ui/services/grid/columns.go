package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"boatyard/internal/domain"
)

// ColumnType decides how a cell is parsed and formatted
type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeNumber   ColumnType = "number"
	TypeCurrency ColumnType = "currency"
)

// Column describes one grid column
type Column struct {
	Label    string
	Field    domain.Field
	Type     ColumnType
	Editable bool
	Width    int
}

// defaultColumns is copied into every grid and never handed out directly
var defaultColumns = [...]Column{
	{Label: "Name", Field: domain.FieldName, Type: TypeText, Editable: true, Width: 18},
	{Label: "Length", Field: domain.FieldLength, Type: TypeNumber, Editable: true, Width: 8},
	{Label: "Price", Field: domain.FieldPrice, Type: TypeCurrency, Editable: true, Width: 12},
	{Label: "Description", Field: domain.FieldDescription, Type: TypeText, Editable: true, Width: 40},
}

// DefaultColumns returns a fresh copy of the column schema
func DefaultColumns() []Column {
	out := make([]Column, len(defaultColumns))
	copy(out, defaultColumns[:])
	return out
}

// Format renders a field value for display
func (c Column) Format(v any) string {
	switch c.Type {
	case TypeNumber:
		if n, ok := v.(float64); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	case TypeCurrency:
		if n, ok := v.(float64); ok {
			return formatCurrency(n)
		}
	default:
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fmt.Sprint(v)
}

// EditValue renders a field value the way it is typed back in
func (c Column) EditValue(v any) string {
	if n, ok := v.(float64); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return c.Format(v)
}

// Parse converts typed input into a field value
func (c Column) Parse(input string) (any, error) {
	switch c.Type {
	case TypeNumber, TypeCurrency:
		clean := strings.TrimSpace(input)
		if c.Type == TypeCurrency {
			clean = strings.TrimPrefix(clean, "$")
			clean = strings.ReplaceAll(clean, ",", "")
		}
		n, err := strconv.ParseFloat(clean, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%s must be a number", c.Label)
		}
		return n, nil
	default:
		return input, nil
	}
}

// formatCurrency renders dollars with thousands separators
func formatCurrency(n float64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	whole := strconv.FormatFloat(n, 'f', 2, 64)
	intPart, frac := whole[:len(whole)-3], whole[len(whole)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}
