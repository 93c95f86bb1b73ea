package domain

import "time"

// Filter narrows a boat search to a boat type id. The empty filter matches every boat.
type Filter string

// FilterAll is the filter that returns every boat
const FilterAll Filter = ""

// Boat is a boat inventory record
type Boat struct {
	ID           string
	Name         string
	Length       float64
	Price        float64
	Description  string
	BoatTypeID   string
	BoatTypeName string
	Picture      string
	Contact      string
}

// Get returns the value of an editable field
func (b Boat) Get(f Field) any {
	switch f {
	case FieldName:
		return b.Name
	case FieldLength:
		return b.Length
	case FieldPrice:
		return b.Price
	case FieldDescription:
		return b.Description
	}
	return nil
}

// With returns a copy of b with the given field changes applied.
// Unknown fields and values of the wrong type are ignored.
func (b Boat) With(changes map[Field]any) Boat {
	for f, v := range changes {
		switch f {
		case FieldName:
			if s, ok := v.(string); ok {
				b.Name = s
			}
		case FieldLength:
			if n, ok := v.(float64); ok {
				b.Length = n
			}
		case FieldPrice:
			if n, ok := v.(float64); ok {
				b.Price = n
			}
		case FieldDescription:
			if s, ok := v.(string); ok {
				b.Description = s
			}
		}
	}
	return b
}

// BoatType is a boat category, the source of search filters
type BoatType struct {
	ID   string
	Name string
}

// Review is a feedback entry attached to exactly one boat
type Review struct {
	ID          string
	BoatID      string
	Name        string // review title
	Comment     string
	Rating      int // 1..5
	CreatedBy   string
	CreatedDate time.Time
}

// Field names an editable boat attribute
type Field string

const (
	FieldName        Field = "Name"
	FieldLength      Field = "Length"
	FieldPrice       Field = "Price"
	FieldDescription Field = "Description"
)

// EditableFields lists the editable fields in display order
var EditableFields = []Field{FieldName, FieldLength, FieldPrice, FieldDescription}

// UpdateBatch is a sparse set of field changes keyed by boat id
type UpdateBatch map[string]map[Field]any

// Len returns the number of boats touched by the batch
func (b UpdateBatch) Len() int {
	return len(b)
}

// Object names understood by the navigation service
const (
	ObjectBoat       = "Boat"
	ObjectBoatReview = "BoatReview"
)

// PageType is the kind of page a PageReference points to
type PageType string

const (
	PageRecord PageType = "recordPage"
	PageObject PageType = "objectPage"
)

// PageAction is what the target page should do
type PageAction string

const (
	ActionView PageAction = "view"
	ActionNew  PageAction = "new"
)

// PageReference is a logical navigation target
type PageReference struct {
	Type       PageType
	ObjectName string
	RecordID   string // required for record pages
	Action     PageAction
}

// ToastVariant selects how a notification is presented
type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
)

// Toast is a user-visible notification
type Toast struct {
	Title   string
	Message string
	Variant ToastVariant
}
