// Package navigation turns logical page references into navigate requests
// for whoever hosts the pages.
package navigation

import (
	"fmt"
	"log"

	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
)

// Navigator accepts page references. Callers never observe an outcome.
type Navigator interface {
	Navigate(ref domain.PageReference)
}

// Service validates references and publishes them as NavigateEvents
type Service struct {
	bus eventbus.EventBus
}

// NewService creates a navigation service publishing on bus
func NewService(bus eventbus.EventBus) *Service {
	return &Service{bus: bus}
}

// Navigate publishes ref. Invalid references are logged and dropped.
func (s *Service) Navigate(ref domain.PageReference) {
	if err := Validate(ref); err != nil {
		log.Printf("Navigation: dropping %+v: %v", ref, err)
		return
	}
	s.bus.Publish(domain.NavigateEvent{Ref: ref})
}

// Validate reports whether ref can be resolved to a page
func Validate(ref domain.PageReference) error {
	if ref.ObjectName == "" {
		return fmt.Errorf("object name is required")
	}
	switch ref.Type {
	case domain.PageRecord:
		if ref.RecordID == "" {
			return fmt.Errorf("record page needs a record id")
		}
		if ref.Action != domain.ActionView {
			return fmt.Errorf("record page does not support action %q", ref.Action)
		}
	case domain.PageObject:
		if ref.Action != domain.ActionNew {
			return fmt.Errorf("object page does not support action %q", ref.Action)
		}
	default:
		return fmt.Errorf("unknown page type %q", ref.Type)
	}
	return nil
}

// RecordPage references the view page of one record
func RecordPage(objectName, recordID string) domain.PageReference {
	return domain.PageReference{
		Type:       domain.PageRecord,
		ObjectName: objectName,
		RecordID:   recordID,
		Action:     domain.ActionView,
	}
}

// NewRecordPage references the creation page of an object
func NewRecordPage(objectName string) domain.PageReference {
	return domain.PageReference{
		Type:       domain.PageObject,
		ObjectName: objectName,
		Action:     domain.ActionNew,
	}
}
