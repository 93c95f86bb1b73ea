// Package toast carries user notifications over the event bus and keeps the
// ones that are still on screen.
package toast

import (
	"time"

	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
)

// Titles and messages of the save notifications
const (
	SuccessTitle  = "Success"
	ErrorTitle    = "Error"
	MessageShipIt = "Ship it!"
	DefaultTTL    = 4 * time.Second
	maxVisible    = 3
)

// Show publishes t. Nobody acknowledges it.
func Show(bus eventbus.EventBus, t domain.Toast) {
	bus.Publish(domain.ToastEvent{Toast: t})
}

// Success is the notification of a save that went through
func Success() domain.Toast {
	return domain.Toast{Title: SuccessTitle, Message: MessageShipIt, Variant: domain.ToastSuccess}
}

// Error is the notification of a failed operation carrying the server message
func Error(message string) domain.Toast {
	return domain.Toast{Title: ErrorTitle, Message: message, Variant: domain.ToastError}
}

type entry struct {
	toast   domain.Toast
	expires time.Time
}

// Service keeps published toasts visible until their TTL runs out
type Service struct {
	ttl    time.Duration
	now    func() time.Time
	active []entry
}

// NewService creates a toast service. A ttl of zero uses DefaultTTL.
func NewService(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// TTL returns how long a toast stays visible
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Handle is the bus handler for ToastEvents
func (s *Service) Handle(e eventbus.DomainEvent) {
	if te, ok := e.(domain.ToastEvent); ok {
		s.Add(te.Toast)
	}
}

// Add makes t visible, dropping the oldest toast when too many are shown
func (s *Service) Add(t domain.Toast) {
	s.active = append(s.active, entry{toast: t, expires: s.now().Add(s.ttl)})
	if len(s.active) > maxVisible {
		s.active = s.active[len(s.active)-maxVisible:]
	}
}

// Expire drops toasts past their TTL and reports whether any were dropped
func (s *Service) Expire() bool {
	now := s.now()
	kept := s.active[:0]
	for _, e := range s.active {
		if now.Before(e.expires) {
			kept = append(kept, e)
		}
	}
	dropped := len(kept) != len(s.active)
	s.active = kept
	return dropped
}

// Visible returns the toasts on screen, oldest first
func (s *Service) Visible() []domain.Toast {
	out := make([]domain.Toast, len(s.active))
	for i, e := range s.active {
		out[i] = e.toast
	}
	return out
}

// Dismiss removes every visible toast
func (s *Service) Dismiss() {
	s.active = nil
}
