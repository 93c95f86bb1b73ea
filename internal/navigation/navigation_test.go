package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatyard/internal/domain"
	"boatyard/internal/eventbus"
)

func TestNavigatePublishesValidReference(t *testing.T) {
	rec := eventbus.NewRecorder(nil)
	svc := NewService(rec)

	svc.Navigate(RecordPage(domain.ObjectBoatReview, "r1"))
	svc.Navigate(NewRecordPage(domain.ObjectBoat))

	events := rec.OfType(domain.EventNavigate)
	require.Len(t, events, 2)
	assert.Equal(t, domain.PageReference{
		Type:       domain.PageRecord,
		ObjectName: "BoatReview",
		RecordID:   "r1",
		Action:     domain.ActionView,
	}, events[0].(domain.NavigateEvent).Ref)
	assert.Equal(t, domain.PageObject, events[1].(domain.NavigateEvent).Ref.Type)
}

func TestNavigateDropsInvalidReference(t *testing.T) {
	cases := map[string]domain.PageReference{
		"record without id": {Type: domain.PageRecord, ObjectName: domain.ObjectBoat, Action: domain.ActionView},
		"record with new":   {Type: domain.PageRecord, ObjectName: domain.ObjectBoat, RecordID: "b1", Action: domain.ActionNew},
		"object with view":  {Type: domain.PageObject, ObjectName: domain.ObjectBoat, Action: domain.ActionView},
		"no object":         {Type: domain.PageObject, Action: domain.ActionNew},
		"unknown page type": {Type: "listPage", ObjectName: domain.ObjectBoat, Action: domain.ActionView},
	}
	for name, ref := range cases {
		t.Run(name, func(t *testing.T) {
			rec := eventbus.NewRecorder(nil)
			NewService(rec).Navigate(ref)
			assert.Empty(t, rec.Events())
			assert.Error(t, Validate(ref))
		})
	}
}
