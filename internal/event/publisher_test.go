package event

import (
	"testing"

	"darkops-lab/internal/models"
)

func TestDisabledPublisherDropsEvents(t *testing.T) {
	p, err := NewEventPublisher("", "darkops.events")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := p.Publish(&models.LabEvent{EventType: models.EventTypeSessionCreated}); err != nil {
		t.Errorf("Disabled publisher should not fail, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Disabled publisher close should not fail, got %v", err)
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	m := NewMockPublisher()
	_ = m.Publish(&models.LabEvent{EventType: models.EventTypeProgressUpdated})
	_ = m.Publish(&models.LabEvent{EventType: models.EventTypeAttackCompleted})

	types := m.Types()
	if len(types) != 2 || types[1] != models.EventTypeAttackCompleted {
		t.Errorf("Unexpected recorded events: %v", types)
	}
}
