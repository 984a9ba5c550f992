package store

import (
	"errors"
	"fmt"

	"github.com/larswik/gigdex/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by Get when no row matches the id.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicateKey is returned by Insert when the event's external id is
	// already present in the table.
	ErrDuplicateKey = errors.New("duplicate event")
)

// EventStore is the data-access layer over the events table. All methods run
// one or two statements on a pooled connection and make no multi-statement
// atomicity promises.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

// List returns every event ordered by id ascending.
func (s *EventStore) List() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Get fetches a single event by primary key.
func (s *EventStore) Get(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching event %d: %w", id, err)
	}
	return &event, nil
}

// Insert stores a new event and assigns its id. An event whose ExternalID
// already exists fails with ErrDuplicateKey; callers on the ingestion path
// skip and continue.
func (s *EventStore) Insert(event *models.Event) error {
	if err := s.db.Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Delete removes the event with the given id and reports how many rows went
// away. Zero rows is not an error here; the API layer turns it into a 404.
func (s *EventStore) Delete(id uint) (int64, error) {
	result := s.db.Delete(&models.Event{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("deleting event %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}
