package models

// Event is the single catalogued entity: a happening with a name, a date and a
// location. Rows created through the API leave ExternalID nil; rows ingested
// from the discovery upstream carry the provider's event id there, and the
// unique index on that column is what makes re-ingestion idempotent.
type Event struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ExternalID *string `gorm:"uniqueIndex" json:"external_id,omitempty"`
	Name       string  `gorm:"not null" json:"name"`
	EventDate  string  `gorm:"not null" json:"event_date"`
	Venue      string  `json:"venue"`
	City       string  `gorm:"not null" json:"city"`
	Country    string  `gorm:"not null" json:"country"`
}
