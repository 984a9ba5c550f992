package ingest

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/larswik/gigdex/internal/discovery"
	"github.com/larswik/gigdex/internal/models"
	"github.com/larswik/gigdex/internal/store"
)

// Defaults applied when a provider record omits a field.
const (
	defaultName    = "No title"
	defaultDate    = "1970-01-01"
	defaultTime    = "00:00:00"
	defaultVenue   = "Unknown venue"
	defaultCity    = "Unknown city"
	defaultCountry = "Unknown country"
)

// Inserter is the slice of the event store the pipeline needs.
type Inserter interface {
	Insert(*models.Event) error
}

// Summary reports what one ingestion run did with the records it was given.
type Summary struct {
	Inserted   int
	Duplicates int
	Skipped    int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d rows inserted, %d duplicates skipped, %d records skipped",
		s.Inserted, s.Duplicates, s.Skipped)
}

type Pipeline struct {
	store Inserter
}

func NewPipeline(events Inserter) *Pipeline {
	return &Pipeline{store: events}
}

// Run maps each provider record onto the catalog schema and inserts it. A
// record without an upstream id is skipped, since nothing could deduplicate
// it later. A record whose upstream id is already stored counts as a
// duplicate and the run continues. Nothing here aborts the batch.
func (p *Pipeline) Run(records []discovery.Record) Summary {
	runID := uuid.New()
	log.Printf("ingest run %s: processing %d records", runID, len(records))

	var summary Summary
	for _, record := range records {
		if record.ID == "" {
			log.Printf("ingest run %s: skipping record without upstream id (%q)", runID, record.Name)
			summary.Skipped++
			continue
		}

		event := mapRecord(record)
		if err := p.store.Insert(event); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				log.Printf("ingest run %s: skipping duplicate event: %s", runID, event.Name)
				summary.Duplicates++
				continue
			}
			log.Printf("ingest run %s: skipping record %s: %v", runID, record.ID, err)
			summary.Skipped++
			continue
		}
		summary.Inserted++
	}

	log.Printf("ingest run %s: %s", runID, summary)
	return summary
}

func mapRecord(record discovery.Record) *models.Event {
	name := record.Name
	if name == "" {
		name = defaultName
	}

	date := record.Dates.Start.LocalDate
	if date == "" {
		date = defaultDate
	}
	clock := record.Dates.Start.LocalTime
	if clock == "" {
		clock = defaultTime
	}

	venue := defaultVenue
	city := defaultCity
	country := defaultCountry
	if len(record.Embedded.Venues) > 0 {
		v := record.Embedded.Venues[0]
		if v.Name != "" {
			venue = v.Name
		}
		if v.City.Name != "" {
			city = v.City.Name
		}
		if v.Country.Name != "" {
			country = v.Country.Name
		}
	}

	externalID := record.ID
	return &models.Event{
		ExternalID: &externalID,
		Name:       name,
		EventDate:  date + " " + clock,
		Venue:      venue,
		City:       city,
		Country:    country,
	}
}
