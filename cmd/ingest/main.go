package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/larswik/gigdex/config"
	"github.com/larswik/gigdex/internal/discovery"
	"github.com/larswik/gigdex/internal/geocode"
	"github.com/larswik/gigdex/internal/ingest"
	"github.com/larswik/gigdex/internal/store"
)

const upstreamTimeout = 15 * time.Second

func main() {
	global := flag.Bool("global", false, "ingest upcoming events worldwide instead of around a city")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on process environment.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	keys, err := config.LoadAPIKeys()
	if err != nil {
		log.Fatalf("Failed to load API keys: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	events := discovery.NewClient("", keys.Ticketmaster, upstreamTimeout)
	pipeline := ingest.NewPipeline(store.NewEventStore(db))
	ctx := context.Background()

	if *global {
		records, err := events.Upcoming(ctx)
		if err != nil {
			log.Fatalf("Failed to fetch events: %v", err)
		}
		summary := pipeline.Run(records)
		fmt.Printf("Events have been added to the database: %s.\n", summary)
		return
	}

	city := prompt("Enter the name of your city: ")
	country := prompt("Enter the name of your country: ")

	coords, err := geocode.NewClient("", keys.OpenCage, upstreamTimeout).Resolve(ctx, city, country)
	if err != nil {
		if errors.Is(err, geocode.ErrUnresolved) {
			fmt.Println("Could not find coordinates for the given city and country.")
			return
		}
		log.Fatalf("Failed to geocode %s, %s: %v", city, country, err)
	}

	records, err := events.EventsNearby(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		log.Fatalf("Failed to fetch events: %v", err)
	}
	summary := pipeline.Run(records)
	fmt.Printf("Events for %s, %s have been added to the database: %s.\n", city, country, summary)
}

func prompt(label string) string {
	fmt.Print(label)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}
