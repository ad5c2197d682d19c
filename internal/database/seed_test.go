package database

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSeedFixturesParse(t *testing.T) {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		t.Fatalf("parse seed.yaml: %v", err)
	}
	if len(data.Restaurants) == 0 {
		t.Fatal("expected restaurant fixtures")
	}

	tags := make(map[string]bool)
	for _, name := range data.Tags {
		tags[name] = true
	}
	for _, r := range data.Restaurants {
		reps := 0
		for _, img := range r.Images {
			if img.Representative {
				reps++
			}
		}
		if reps > 1 {
			t.Errorf("restaurant %q has %d representative images", r.Name, reps)
		}
		for _, tag := range r.Tags {
			if !tags[tag] {
				t.Errorf("restaurant %q references unknown tag %q", r.Name, tag)
			}
		}
		for _, rv := range r.Reviews {
			if rv.Rating < 1 || rv.Rating > 5 {
				t.Errorf("review %q rating %d out of range", rv.Title, rv.Rating)
			}
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only writes into an empty restaurants table, so calling it twice
	// must be safe even when other packages share the database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var restaurantCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM restaurants").Scan(&restaurantCount); err != nil {
		t.Fatalf("count restaurants: %v", err)
	}
	if restaurantCount < 1 {
		t.Errorf("expected at least 1 restaurant, got %d", restaurantCount)
	}
}
