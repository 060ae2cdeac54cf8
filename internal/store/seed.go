package store

import (
	"context"
	"fmt"

	"github.com/raysh454/secrglue/internal/logging"
)

// SeedPerson is a person with their addresses; the first is primary.
type SeedPerson struct {
	ID     int64
	Name   string
	ASCII  string
	Emails []string
}

type SeedArea struct {
	ID        int64
	Acronym   string
	Name      string
	Active    bool
	Directors []int64
}

type SeedSlide struct {
	Meeting, Group, Name, Title string
}

// SeedData is the content Seed loads.
type SeedData struct {
	People []SeedPerson
	Areas  []SeedArea
	Slides []SeedSlide
}

// DemoData is a small data set for the demo server.
func DemoData() SeedData {
	return SeedData{
		People: []SeedPerson{
			{ID: 100, Name: "Jane Doe", Emails: []string{"jane@example.org", "jdoe@example.net"}},
			{ID: 101, Name: "Janet Smith", Emails: []string{"janet@example.org"}},
			{ID: 102, Name: "Pál Kovács", ASCII: "Pal Kovacs", Emails: []string{"pal@example.hu"}},
			{ID: 103, Name: "Ravi Iyer", Emails: []string{"ravi@example.in", "ri@example.com"}},
			{ID: 104, Name: "Olu Adeyemi", Emails: []string{"olu@example.ng"}},
		},
		Areas: []SeedArea{
			{ID: 1, Acronym: "art", Name: "Applications and Real-Time Area", Active: true, Directors: []int64{100, 103}},
			{ID: 2, Acronym: "int", Name: "Internet Area", Active: true, Directors: []int64{101}},
			{ID: 3, Acronym: "ops", Name: "Operations and Management Area", Active: true, Directors: []int64{104}},
			{ID: 4, Acronym: "app", Name: "Applications Area", Active: false, Directors: []int64{102}},
			{ID: 5, Acronym: "rai", Name: "Real-time Applications and Infrastructure Area", Active: false},
		},
		Slides: []SeedSlide{
			{Meeting: "120", Group: "httpbis", Name: "slides-120-httpbis-chairs", Title: "Chairs' slides"},
			{Meeting: "120", Group: "httpbis", Name: "slides-120-httpbis-resumable-uploads", Title: "Resumable uploads"},
			{Meeting: "120", Group: "httpbis", Name: "slides-120-httpbis-cache-groups", Title: "Cache groups"},
			{Meeting: "119", Group: "quic", Name: "slides-119-quic-chairs", Title: "Chairs' slides"},
			{Meeting: "118", Group: "quic", Name: "slides-118-quic-multipath", Title: "Multipath QUIC"},
		},
	}
}

// Seed loads data in a single transaction. Existing rows with the same keys
// are left in place, so seeding twice is harmless.
func (s *Store) Seed(ctx context.Context, data SeedData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range data.People {
		ascii := p.ASCII
		if ascii == "" {
			ascii = p.Name
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO people (id, name, ascii_name) VALUES (?, ?, ?)`,
			p.ID, p.Name, ascii); err != nil {
			return fmt.Errorf("seed person %d: %w", p.ID, err)
		}
		for i, addr := range p.Emails {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO emails (address, person_id, is_primary) VALUES (?, ?, ?)`,
				addr, p.ID, i == 0); err != nil {
				return fmt.Errorf("seed email %s: %w", addr, err)
			}
		}
	}

	for _, a := range data.Areas {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO areas (id, acronym, name, active) VALUES (?, ?, ?, ?)`,
			a.ID, a.Acronym, a.Name, a.Active); err != nil {
			return fmt.Errorf("seed area %s: %w", a.Acronym, err)
		}
		for _, pid := range a.Directors {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO area_directors (area_id, person_id) VALUES (?, ?)`,
				a.ID, pid); err != nil {
				return fmt.Errorf("seed director %d of %s: %w", pid, a.Acronym, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	for _, sl := range data.Slides {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slides WHERE name = ?`, sl.Name).Scan(&n); err != nil {
			return fmt.Errorf("check slide %s: %w", sl.Name, err)
		}
		if n > 0 {
			continue
		}
		if _, err := s.AddSlide(ctx, sl.Meeting, sl.Group, sl.Name, sl.Title); err != nil {
			return err
		}
	}

	s.logger.Info("seeded store",
		logging.Field{Key: "people", Value: len(data.People)},
		logging.Field{Key: "areas", Value: len(data.Areas)},
		logging.Field{Key: "slides", Value: len(data.Slides)})
	return nil
}
