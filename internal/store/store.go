// Package store keeps the secretariat data the lookup and ordering
// endpoints serve: people, their emails, areas with directors, and
// session slides. It is backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/raysh454/secrglue/internal/logging"
)

//go:embed schema.sql
var schemaFS embed.FS

// MinSearchLength is the shortest term SearchPeople accepts.
const MinSearchLength = 3

var (
	ErrTermTooShort   = errors.New("search term too short")
	ErrPersonNotFound = errors.New("person not found")
	ErrAreaNotFound   = errors.New("area not found")
	ErrSlideNotFound  = errors.New("slide not found")
)

type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string, logger logging.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases from splitting and
	// serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New applies the schema to db and returns a Store using it.
func New(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if err := applySchema(db); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger).With(logging.Field{Key: "component", Value: "store"})
	return &Store{db: db, logger: logger}, nil
}

func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// SearchPeople returns people whose name contains term, case-insensitively,
// ordered by name. limit <= 0 means no limit.
func (s *Store) SearchPeople(ctx context.Context, term string, limit int) ([]Person, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < MinSearchLength {
		return nil, ErrTermTooShort
	}
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM people
         WHERE lower(name) LIKE ? ESCAPE '\' OR lower(ascii_name) LIKE ? ESCAPE '\'
         ORDER BY name, id
         LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search people: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// EmailsForPerson lists a person's active addresses, primary first.
func (s *Store) EmailsForPerson(ctx context.Context, personID int64) ([]Email, error) {
	if err := s.exists(ctx, `SELECT 1 FROM people WHERE id = ?`, personID, ErrPersonNotFound); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT address, person_id, is_primary FROM emails
         WHERE person_id = ? AND active = 1
         ORDER BY is_primary DESC, address`,
		personID)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var out []Email
	for rows.Next() {
		var e Email
		if err := rows.Scan(&e.Address, &e.PersonID, &e.Primary); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListAreas returns every area, active ones first.
func (s *Store) ListAreas(ctx context.Context) ([]Area, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, acronym, name, active FROM areas ORDER BY active DESC, acronym`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	var out []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.Acronym, &a.Name, &a.Active); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AreaDirectors lists the directors of an area by name.
func (s *Store) AreaDirectors(ctx context.Context, areaID int64) ([]Director, error) {
	if err := s.exists(ctx, `SELECT 1 FROM areas WHERE id = ?`, areaID, ErrAreaNotFound); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, COALESCE(
                (SELECT address FROM emails e
                 WHERE e.person_id = p.id AND e.active = 1
                 ORDER BY e.is_primary DESC, e.address LIMIT 1), '')
         FROM area_directors ad
         JOIN people p ON p.id = ad.person_id
         WHERE ad.area_id = ?
         ORDER BY p.name, p.id`,
		areaID)
	if err != nil {
		return nil, fmt.Errorf("list area directors: %w", err)
	}
	defer rows.Close()

	var out []Director
	for rows.Next() {
		var d Director
		if err := rows.Scan(&d.PersonID, &d.Name, &d.Email); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// AddSlide appends a slide to the end of its session.
func (s *Store) AddSlide(ctx context.Context, meeting, group, name, title string) (*Slide, error) {
	if name == "" {
		return nil, fmt.Errorf("slide name is required")
	}
	var next int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM slides WHERE meeting = ? AND group_acronym = ?`,
		meeting, group).Scan(&next); err != nil {
		return nil, fmt.Errorf("next slide position: %w", err)
	}

	sl := &Slide{
		ID:        uuid.New().String(),
		Name:      name,
		Title:     title,
		Group:     group,
		Meeting:   meeting,
		Position:  next,
		UpdatedAt: time.Now().Unix(),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO slides (id, name, title, group_acronym, meeting, position, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sl.ID, sl.Name, sl.Title, sl.Group, sl.Meeting, sl.Position, sl.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert slide: %w", err)
	}
	return sl, nil
}

// ListSlides returns a session's slides in presentation order.
func (s *Store) ListSlides(ctx context.Context, meeting, group string) ([]Slide, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, title, group_acronym, meeting, position, updated_at
         FROM slides WHERE meeting = ? AND group_acronym = ?
         ORDER BY position, name`,
		meeting, group)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()
	return scanSlides(rows)
}

// ListMeetings returns the meetings that have slides, newest first.
func (s *Store) ListMeetings(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT meeting FROM slides ORDER BY CAST(meeting AS INTEGER) DESC, meeting DESC`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanSlides(rows *sql.Rows) ([]Slide, error) {
	var out []Slide
	for rows.Next() {
		var sl Slide
		if err := rows.Scan(&sl.ID, &sl.Name, &sl.Title, &sl.Group, &sl.Meeting, &sl.Position, &sl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// OrderSlide moves the named slide to index order within its session and
// renumbers the rest. order is clamped to the session's bounds. The
// session's new order is returned.
func (s *Store) OrderSlide(ctx context.Context, name string, order int) ([]Slide, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var meeting, group string
	if err := tx.QueryRowContext(ctx,
		`SELECT meeting, group_acronym FROM slides WHERE name = ?`, name).Scan(&meeting, &group); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSlideNotFound, name)
		}
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, title, group_acronym, meeting, position, updated_at
         FROM slides WHERE meeting = ? AND group_acronym = ?
         ORDER BY position, name`,
		meeting, group)
	if err != nil {
		return nil, fmt.Errorf("load session slides: %w", err)
	}
	session, err := scanSlides(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	reordered := moveSlide(session, name, order)
	now := time.Now().Unix()
	for i := range reordered {
		if reordered[i].Position == i {
			continue
		}
		reordered[i].Position = i
		reordered[i].UpdatedAt = now
		if _, err := tx.ExecContext(ctx,
			`UPDATE slides SET position = ?, updated_at = ? WHERE id = ?`,
			i, now, reordered[i].ID); err != nil {
			return nil, fmt.Errorf("update slide position: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("slide reordered",
		logging.Field{Key: "slide", Value: name},
		logging.Field{Key: "order", Value: order})
	return reordered, nil
}

func moveSlide(session []Slide, name string, order int) []Slide {
	from := -1
	for i := range session {
		if session[i].Name == name {
			from = i
			break
		}
	}
	if from < 0 {
		return session
	}
	moved := session[from]
	rest := append(append([]Slide(nil), session[:from]...), session[from+1:]...)
	if order < 0 {
		order = 0
	}
	if order > len(rest) {
		order = len(rest)
	}
	out := make([]Slide, 0, len(session))
	out = append(out, rest[:order]...)
	out = append(out, moved)
	return append(out, rest[order:]...)
}

func (s *Store) exists(ctx context.Context, query string, id int64, notFound error) error {
	var one int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", notFound, id)
		}
		return err
	}
	return nil
}
