package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates the requested story does not exist.
var ErrNotFound = errors.New("story not found")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d", ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Add inserts a story and returns it with its assigned ID.
func (s *Store) Add(ctx context.Context, story Story) (*Story, error) {
	story.Slug = strings.TrimSpace(story.Slug)
	story.Title = strings.TrimSpace(story.Title)
	if story.Slug == "" {
		return nil, errors.New("story slug cannot be empty")
	}
	if story.Title == "" {
		return nil, errors.New("story title cannot be empty")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO stories (slug, title, week, summary, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		story.Slug, story.Title, story.Week, story.Summary, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert story: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the story with the given ID, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*Story, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, week, summary, created_at, updated_at
         FROM stories WHERE id = ?`, id)
	return scanStory(row)
}

// GetBySlug returns the story with the given slug, or ErrNotFound.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Story, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, week, summary, created_at, updated_at
         FROM stories WHERE slug = ?`, strings.TrimSpace(slug))
	return scanStory(row)
}

// List returns all stories ordered by gestation week, then ID.
func (s *Store) List(ctx context.Context) ([]Story, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, title, week, summary, created_at, updated_at
         FROM stories ORDER BY week, id`)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var stories []Story
	for rows.Next() {
		story, err := scanStoryRow(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stories: %w", err)
	}
	return stories, nil
}

// Remove deletes a story by ID.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM stories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row *sql.Row) (*Story, error) {
	story, err := scanStoryRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return story, err
}

func scanStoryRow(scanner rowScanner) (*Story, error) {
	var story Story
	var createdAt, updatedAt string
	if err := scanner.Scan(&story.ID, &story.Slug, &story.Title, &story.Week, &story.Summary, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	story.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	story.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &story, nil
}
