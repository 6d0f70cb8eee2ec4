package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reclip/internal/config"
)

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
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

// Path returns the ledger database file location.
func (s *Store) Path() string {
	return s.path
}

const entryColumns = "video_id, title, compilation_path, processed_at, published_at, status"

// RecordStarted inserts a pending row for a video. The insert is a no-op if
// the key already exists, so repeated calls across passes are harmless.
func (s *Store) RecordStarted(ctx context.Context, videoID, title, compilationPath string) error {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return errors.New("video id required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO processed_videos
            (video_id, title, compilation_path, processed_at, status)
         VALUES (?, ?, ?, ?, ?)`,
		videoID,
		nullableString(title),
		nullableString(compilationPath),
		now,
		StatusPending,
	)
	if err != nil {
		return fmt.Errorf("record started: %w", err)
	}
	return nil
}

// SetCompilationPath updates the compilation path for an existing row. Used
// when a later pass rebuilds the compilation for a still-pending video.
func (s *Store) SetCompilationPath(ctx context.Context, videoID, compilationPath string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE processed_videos SET compilation_path = ? WHERE video_id = ?`,
		nullableString(compilationPath),
		videoID,
	)
	if err != nil {
		return fmt.Errorf("set compilation path: %w", err)
	}
	return nil
}

// MarkPublished records a confirmed publish for a video.
func (s *Store) MarkPublished(ctx context.Context, videoID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE processed_videos SET status = ?, published_at = ? WHERE video_id = ?`,
		StatusUploaded,
		now,
		videoID,
	)
	if err != nil {
		return fmt.Errorf("mark published: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark published rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark published: no ledger row for %s", videoID)
	}
	return nil
}

// StatusOf returns the publication status for a video; StatusUnseen when the
// ledger has no row.
func (s *Store) StatusOf(ctx context.Context, videoID string) (Status, error) {
	var status Status
	err := s.db.QueryRowContext(
		ctx,
		`SELECT status FROM processed_videos WHERE video_id = ?`,
		videoID,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusUnseen, nil
	}
	if err != nil {
		return "", fmt.Errorf("status of %s: %w", videoID, err)
	}
	return status, nil
}

// Get fetches a ledger entry by video ID; nil when absent.
func (s *Store) Get(ctx context.Context, videoID string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM processed_videos WHERE video_id = ?`,
		videoID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// KnownIDs returns the set of all video IDs the ledger has rows for.
func (s *Store) KnownIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT video_id FROM processed_videos`)
	if err != nil {
		return nil, fmt.Errorf("known ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// PendingUploads returns pending entries that already have a compilation
// file recorded, oldest first. These are published before new items are
// drained.
func (s *Store) PendingUploads(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM processed_videos
         WHERE status = ? AND compilation_path IS NOT NULL AND compilation_path != ''
         ORDER BY processed_at`,
		StatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("pending uploads: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// List returns all ledger entries, newest first.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM processed_videos ORDER BY processed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Clear removes all ledger rows. Maintenance only; callers are expected to
// back up first.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM processed_videos`)
	if err != nil {
		return 0, fmt.Errorf("clear ledger: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry       Entry
		title       sql.NullString
		compilation sql.NullString
		processedAt string
		publishedAt sql.NullString
	)
	if err := row.Scan(&entry.VideoID, &title, &compilation, &processedAt, &publishedAt, &entry.Status); err != nil {
		return nil, err
	}
	entry.Title = title.String
	entry.CompilationPath = compilation.String
	if ts, err := time.Parse(time.RFC3339Nano, processedAt); err == nil {
		entry.ProcessedAt = ts
	}
	if publishedAt.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, publishedAt.String); err == nil {
			entry.PublishedAt = &ts
		}
	}
	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
