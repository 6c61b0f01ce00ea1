package artifacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"tubenote/internal/config"
)

// Store manages artifact persistence backed by SQLite. Opening the store
// acquires a file lock next to the database so concurrent invocations do not
// interleave writes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the artifact database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "artifacts.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire artifact lock: %w", err)
	}
	if !locked {
		return nil, errors.New("artifact store is in use by another process")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "artifacts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
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
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save upserts an artifact on its (video, task, subtype) key and returns the
// stored row. A regenerated artifact replaces the previous payload; the
// original creation time survives the replacement.
func (s *Store) Save(ctx context.Context, artifact *Artifact) (*Artifact, error) {
	if artifact == nil {
		return nil, errors.New("artifact is nil")
	}
	if artifact.VideoID == "" && artifact.Task != "comment_categorization" {
		return nil, errors.New("artifact has no video id")
	}
	if artifact.Task == "" {
		return nil, errors.New("artifact has no task")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO artifacts (
            video_id, task, subtype, payload_json, request_id, model, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (video_id, task, subtype) DO UPDATE SET
            payload_json = excluded.payload_json,
            request_id = excluded.request_id,
            model = excluded.model,
            updated_at = excluded.updated_at`,
		artifact.VideoID,
		artifact.Task,
		artifact.Subtype,
		artifact.Payload,
		nullableString(artifact.RequestID),
		nullableString(artifact.Model),
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	return s.Find(ctx, artifact.VideoID, artifact.Task, artifact.Subtype)
}

// Find returns the artifact for a (video, task, subtype) key, or nil when
// none is stored.
func (s *Store) Find(ctx context.Context, videoID, task, subtype string) (*Artifact, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+artifactColumns+` FROM artifacts WHERE video_id = ? AND task = ? AND subtype = ?`,
		videoID, task, subtype,
	)
	artifact, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find artifact: %w", err)
	}
	return artifact, nil
}

// GetByID fetches an artifact by row identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Artifact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = ?`, id)
	artifact, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	return artifact, nil
}

// List returns stored artifacts, optionally filtered by video, newest first.
func (s *Store) List(ctx context.Context, videoID string) ([]*Artifact, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if videoID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+artifactColumns+` FROM artifacts ORDER BY updated_at DESC`)
	} else {
		rows, err = s.db.QueryContext(
			ctx,
			`SELECT `+artifactColumns+` FROM artifacts WHERE video_id = ? ORDER BY updated_at DESC`,
			videoID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, rows.Err()
}

// Remove deletes an artifact by identifier.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete artifact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of artifacts grouped by task.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT task, COUNT(1) FROM artifacts GROUP BY task`)
	if err != nil {
		return nil, fmt.Errorf("artifact stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var task string
		var count int
		if err := rows.Scan(&task, &count); err != nil {
			return nil, err
		}
		stats[task] = count
	}
	return stats, rows.Err()
}

const artifactColumns = "id, video_id, task, subtype, payload_json, request_id, model, created_at, updated_at"

func scanArtifact(scanner interface{ Scan(dest ...any) error }) (*Artifact, error) {
	var (
		id         int64
		videoID    string
		task       string
		subtype    string
		payload    string
		requestID  sql.NullString
		model      sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&id, &videoID, &task, &subtype, &payload, &requestID, &model, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	artifact := &Artifact{
		ID:        id,
		VideoID:   videoID,
		Task:      task,
		Subtype:   subtype,
		Payload:   payload,
		RequestID: requestID.String,
		Model:     model.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		artifact.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		artifact.UpdatedAt = updated
	}
	return artifact, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
