package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
)

// reconciliationStore implements driven.ReconciliationStore.
type reconciliationStore struct {
	store *Store
}

var _ driven.ReconciliationStore = (*reconciliationStore)(nil)

// Save stores or updates a marker.
func (s *reconciliationStore) Save(ctx context.Context, r domain.Reconciliation) error {
	if r.ID == "" {
		return fmt.Errorf("%w: reconciliation id is empty", domain.ErrInvalidInput)
	}
	completed := r.Completed
	if completed == nil {
		completed = []domain.RegistrationStep{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("marshalling completed steps: %w", err)
	}

	var resolvedAt sql.NullInt64
	if r.ResolvedAt != nil {
		resolvedAt = sql.NullInt64{Int64: r.ResolvedAt.UnixNano(), Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO reconciliations
			(id, interprete_id, trecho_id, video_url, completed, failed_step, error, attempts, created_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			interprete_id = excluded.interprete_id,
			trecho_id = excluded.trecho_id,
			video_url = excluded.video_url,
			completed = excluded.completed,
			failed_step = excluded.failed_step,
			error = excluded.error,
			attempts = excluded.attempts,
			resolved_at = excluded.resolved_at
	`, r.ID, r.InterpreteID, r.TrechoID, r.VideoURL, string(completedJSON), string(r.FailedStep),
		r.Error, r.Attempts, r.CreatedAt.UnixNano(), resolvedAt)
	if err != nil {
		return fmt.Errorf("saving reconciliation %s: %w", r.ID, err)
	}
	return nil
}

// Get retrieves a marker by ID.
func (s *reconciliationStore) Get(ctx context.Context, id string) (*domain.Reconciliation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, interprete_id, trecho_id, video_url, completed, failed_step, error, attempts, created_at, resolved_at
		FROM reconciliations WHERE id = ?
	`, id)
	return scanReconciliation(row)
}

// List returns markers, oldest first.
func (s *reconciliationStore) List(ctx context.Context, includeResolved bool) ([]domain.Reconciliation, error) {
	query := `
		SELECT id, interprete_id, trecho_id, video_url, completed, failed_step, error, attempts, created_at, resolved_at
		FROM reconciliations`
	if !includeResolved {
		query += ` WHERE resolved_at IS NULL`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying reconciliations: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Reconciliation, 0)
	for rows.Next() {
		r, err := scanReconciliation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reconciliations: %w", err)
	}
	return result, nil
}

// Delete removes a marker. Deleting an unknown marker is not an error.
func (s *reconciliationStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM reconciliations WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting reconciliation %s: %w", id, err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReconciliation(row scanner) (*domain.Reconciliation, error) {
	var (
		r             domain.Reconciliation
		completedJSON string
		failedStep    string
		createdAt     int64
		resolvedAt    sql.NullInt64
	)
	err := row.Scan(&r.ID, &r.InterpreteID, &r.TrechoID, &r.VideoURL, &completedJSON,
		&failedStep, &r.Error, &r.Attempts, &createdAt, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning reconciliation: %w", err)
	}

	if err := json.Unmarshal([]byte(completedJSON), &r.Completed); err != nil {
		return nil, fmt.Errorf("unmarshalling completed steps: %w", err)
	}
	r.FailedStep = domain.RegistrationStep(failedStep)
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	if resolvedAt.Valid {
		t := time.Unix(0, resolvedAt.Int64).UTC()
		r.ResolvedAt = &t
	}
	return &r, nil
}
