package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eventpass/eventpass/internal/entity"

	"github.com/lib/pq"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create relies on the registrations_user_event_key unique constraint
// instead of a pre-insert existence check, so two concurrent inserts
// for the same pair cannot both succeed.
func (r *registrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	query := `
		INSERT INTO registrations (user_id, event_id, qr_code, attendance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		reg.UserID,
		reg.EventID,
		reg.QRCode,
		reg.Attendance,
		time.Now(),
	).Scan(&reg.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return entity.ErrDuplicateRegistration
	}
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*entity.Registration, error) {
	query := `
		SELECT id, user_id, event_id, qr_code, attendance, created_at
		FROM registrations
		WHERE id = $1
	`

	var reg entity.Registration
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.QRCode,
		&reg.Attendance,
		&reg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *registrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*entity.Registration, error) {
	query := `
		SELECT id, user_id, event_id, qr_code, attendance, created_at
		FROM registrations
		WHERE user_id = $1 AND event_id = $2
	`

	var reg entity.Registration
	err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.QRCode,
		&reg.Attendance,
		&reg.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *registrationRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Registration, error) {
	query := `
		SELECT id, user_id, event_id, qr_code, attendance, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY id
	`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *registrationRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.Registration, error) {
	query := `
		SELECT id, user_id, event_id, qr_code, attendance, created_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY id
	`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...interface{}) ([]*entity.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*entity.Registration
	for rows.Next() {
		var reg entity.Registration
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.QRCode,
			&reg.Attendance,
			&reg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}

func (r *registrationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrRegistrationNotFound
	}

	return nil
}

// MarkPresent performs the Absent -> Present transition as a single
// conditional UPDATE, so the read and the write cannot interleave with
// a concurrent scan of the same code.
func (r *registrationRepository) MarkPresent(ctx context.Context, userID, eventID int64) (bool, error) {
	query := `
		UPDATE registrations
		SET attendance = $1
		WHERE user_id = $2 AND event_id = $3 AND attendance = $4
	`

	result, err := r.db.ExecContext(ctx, query,
		entity.AttendancePresent, userID, eventID, entity.AttendanceAbsent)
	if err != nil {
		return false, fmt.Errorf("failed to mark attendance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// StreamReport feeds report rows to fn one at a time, never holding
// the full ledger in memory.
func (r *registrationRepository) StreamReport(ctx context.Context, fn func(row entity.ReportRow) error) error {
	query := `
		SELECT user_id, event_id, attendance
		FROM registrations
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row entity.ReportRow
		if err := rows.Scan(&row.UserID, &row.EventID, &row.Attendance); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}

	return rows.Err()
}

// ListArtifacts returns the qr_code filenames currently referenced by
// the ledger. Used by the artifact sweeper.
func (r *registrationRepository) ListArtifacts(ctx context.Context) ([]string, error) {
	query := `SELECT qr_code FROM registrations WHERE qr_code <> ''`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
