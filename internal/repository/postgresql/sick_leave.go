package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type sickLeaveRepositoryImpl struct {
	db *database.DB
}

func NewSickLeaveRepository(db *database.DB) sickleave.SickLeaveRepository {
	return &sickLeaveRepositoryImpl{db: db}
}

const sickLeaveColumns = `
	s.id, s.employee_id, s.start_date, s.end_date,
	s.reference, s.notes, s.created_at
`

func scanSickLeave(row pgx.Row) (sickleave.SickLeave, error) {
	var s sickleave.SickLeave
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.StartDate,
		&s.EndDate,
		&s.Reference,
		&s.Notes,
		&s.CreatedAt,
	)
	return s, err
}

// Create implements sickleave.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) Create(ctx context.Context, s sickleave.SickLeave) (sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sick_leaves AS s (
			id, employee_id, start_date, end_date, reference, notes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		) RETURNING ` + sickLeaveColumns

	created, err := scanSickLeave(q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.StartDate,
		s.EndDate,
		s.Reference,
		s.Notes,
	))
	if err != nil {
		return sickleave.SickLeave{}, fmt.Errorf("failed to create sick leave: %w", err)
	}
	return created, nil
}

// GetByID implements sickleave.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) GetByID(ctx context.Context, id string) (sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sickLeaveColumns + ` FROM sick_leaves s WHERE s.id = $1`

	s, err := scanSickLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sickleave.SickLeave{}, sickleave.ErrSickLeaveNotFound
		}
		return sickleave.SickLeave{}, fmt.Errorf("failed to get sick leave: %w", err)
	}
	return s, nil
}

// ListCovering implements sickleave.SickLeaveRepository. An empty
// result means no sick leave covers the date.
func (r *sickLeaveRepositoryImpl) ListCovering(ctx context.Context, employeeID string, date time.Time) ([]sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `
		FROM sick_leaves s
		WHERE s.employee_id = $1 AND $2 BETWEEN s.start_date AND s.end_date
		ORDER BY s.start_date`

	return r.collect(q.Query(ctx, query, employeeID, date))
}

// ListByEmployee implements sickleave.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `
		FROM sick_leaves s
		WHERE s.employee_id = $1
		ORDER BY s.start_date DESC`

	return r.collect(q.Query(ctx, query, employeeID))
}

// List implements sickleave.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) List(ctx context.Context) ([]sickleave.SickLeave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sickLeaveColumns + `, e.full_name
		FROM sick_leaves s
		JOIN employees e ON e.id = s.employee_id
		ORDER BY s.start_date DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	defer rows.Close()

	var leaves []sickleave.SickLeave
	for rows.Next() {
		var s sickleave.SickLeave
		if err := rows.Scan(
			&s.ID,
			&s.EmployeeID,
			&s.StartDate,
			&s.EndDate,
			&s.Reference,
			&s.Notes,
			&s.CreatedAt,
			&s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sick leave: %w", err)
		}
		leaves = append(leaves, s)
	}
	return leaves, rows.Err()
}

func (r *sickLeaveRepositoryImpl) collect(rows pgx.Rows, err error) ([]sickleave.SickLeave, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	defer rows.Close()

	var leaves []sickleave.SickLeave
	for rows.Next() {
		s, err := scanSickLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sick leave: %w", err)
		}
		leaves = append(leaves, s)
	}
	return leaves, rows.Err()
}

// Delete implements sickleave.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sick_leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sick leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sickleave.ErrSickLeaveNotFound
	}
	return nil
}
