package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type businessTripRepositoryImpl struct {
	db *database.DB
}

func NewBusinessTripRepository(db *database.DB) trip.BusinessTripRepository {
	return &businessTripRepositoryImpl{db: db}
}

const businessTripColumns = `
	t.id, t.employee_id, t.destination, t.start_date, t.end_date,
	t.status, t.notes, t.created_at, t.updated_at
`

func scanBusinessTrip(row pgx.Row) (trip.BusinessTrip, error) {
	var t trip.BusinessTrip
	err := row.Scan(
		&t.ID,
		&t.EmployeeID,
		&t.Destination,
		&t.StartDate,
		&t.EndDate,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) Create(ctx context.Context, t trip.BusinessTrip) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO business_trips AS t (
			id, employee_id, destination, start_date, end_date,
			status, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING ` + businessTripColumns

	created, err := scanBusinessTrip(q.QueryRow(ctx, query,
		t.ID,
		t.EmployeeID,
		t.Destination,
		t.StartDate,
		t.EndDate,
		t.Status,
		t.Notes,
	))
	if err != nil {
		return trip.BusinessTrip{}, fmt.Errorf("failed to create business trip: %w", err)
	}
	return created, nil
}

// GetByID implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) GetByID(ctx context.Context, id string) (trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + businessTripColumns + ` FROM business_trips t WHERE t.id = $1`

	t, err := scanBusinessTrip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.BusinessTrip{}, trip.ErrTripNotFound
		}
		return trip.BusinessTrip{}, fmt.Errorf("failed to get business trip: %w", err)
	}
	return t, nil
}

// ListApproved implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) ListApproved(ctx context.Context, employeeID string) ([]trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + businessTripColumns + `
		FROM business_trips t
		WHERE t.employee_id = $1 AND t.status = 'approved'
		ORDER BY t.start_date`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved business trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.BusinessTrip
	for rows.Next() {
		t, err := scanBusinessTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// List implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) List(ctx context.Context) ([]trip.BusinessTrip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + businessTripColumns + `, e.full_name
		FROM business_trips t
		JOIN employees e ON e.id = t.employee_id
		ORDER BY t.start_date DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list business trips: %w", err)
	}
	defer rows.Close()

	var trips []trip.BusinessTrip
	for rows.Next() {
		var t trip.BusinessTrip
		if err := rows.Scan(
			&t.ID,
			&t.EmployeeID,
			&t.Destination,
			&t.StartDate,
			&t.EndDate,
			&t.Status,
			&t.Notes,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan business trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// UpdateStatus implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) UpdateStatus(ctx context.Context, id string, status trip.TripStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE business_trips SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update business trip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trip.ErrTripNotFound
	}
	return nil
}

// Delete implements trip.BusinessTripRepository.
func (r *businessTripRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM business_trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trip.ErrTripNotFound
	}
	return nil
}
