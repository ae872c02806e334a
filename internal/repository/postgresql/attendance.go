package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.is_manual, a.is_business_trip, a.is_sick_leave,
	a.notes, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.AttendanceEntry, error) {
	var e attendance.AttendanceEntry
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.Date,
		&e.CheckIn,
		&e.CheckOut,
		&e.IsManual,
		&e.IsBusinessTrip,
		&e.IsSickLeave,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Upsert implements attendance.AttendanceRepository. The unique index
// on (employee_id, date) is the backstop against racing writers: the
// loser of a race updates instead of duplicating the row.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, entry attendance.AttendanceEntry) (attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_entries AS a (
			id, employee_id, date, check_in, check_out,
			is_manual, is_business_trip, is_sick_leave, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			is_manual = EXCLUDED.is_manual,
			is_business_trip = EXCLUDED.is_business_trip,
			is_sick_leave = EXCLUDED.is_sick_leave,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.Date,
		entry.CheckIn,
		entry.CheckOut,
		entry.IsManual,
		entry.IsBusinessTrip,
		entry.IsSickLeave,
		entry.Notes,
	))
	if err != nil {
		return attendance.AttendanceEntry{}, fmt.Errorf("failed to upsert attendance entry: %w", err)
	}
	return saved, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_entries a WHERE a.id = $1`

	entry, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceEntry{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceEntry{}, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	return entry, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
// A missing row is not an error; it means the employee has not checked
// in on that date.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_entries a WHERE a.employee_id = $1 AND a.date = $2`

	entry, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	return &entry, nil
}

// SetCheckOut implements attendance.AttendanceRepository. A nil
// checkOut re-opens the session after an expired mid-day permission.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, checkOut *time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE attendance_entries SET check_out = $2, updated_at = NOW() WHERE id = $1`, id, checkOut)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", idx)
		args = append(args, *filter.EmployeeID)
		idx++
	}
	if filter.Date != nil {
		where += fmt.Sprintf(" AND a.date = $%d", idx)
		args = append(args, *filter.Date)
		idx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND a.date >= $%d", idx)
		args = append(args, *filter.StartDate)
		idx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND a.date <= $%d", idx)
		args = append(args, *filter.EndDate)
		idx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_entries a` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance entries: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendance_entries a
		JOIN employees e ON e.id = a.employee_id` + where + `
		ORDER BY a.date DESC, e.full_name`

	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, filter.Limit, offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.AttendanceEntry
	for rows.Next() {
		var e attendance.AttendanceEntry
		if err := rows.Scan(
			&e.ID,
			&e.EmployeeID,
			&e.Date,
			&e.CheckIn,
			&e.CheckOut,
			&e.IsManual,
			&e.IsBusinessTrip,
			&e.IsSickLeave,
			&e.Notes,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
