package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Time-of-day columns are selected as text so they scan into the
// "HH:MM:SS" strings the domain carries around.
const leaveRequestColumns = `
	l.id, l.employee_id, l.type, l.status,
	l.date_from, l.date_to, l.day,
	l.time_from::text, l.time_to::text,
	l.note, l.admin_note, l.created_at, l.updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.Type,
		&lr.Status,
		&lr.DateFrom,
		&lr.DateTo,
		&lr.Day,
		&lr.TimeFrom,
		&lr.TimeTo,
		&lr.Note,
		&lr.AdminNote,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests AS l (
			id, employee_id, type, status,
			date_from, date_to, day, time_from, time_to,
			note, admin_note, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL, NOW(), NOW()
		) RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.Type,
		req.Status,
		req.DateFrom,
		req.DateTo,
		req.Day,
		req.TimeFrom,
		req.TimeTo,
		req.Note,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests l WHERE l.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// ListApprovedVacations implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedVacations(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.listByTypeAndStatus(ctx, employeeID, leave.TypeFerie, leave.LeaveRequestStatusApproved)
}

// GetApprovedPermission implements leave.LeaveRequestRepository. Nil
// means no approved permesso covers the day; that is not an error.
func (r *leaveRequestRepositoryImpl) GetApprovedPermission(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		WHERE l.employee_id = $1
		  AND l.type = 'permesso'
		  AND l.status = 'approved'
		  AND l.day = $2
		ORDER BY l.created_at DESC
		LIMIT 1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved permission: %w", err)
	}
	return &lr, nil
}

// ListApprovedPermissions implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedPermissions(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return r.listByTypeAndStatus(ctx, employeeID, leave.TypePermesso, leave.LeaveRequestStatusApproved)
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		WHERE l.employee_id = $1 AND l.status = 'pending'
		ORDER BY l.created_at`

	return r.collect(q.Query(ctx, query, employeeID))
}

func (r *leaveRequestRepositoryImpl) listByTypeAndStatus(ctx context.Context, employeeID string, typ leave.LeaveType, st leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests l
		WHERE l.employee_id = $1 AND l.type = $2 AND l.status = $3
		ORDER BY l.created_at`

	return r.collect(q.Query(ctx, query, employeeID, typ, st))
}

func (r *leaveRequestRepositoryImpl) collect(rows pgx.Rows, err error) ([]leave.LeaveRequest, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND l.employee_id = $%d", idx)
		args = append(args, *filter.EmployeeID)
		idx++
	}
	if filter.Type != nil {
		where += fmt.Sprintf(" AND l.type = $%d", idx)
		args = append(args, *filter.Type)
		idx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND l.status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND COALESCE(l.date_to, l.day) >= $%d", idx)
		args = append(args, *filter.DateFrom)
		idx++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND COALESCE(l.date_from, l.day) <= $%d", idx)
		args = append(args, *filter.DateTo)
		idx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests l` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id` + where + `
		ORDER BY l.created_at DESC`

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
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.Type,
			&lr.Status,
			&lr.DateFrom,
			&lr.DateTo,
			&lr.Day,
			&lr.TimeFrom,
			&lr.TimeTo,
			&lr.Note,
			&lr.AdminNote,
			&lr.CreatedAt,
			&lr.UpdatedAt,
			&lr.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, total, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, adminNote *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $2,
			admin_note = COALESCE($3, admin_note),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, adminNote)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
