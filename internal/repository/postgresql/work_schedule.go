package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

const workScheduleColumns = `
	w.id, w.employee_id,
	w.start_time::text, w.end_time::text,
	w.monday, w.tuesday, w.wednesday, w.thursday, w.friday, w.saturday, w.sunday,
	w.tolerance_minutes, w.created_at, w.updated_at
`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var ws schedule.WorkSchedule
	err := row.Scan(
		&ws.ID,
		&ws.EmployeeID,
		&ws.StartTime,
		&ws.EndTime,
		&ws.Monday,
		&ws.Tuesday,
		&ws.Wednesday,
		&ws.Thursday,
		&ws.Friday,
		&ws.Saturday,
		&ws.Sunday,
		&ws.ToleranceMinutes,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	return ws, err
}

// GetCompanyDefault implements schedule.WorkScheduleRepository. Nil
// means no company-wide schedule is configured.
func (r *workScheduleRepositoryImpl) GetCompanyDefault(ctx context.Context) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules w WHERE w.employee_id IS NULL`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company schedule: %w", err)
	}
	return &ws, nil
}

// GetByEmployee implements schedule.WorkScheduleRepository. Nil means
// the employee follows the company default.
func (r *workScheduleRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules w WHERE w.employee_id = $1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee schedule: %w", err)
	}
	return &ws, nil
}

// Upsert implements schedule.WorkScheduleRepository. The partial
// unique indexes (one row with a NULL employee_id, one per employee)
// make the ON CONFLICT arbiter work for both shapes.
func (r *workScheduleRepositoryImpl) Upsert(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}

	query := `
		INSERT INTO work_schedules AS w (
			id, employee_id, start_time, end_time,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			tolerance_minutes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
		ON CONFLICT (COALESCE(employee_id, '')) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			monday = EXCLUDED.monday,
			tuesday = EXCLUDED.tuesday,
			wednesday = EXCLUDED.wednesday,
			thursday = EXCLUDED.thursday,
			friday = EXCLUDED.friday,
			saturday = EXCLUDED.saturday,
			sunday = EXCLUDED.sunday,
			tolerance_minutes = EXCLUDED.tolerance_minutes,
			updated_at = NOW()
		RETURNING ` + workScheduleColumns

	saved, err := scanWorkSchedule(q.QueryRow(ctx, query,
		ws.ID,
		ws.EmployeeID,
		ws.StartTime,
		ws.EndTime,
		ws.Monday,
		ws.Tuesday,
		ws.Wednesday,
		ws.Thursday,
		ws.Friday,
		ws.Saturday,
		ws.Sunday,
		ws.ToleranceMinutes,
	))
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to upsert work schedule: %w", err)
	}
	return saved, nil
}

// DeleteEmployeeOverride implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) DeleteEmployeeOverride(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedules WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
