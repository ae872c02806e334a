package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) schedule.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `h.id, h.name, h.date, h.recurring, h.created_at`

func scanHoliday(row pgx.Row) (schedule.CompanyHoliday, error) {
	var h schedule.CompanyHoliday
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Date,
		&h.Recurring,
		&h.CreatedAt,
	)
	return h, err
}

// Create implements schedule.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h schedule.CompanyHoliday) (schedule.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query := `
		INSERT INTO company_holidays AS h (
			id, name, date, recurring, created_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		) RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query, h.ID, h.Name, h.Date, h.Recurring))
	if err != nil {
		return schedule.CompanyHoliday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// List implements schedule.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]schedule.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM company_holidays h ORDER BY h.date`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.CompanyHoliday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetByDate implements schedule.HolidayRepository. Recurring holidays
// match on month and day regardless of year. Nil means the date is not
// a holiday.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (*schedule.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + holidayColumns + `
		FROM company_holidays h
		WHERE (h.recurring AND EXTRACT(MONTH FROM h.date) = EXTRACT(MONTH FROM $1::date)
		                   AND EXTRACT(DAY FROM h.date) = EXTRACT(DAY FROM $1::date))
		   OR (NOT h.recurring AND h.date = $1::date)
		LIMIT 1`

	h, err := scanHoliday(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return &h, nil
}

// Delete implements schedule.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM company_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrHolidayNotFound
	}
	return nil
}
