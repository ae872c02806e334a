package sickleave

import (
	"context"
	"time"
)

// SickLeaveRepository defines data access methods for sick leaves.
type SickLeaveRepository interface {
	Create(ctx context.Context, s SickLeave) (SickLeave, error)

	GetByID(ctx context.Context, id string) (SickLeave, error)

	// ListCovering returns sick leaves where start_date <= date <= end_date.
	ListCovering(ctx context.Context, employeeID string, date time.Time) ([]SickLeave, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]SickLeave, error)

	List(ctx context.Context) ([]SickLeave, error)

	Delete(ctx context.Context, id string) error
}
