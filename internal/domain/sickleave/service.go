package sickleave

import "context"

// SickLeaveService defines business logic for sick leaves. They are
// admin-entered facts, not requests, so there is no approval flow.
type SickLeaveService interface {
	Create(ctx context.Context, req CreateSickLeaveRequest) (SickLeaveResponse, error)

	List(ctx context.Context) ([]SickLeaveResponse, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]SickLeaveResponse, error)

	Delete(ctx context.Context, id string) error
}
