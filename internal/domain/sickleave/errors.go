package sickleave

import "errors"

// Sick leave domain errors
var (
	ErrSickLeaveNotFound = errors.New("sick leave not found")
	ErrInvalidDateRange  = errors.New("end_date must not precede start_date")
)
