package trip

import (
	"context"
	"testing"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeTripRepo struct {
	trip.BusinessTripRepository
	existing trip.BusinessTrip

	created       *trip.BusinessTrip
	updatedID     string
	updatedStatus trip.TripStatus
}

func (f *fakeTripRepo) Create(ctx context.Context, bt trip.BusinessTrip) (trip.BusinessTrip, error) {
	f.created = &bt
	bt.ID = "trip-new"
	return bt, nil
}

func (f *fakeTripRepo) GetByID(ctx context.Context, id string) (trip.BusinessTrip, error) {
	return f.existing, nil
}

func (f *fakeTripRepo) UpdateStatus(ctx context.Context, id string, st trip.TripStatus) error {
	f.updatedID = id
	f.updatedStatus = st
	return nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	existing map[string]*attendance.AttendanceEntry // keyed by date string

	upserted []attendance.AttendanceEntry
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, d time.Time) (*attendance.AttendanceEntry, error) {
	return f.existing[d.Format("2006-01-02")], nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, entry attendance.AttendanceEntry) (attendance.AttendanceEntry, error) {
	f.upserted = append(f.upserted, entry)
	return entry, nil
}

type fakeSchedules struct {
	schedule.WorkScheduleRepository
}

func (f fakeSchedules) GetByEmployee(ctx context.Context, employeeID string) (*schedule.WorkSchedule, error) {
	return nil, nil
}

func (f fakeSchedules) GetCompanyDefault(ctx context.Context) (*schedule.WorkSchedule, error) {
	return nil, nil
}

type fakeHolidays struct {
	schedule.HolidayRepository
	holidays []schedule.CompanyHoliday
}

func (f fakeHolidays) GetByDate(ctx context.Context, d time.Time) (*schedule.CompanyHoliday, error) {
	for _, h := range f.holidays {
		if h.Matches(d) {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
	err error
}

func (f fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id}, f.err
}

func newTestService(trips *fakeTripRepo, att *fakeAttendanceRepo, holidays fakeHolidays) trip.TripService {
	return NewTripService(trips, att, fakeSchedules{}, holidays, fakeEmployees{})
}

func TestCreateTrip(t *testing.T) {
	trips := &fakeTripRepo{}
	svc := newTestService(trips, &fakeAttendanceRepo{}, fakeHolidays{})

	resp, err := svc.Create(context.Background(), trip.CreateTripRequest{
		EmployeeID:  "emp-1",
		Destination: "Milano",
		StartDate:   "2025-06-16",
		EndDate:     "2025-06-18",
	})
	require.NoError(t, err)

	require.NotNil(t, trips.created)
	assert.Equal(t, trip.TripStatusPending, trips.created.Status)
	assert.Equal(t, "trip-new", resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateTripMissingEmployee(t *testing.T) {
	trips := &fakeTripRepo{}
	svc := NewTripService(trips, &fakeAttendanceRepo{}, fakeSchedules{}, fakeHolidays{}, fakeEmployees{err: employee.ErrEmployeeNotFound})

	_, err := svc.Create(context.Background(), trip.CreateTripRequest{
		EmployeeID:  "ghost",
		Destination: "Milano",
		StartDate:   "2025-06-16",
		EndDate:     "2025-06-18",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Nil(t, trips.created)
}

// Approval materializes one flagged attendance entry per working day,
// skipping weekends, holidays and days that already have an entry.
func TestApproveMaterializesAttendance(t *testing.T) {
	trips := &fakeTripRepo{existing: trip.BusinessTrip{
		ID:          "trip-1",
		EmployeeID:  "emp-1",
		Destination: "Milano",
		Status:      trip.TripStatusPending,
		// Fri 2025-06-13 through Tue 2025-06-17.
		StartDate: date(2025, time.June, 13),
		EndDate:   date(2025, time.June, 17),
	}}
	att := &fakeAttendanceRepo{existing: map[string]*attendance.AttendanceEntry{
		"2025-06-17": {ID: "att-existing"},
	}}
	holidays := fakeHolidays{holidays: []schedule.CompanyHoliday{
		{Name: "Festa", Date: date(2025, time.June, 16)},
	}}
	svc := newTestService(trips, att, holidays)

	resp, err := svc.Approve(context.Background(), "trip-1")
	require.NoError(t, err)

	assert.Equal(t, trip.TripStatusApproved, trips.updatedStatus)
	assert.Equal(t, "approved", resp.Status)

	// Friday the 13th is the only day left: 14/15 are the weekend, the
	// 16th is a holiday and the 17th already has an entry.
	require.Len(t, att.upserted, 1)
	entry := att.upserted[0]
	assert.Equal(t, date(2025, time.June, 13), entry.Date)
	assert.True(t, entry.IsBusinessTrip)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "Milano", *entry.Notes)
}

func TestApproveProcessedTrip(t *testing.T) {
	trips := &fakeTripRepo{existing: trip.BusinessTrip{
		ID:     "trip-1",
		Status: trip.TripStatusApproved,
	}}
	svc := newTestService(trips, &fakeAttendanceRepo{}, fakeHolidays{})

	_, err := svc.Approve(context.Background(), "trip-1")
	assert.ErrorIs(t, err, trip.ErrTripAlreadyProcessed)
	assert.Empty(t, trips.updatedID)
}

func TestRejectDoesNotTouchAttendance(t *testing.T) {
	trips := &fakeTripRepo{existing: trip.BusinessTrip{
		ID:         "trip-1",
		EmployeeID: "emp-1",
		Status:     trip.TripStatusPending,
		StartDate:  date(2025, time.June, 16),
		EndDate:    date(2025, time.June, 18),
	}}
	att := &fakeAttendanceRepo{}
	svc := newTestService(trips, att, fakeHolidays{})

	resp, err := svc.Reject(context.Background(), "trip-1")
	require.NoError(t, err)

	assert.Equal(t, trip.TripStatusRejected, trips.updatedStatus)
	assert.Equal(t, "rejected", resp.Status)
	assert.Empty(t, att.upserted)
}
