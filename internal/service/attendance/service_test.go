package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/presenze-hr/presenze-backend-go/internal/service/eligibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 11, 9, 15, 0, 0, time.UTC)

func str(s string) *string { return &s }

type fakeResolver struct {
	status status.EmployeeStatus
	err    error
}

func (f fakeResolver) ResolveStatus(ctx context.Context, employeeID string, date time.Time) (status.EmployeeStatus, error) {
	return f.status, f.err
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	entry *attendance.AttendanceEntry

	upserted     *attendance.AttendanceEntry
	reopenedID   string
	checkedOutID string
	checkedOutAt *time.Time
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, entry attendance.AttendanceEntry) (attendance.AttendanceEntry, error) {
	f.upserted = &entry
	entry.ID = "att-new"
	return entry, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceEntry, error) {
	return f.entry, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut *time.Time) error {
	if checkOut == nil {
		f.reopenedID = id
	} else {
		f.checkedOutID = id
		f.checkedOutAt = checkOut
	}
	return nil
}

func newTestService(repo *fakeAttendanceRepo, resolver fakeResolver) attendance.AttendanceService {
	clk := clock.At(testNow)
	elig := eligibility.NewService(resolver, nil, nil, nil, clk)
	return NewAttendanceService(nil, repo, resolver, elig, clk)
}

func TestCheckInHardBlock(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{status: status.EmployeeStatus{
		Current:         status.StatusVacation,
		HasHardBlock:    true,
		BlockingReasons: []string{"approved vacation covers this date"},
	}})

	_, err := svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrDateBlocked)
}

func TestCheckInDuringActivePermission(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusPermission,
		AllowPermissionOverlap: true,
		BlockingReasons:        []string{"hourly permission active until 12:00:00"},
	}})

	_, err := svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrPermissionActive)
}

func TestCheckInReopensSessionAfterMidDayPermission(t *testing.T) {
	checkIn := testNow.Add(-2 * time.Hour)
	checkOut := testNow.Add(-1 * time.Hour)
	repo := &fakeAttendanceRepo{entry: &attendance.AttendanceEntry{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       validator.DateOnly(testNow),
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
	}}
	svc := newTestService(repo, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusPermission,
		AllowPermissionOverlap: true,
		HasHourlyPermission:    true,
		IsMidDayPermission:     true,
		IsPermissionExpired:    true,
		CanSecondCheckIn:       true,
	}})

	resp, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "att-1", repo.reopenedID)
	assert.Nil(t, resp.CheckOut)
	assert.Nil(t, repo.upserted, "reopening must not create a second entry")
}

func TestCheckInExpiredPermissionWithoutSecondCheckIn(t *testing.T) {
	checkIn := testNow.Add(-2 * time.Hour)
	repo := &fakeAttendanceRepo{entry: &attendance.AttendanceEntry{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       validator.DateOnly(testNow),
		CheckIn:    &checkIn,
	}}
	svc := newTestService(repo, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusPermission,
		AllowPermissionOverlap: true,
		HasHourlyPermission:    true,
		IsStartOfDayPermission: true,
		IsPermissionExpired:    true,
	}})

	_, err := svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInAlreadyPresent(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{status: status.EmployeeStatus{
		Current:     status.StatusAlreadyPresent,
		CanCheckOut: true,
	}})

	_, err := svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInCreatesEntry(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusAvailable,
		AllowPermissionOverlap: true,
	}})

	resp, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, "emp-1", repo.upserted.EmployeeID)
	assert.Equal(t, validator.DateOnly(testNow), repo.upserted.Date)
	require.NotNil(t, repo.upserted.CheckIn)
	assert.Equal(t, testNow, *repo.upserted.CheckIn)

	assert.Equal(t, "att-new", resp.ID)
	assert.Equal(t, "2025-06-11", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "09:15:00", *resp.CheckIn)
}

func TestCheckOutWithoutSession(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{})

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	checkIn := testNow.Add(-2 * time.Hour)
	checkOut := testNow.Add(-time.Hour)
	svc := newTestService(&fakeAttendanceRepo{entry: &attendance.AttendanceEntry{
		ID:       "att-1",
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}}, fakeResolver{})

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutClosesSession(t *testing.T) {
	checkIn := testNow.Add(-2 * time.Hour)
	repo := &fakeAttendanceRepo{entry: &attendance.AttendanceEntry{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       validator.DateOnly(testNow),
		CheckIn:    &checkIn,
	}}
	svc := newTestService(repo, fakeResolver{})

	resp, err := svc.CheckOut(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "att-1", repo.checkedOutID)
	require.NotNil(t, repo.checkedOutAt)
	assert.Equal(t, testNow, *repo.checkedOutAt)
	require.NotNil(t, resp.CheckOut)
	assert.Equal(t, "09:15:00", *resp.CheckOut)
}

func TestCreateManualEntryValidation(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{})

	_, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "11/06/2025",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "date")
}

func TestCreateManualEntryBlockedBySickLeave(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, fakeResolver{status: status.EmployeeStatus{
		Current:         status.StatusSick,
		HasHardBlock:    true,
		BlockingReasons: []string{"sick leave covers this date"},
		Details:         &status.Detail{Type: status.ConflictMalattia},
	}})

	_, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-11",
	})
	assert.ErrorIs(t, err, attendance.ErrSickLeaveConflict)
}

func TestCreateManualEntryWarnsOnPendingRequest(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusPendingRequest,
		AllowPermissionOverlap: true,
	}})

	resp, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-11",
		CheckIn:    str("09:00"),
		CheckOut:   str("17:00"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Warning)
	assert.Equal(t, "a pending leave request overlaps this date", *resp.Warning)

	require.NotNil(t, repo.upserted)
	assert.True(t, repo.upserted.IsManual)
	require.NotNil(t, repo.upserted.CheckIn)
	assert.Equal(t, time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC), *repo.upserted.CheckIn)
	require.NotNil(t, repo.upserted.CheckOut)
	assert.Equal(t, time.Date(2025, 6, 11, 17, 0, 0, 0, time.UTC), *repo.upserted.CheckOut)
}

func TestCreateManualEntryWithoutConflict(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(repo, fakeResolver{status: status.EmployeeStatus{
		Current:                status.StatusAvailable,
		AllowPermissionOverlap: true,
	}})

	resp, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-11",
		CheckIn:    str("08:30"),
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Warning)
	assert.Equal(t, "att-new", resp.Entry.ID)
	assert.True(t, resp.Entry.IsManual)
}
