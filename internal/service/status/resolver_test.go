package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/attendance"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/leave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/schedule"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/sickleave"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/status"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/trip"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday. The default schedule works Monday to Friday from 08:00.
var (
	testDay = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	testEmp = "emp-1"
)

func at(hour, minute int) clock.Clock {
	return clock.At(time.Date(2025, 6, 11, hour, minute, 0, 0, time.UTC))
}

func str(s string) *string { return &s }

type fakeSickLeaves struct {
	sickleave.SickLeaveRepository
	leaves []sickleave.SickLeave
	err    error
}

func (f fakeSickLeaves) ListCovering(ctx context.Context, employeeID string, date time.Time) ([]sickleave.SickLeave, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []sickleave.SickLeave
	for _, s := range f.leaves {
		if s.EmployeeID == employeeID && s.Covers(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeLeaveRequests struct {
	leave.LeaveRequestRepository
	requests []leave.LeaveRequest
	err      error
}

func (f fakeLeaveRequests) ListApprovedVacations(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return f.filter(employeeID, leave.TypeFerie, leave.LeaveRequestStatusApproved)
}

func (f fakeLeaveRequests) GetApprovedPermission(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Type == leave.TypePermesso && r.Status == leave.LeaveRequestStatusApproved && r.CoversDate(day) {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (f fakeLeaveRequests) ListPending(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Status == leave.LeaveRequestStatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeLeaveRequests) filter(employeeID string, typ leave.LeaveType, st leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Type == typ && r.Status == st {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTrips struct {
	trip.BusinessTripRepository
	trips []trip.BusinessTrip
	err   error
}

func (f fakeTrips) ListApproved(ctx context.Context, employeeID string) ([]trip.BusinessTrip, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []trip.BusinessTrip
	for _, t := range f.trips {
		if t.EmployeeID == employeeID && t.Status == trip.TripStatusApproved {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeAttendance struct {
	attendance.AttendanceRepository
	entry *attendance.AttendanceEntry
	err   error
}

func (f fakeAttendance) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entry, nil
}

type fakeSchedules struct {
	schedule.WorkScheduleRepository
	override *schedule.WorkSchedule
	company  *schedule.WorkSchedule
}

func (f fakeSchedules) GetByEmployee(ctx context.Context, employeeID string) (*schedule.WorkSchedule, error) {
	return f.override, nil
}

func (f fakeSchedules) GetCompanyDefault(ctx context.Context) (*schedule.WorkSchedule, error) {
	return f.company, nil
}

type resolverDeps struct {
	sick  fakeSickLeaves
	leave fakeLeaveRequests
	trips fakeTrips
	att   fakeAttendance
	sched fakeSchedules
	clock clock.Clock
}

func newTestResolver(d resolverDeps) status.Resolver {
	if d.clock == nil {
		d.clock = at(10, 0)
	}
	return NewResolver(d.sick, d.leave, d.trips, d.att, d.sched, d.clock)
}

func approvedPermission(timeFrom, timeTo *string) leave.LeaveRequest {
	day := testDay
	return leave.LeaveRequest{
		ID:         "perm-1",
		EmployeeID: testEmp,
		Type:       leave.TypePermesso,
		Status:     leave.LeaveRequestStatusApproved,
		Day:        &day,
		TimeFrom:   timeFrom,
		TimeTo:     timeTo,
	}
}

func TestResolveStatusMissingEmployeeID(t *testing.T) {
	r := newTestResolver(resolverDeps{})

	st, err := r.ResolveStatus(context.Background(), "", testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusAvailable, st.Current)
	assert.Equal(t, status.PriorityNone, st.ConflictPriority)
	assert.False(t, st.HasHardBlock)
	assert.Equal(t, []string{"employee identity not resolved"}, st.BlockingReasons)
}

func TestResolveStatusNoConflicts(t *testing.T) {
	r := newTestResolver(resolverDeps{})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusAvailable, st.Current)
	assert.Equal(t, status.PriorityNone, st.ConflictPriority)
	assert.False(t, st.HasHardBlock)
	assert.True(t, st.AllowPermissionOverlap)
	assert.Empty(t, st.BlockingReasons)
	assert.Nil(t, st.Details)
}

func TestResolveStatusSickLeaveWinsOverEverything(t *testing.T) {
	day := testDay
	r := newTestResolver(resolverDeps{
		sick: fakeSickLeaves{leaves: []sickleave.SickLeave{{
			EmployeeID: testEmp,
			StartDate:  testDay.AddDate(0, 0, -1),
			EndDate:    testDay.AddDate(0, 0, 1),
		}}},
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{{
			EmployeeID: testEmp,
			Type:       leave.TypeFerie,
			Status:     leave.LeaveRequestStatusApproved,
			DateFrom:   &day,
			DateTo:     &day,
		}}},
		trips: fakeTrips{trips: []trip.BusinessTrip{{
			EmployeeID: testEmp,
			Status:     trip.TripStatusApproved,
			StartDate:  testDay,
			EndDate:    testDay,
		}}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusSick, st.Current)
	assert.Equal(t, status.PrioritySick, st.ConflictPriority)
	assert.True(t, st.HasHardBlock)
	assert.False(t, st.AllowPermissionOverlap)
	require.NotNil(t, st.Details)
	assert.Equal(t, status.ConflictMalattia, st.Details.Type)
}

func TestResolveStatusApprovedVacation(t *testing.T) {
	from := testDay.AddDate(0, 0, -2)
	to := testDay.AddDate(0, 0, 2)
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{{
			EmployeeID: testEmp,
			Type:       leave.TypeFerie,
			Status:     leave.LeaveRequestStatusApproved,
			DateFrom:   &from,
			DateTo:     &to,
		}}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusVacation, st.Current)
	assert.Equal(t, status.PriorityVacation, st.ConflictPriority)
	assert.True(t, st.HasHardBlock)
	require.NotNil(t, st.Details)
	assert.Equal(t, status.ConflictFerie, st.Details.Type)
}

// A business trip is evaluated before a permission and wins, even
// though its priority number is lower.
func TestResolveStatusBusinessTripBeatsPermission(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("10:00:00"), str("12:00:00")),
		}},
		trips: fakeTrips{trips: []trip.BusinessTrip{{
			EmployeeID:  testEmp,
			Destination: "Milano",
			Status:      trip.TripStatusApproved,
			StartDate:   testDay,
			EndDate:     testDay,
		}}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusBusinessTrip, st.Current)
	assert.Equal(t, status.PriorityBusinessTrip, st.ConflictPriority)
	assert.True(t, st.HasHardBlock)
	require.NotNil(t, st.Details)
	assert.Equal(t, status.ConflictTrasferta, st.Details.Type)
}

func TestResolveStatusHourlyPermissionActive(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("09:30:00"), str("12:00:00")),
		}},
		clock: at(10, 0),
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusPermission, st.Current)
	assert.Equal(t, status.PriorityPermission, st.ConflictPriority)
	assert.False(t, st.HasHardBlock)
	assert.True(t, st.AllowPermissionOverlap)
	assert.True(t, st.HasHourlyPermission)
	assert.True(t, st.IsMidDayPermission)
	assert.False(t, st.IsStartOfDayPermission)
	assert.False(t, st.IsPermissionExpired)
	assert.False(t, st.CanSecondCheckIn)
	assert.True(t, st.PermissionBlocks())
	require.NotNil(t, st.PermissionEndTime)
	assert.Equal(t, "12:00:00", *st.PermissionEndTime)
}

func TestResolveStatusMidDayPermissionExpired(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("09:30:00"), str("11:00:00")),
		}},
		clock: at(13, 0),
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusPermission, st.Current)
	assert.True(t, st.IsMidDayPermission)
	assert.True(t, st.IsPermissionExpired)
	assert.True(t, st.CanSecondCheckIn)
	assert.False(t, st.PermissionBlocks())
}

// A start-of-day permission never allows a second check-in: the first
// check-in is still ahead once it expires.
func TestResolveStatusStartOfDayPermissionExpired(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("08:00:00"), str("10:00:00")),
		}},
		clock: at(11, 0),
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.True(t, st.IsStartOfDayPermission)
	assert.False(t, st.IsMidDayPermission)
	assert.True(t, st.IsPermissionExpired)
	assert.False(t, st.CanSecondCheckIn)
}

// The 60-minute window around the work start is inclusive.
func TestResolveStatusStartOfDayBoundary(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("09:00:00"), str("10:00:00")),
		}},
		clock: at(8, 0),
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.True(t, st.IsStartOfDayPermission)
}

func TestResolveStatusFullDayPermission(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(nil, nil),
		}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusPermission, st.Current)
	assert.False(t, st.HasHourlyPermission)
	assert.False(t, st.CanSecondCheckIn)
	assert.True(t, st.PermissionBlocks())
	assert.Contains(t, st.BlockingReasons, "full-day permission for this date")
}

// A permission with exactly one time endpoint is rejected outright.
func TestResolveStatusMalformedPermission(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("09:00:00"), nil),
		}},
	})

	_, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	assert.ErrorIs(t, err, leave.ErrMalformedPermission)
}

func TestResolveStatusAlreadyPresent(t *testing.T) {
	checkIn := testDay.Add(8 * time.Hour)
	r := newTestResolver(resolverDeps{
		att: fakeAttendance{entry: &attendance.AttendanceEntry{
			ID:         "att-1",
			EmployeeID: testEmp,
			Date:       testDay,
			CheckIn:    &checkIn,
		}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusAlreadyPresent, st.Current)
	assert.Equal(t, status.PriorityAttendance, st.ConflictPriority)
	assert.False(t, st.HasHardBlock)
	assert.True(t, st.CanCheckOut)
	require.NotNil(t, st.Details)
	assert.Equal(t, status.ConflictPresenza, st.Details.Type)
}

// Entries materialized from business trips do not count as presence.
func TestResolveStatusTripEntryIgnored(t *testing.T) {
	r := newTestResolver(resolverDeps{
		att: fakeAttendance{entry: &attendance.AttendanceEntry{
			ID:             "att-1",
			EmployeeID:     testEmp,
			Date:           testDay,
			IsBusinessTrip: true,
		}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusAvailable, st.Current)
}

func TestResolveStatusPendingRequestIsInformational(t *testing.T) {
	from := testDay
	to := testDay.AddDate(0, 0, 3)
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{{
			EmployeeID: testEmp,
			Type:       leave.TypeFerie,
			Status:     leave.LeaveRequestStatusPending,
			DateFrom:   &from,
			DateTo:     &to,
		}}},
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, status.StatusPendingRequest, st.Current)
	assert.Equal(t, status.PriorityNone, st.ConflictPriority)
	assert.False(t, st.HasHardBlock)
	assert.Len(t, st.BlockingReasons, 1)
	require.NotNil(t, st.Details)
	assert.Equal(t, status.ConflictRichiesta, st.Details.Type)
}

func TestResolveStatusNonWorkingDayNote(t *testing.T) {
	// Saturday under the default schedule.
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	r := newTestResolver(resolverDeps{
		clock: clock.At(time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)),
	})

	st, err := r.ResolveStatus(context.Background(), testEmp, saturday)
	require.NoError(t, err)

	assert.Equal(t, status.StatusAvailable, st.Current)
	assert.Contains(t, st.BlockingReasons, "today is not a configured working day")
}

// The work-day note only applies when the target date is today.
func TestResolveStatusNoWorkDayNoteForOtherDates(t *testing.T) {
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	r := newTestResolver(resolverDeps{clock: at(10, 0)})

	st, err := r.ResolveStatus(context.Background(), testEmp, saturday)
	require.NoError(t, err)

	assert.Empty(t, st.BlockingReasons)
}

func TestResolveStatusRepositoryErrorAborts(t *testing.T) {
	boom := errors.New("connection reset")
	r := newTestResolver(resolverDeps{
		sick: fakeSickLeaves{err: boom},
	})

	_, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	assert.ErrorIs(t, err, boom)
}

func TestResolveStatusIsIdempotent(t *testing.T) {
	r := newTestResolver(resolverDeps{
		leave: fakeLeaveRequests{requests: []leave.LeaveRequest{
			approvedPermission(str("09:30:00"), str("11:00:00")),
		}},
		clock: at(13, 0),
	})

	first, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)
	second, err := r.ResolveStatus(context.Background(), testEmp, testDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
