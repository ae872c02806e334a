package auth

import (
	"context"
	"testing"

	"github.com/presenze-hr/presenze-backend-go/internal/domain/auth"
	"github.com/presenze-hr/presenze-backend-go/internal/domain/employee"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/jwt"
	"github.com/presenze-hr/presenze-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type fakeEmployees struct {
	employee.EmployeeRepository
	emp employee.Employee
	err error
}

func (f fakeEmployees) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return f.emp, f.err
}

func (f fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return f.emp, f.err
}

func testEmployee(t *testing.T) employee.Employee {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	return employee.Employee{
		ID:           "emp-1",
		FullName:     "Mario Rossi",
		Email:        "mario@example.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
}

func newTestService(t *testing.T, repo fakeEmployees) (auth.AuthService, jwt.Service) {
	jwtService := jwt.NewJWTService(testSecret, "1h", "24h")
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin(t *testing.T) {
	svc, jwtService := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Mario Rossi", resp.FullName)
	assert.True(t, resp.IsAdmin)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The refresh token round-trips through the issuing service.
	employeeID, err := jwtService.ParseRefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "mario@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// An unknown email reports the same error as a wrong password.
func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t, fakeEmployees{err: employee.ErrEmployeeNotFound})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestService(t, fakeEmployees{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "password")
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, jwtService := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	first, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The presented token was revoked; replaying it must fail.
	assert.True(t, jwtService.IsTokenRevoked(first.RefreshToken))
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, jwtService := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	accessToken, _, err := jwtService.GenerateAccessToken("emp-1", "mario@example.com", false)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, jwtService := newTestService(t, fakeEmployees{emp: testEmployee(t)})

	token, _, err := jwtService.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.True(t, jwtService.IsTokenRevoked(token))

	// Logging out without a cookie is a no-op, not an error.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
