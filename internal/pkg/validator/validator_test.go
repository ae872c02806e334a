package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "01-01-2023", "2023/01/01", "", "abc"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-11")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate(\"2025-06-11\") = %v, want %v", got, want)
	}
	if _, err := ParseDate("11/06/2025"); err == nil {
		t.Error("ParseDate(\"11/06/2025\") returned no error")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 6, 11, 15, 42, 7, 123, time.FixedZone("CET", 3600))
	got := DateOnly(in)
	want := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 6, 11, 0, 30, 0, 0, time.UTC)
	b := time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	if !SameDate(a, b) {
		t.Errorf("SameDate(%v, %v) = false, want true", a, b)
	}
	if SameDate(a, c) {
		t.Errorf("SameDate(%v, %v) = true, want false", a, c)
	}
}

func TestMinutesOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00:00", 0, true},
		{"08:00:00", 480, true},
		{"08:30", 510, true},
		{"23:59:59", 1439, true},
		{"24:00", 0, false},
		{"08:60", 0, false},
		{"8am", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := MinutesOfDay(c.input)
		if (err == nil) != c.ok {
			t.Errorf("MinutesOfDay(%q) error = %v, want ok = %v", c.input, err, c.ok)
			continue
		}
		if c.ok && got != c.want {
			t.Errorf("MinutesOfDay(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestClockMinutes(t *testing.T) {
	in := time.Date(2025, 6, 11, 9, 15, 42, 0, time.UTC)
	if got := ClockMinutes(in); got != 555 {
		t.Errorf("ClockMinutes(%v) = %d, want 555", in, got)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("b", slice) {
		t.Error("IsInSlice(\"b\") = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Error("IsInSlice(\"d\") = true, want false")
	}
	if IsInSlice("a", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "is required"},
		{Field: "password", Message: "too short"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["email"] != "is required" || m["password"] != "too short" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() != "email: is required; password: too short" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
