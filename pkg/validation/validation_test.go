package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return today }

func TestAgeOn(t *testing.T) {
	birth := func(s string) time.Time {
		d, err := ParseDate(s, time.UTC)
		require.NoError(t, err)
		return d
	}

	t.Run("birthday today counts the full year", func(t *testing.T) {
		assert.Equal(t, 18, AgeOn(birth("2007-01-15"), today))
	})
	t.Run("birthday tomorrow is one year short", func(t *testing.T) {
		assert.Equal(t, 17, AgeOn(birth("2007-01-16"), today))
	})
	t.Run("later month is one year short", func(t *testing.T) {
		assert.Equal(t, 20, AgeOn(birth("2004-03-01"), today))
	})
	t.Run("leap day birthday is reached on March 1", func(t *testing.T) {
		b := birth("2004-02-29")
		assert.Equal(t, 20, AgeOn(b, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 21, AgeOn(b, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestAgeFromString(t *testing.T) {
	age, ok := AgeFromString("1990-06-01", today)
	assert.True(t, ok)
	assert.Equal(t, 34, age)

	_, ok = AgeFromString("01/06/1990", today)
	assert.False(t, ok)
}

func TestWithinWindow(t *testing.T) {
	assert.True(t, WithinWindow(today, today, 90))
	assert.True(t, WithinWindow(today.AddDate(0, 0, 90), today, 90))
	assert.False(t, WithinWindow(today.AddDate(0, 0, 91), today, 90))
	assert.False(t, WithinWindow(today.AddDate(0, 0, -1), today, 90))
}

func TestParseClock(t *testing.T) {
	d, ok := ParseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	_, ok = ParseClock("25:00")
	assert.False(t, ok)
}

type sample struct {
	FullName    string `json:"fullName" validate:"required,full_name"`
	PhoneNumber string `json:"phoneNumber" validate:"required,us_phone"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,iso_date,min_age=18"`
	StartDate   string `json:"startDate" validate:"omitempty,iso_date,start_window=90"`
	Remote      int    `json:"remoteWorkPreference" validate:"multiple_of=10"`
	Start       string `json:"workingHoursStart" validate:"omitempty,clock_time"`
}

func validSample() sample {
	return sample{
		FullName:    "Jane Doe",
		PhoneNumber: "+1-555-123-4567",
		DateOfBirth: "1990-06-01",
		StartDate:   "2025-02-03",
		Remote:      40,
		Start:       "09:00",
	}
}

func TestCustomValidators(t *testing.T) {
	v := New(fixedNow)

	t.Run("valid sample passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(validSample()))
	})

	cases := []struct {
		name    string
		mutate  func(*sample)
		field   string
		message string
	}{
		{"single word name", func(s *sample) { s.FullName = "Jane" }, "fullName", "Full name must contain at least 2 words"},
		{"phone without dashes", func(s *sample) { s.PhoneNumber = "5551234567" }, "phoneNumber", "Phone number must be in format +1-123-456-7890"},
		{"under 18 on the day before the birthday", func(s *sample) { s.DateOfBirth = "2007-01-16" }, "dateOfBirth", "Must be at least 18 years old"},
		{"bad date format", func(s *sample) { s.DateOfBirth = "1990/06/01" }, "dateOfBirth", "Date of birth must be a date in YYYY-MM-DD format"},
		{"start date beyond window", func(s *sample) { s.StartDate = "2025-04-16" }, "startDate", "Start date must be today or within the next 90 days"},
		{"remote not a multiple of ten", func(s *sample) { s.Remote = 45 }, "remoteWorkPreference", "Remote work preference must be in steps of 10"},
		{"bad clock", func(s *sample) { s.Start = "9am" }, "workingHoursStart", "Start time must be a time in HH:MM format"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSample()
			tc.mutate(&s)
			errs := FormatValidationErrors(v.Struct(s))
			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].Field)
			assert.Equal(t, tc.message, errs[0].Message)
		})
	}

	t.Run("exactly 18 today passes", func(t *testing.T) {
		s := validSample()
		s.DateOfBirth = "2007-01-15"
		assert.NoError(t, v.Struct(s))
	})
}

func TestFormatDecodeError(t *testing.T) {
	t.Run("type mismatch names the field", func(t *testing.T) {
		var s struct {
			Remote int `json:"remoteWorkPreference"`
		}
		err := json.Unmarshal([]byte(`{"remoteWorkPreference":"lots"}`), &s)
		errs := FormatDecodeError(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "remoteWorkPreference", errs[0].Field)
		assert.Contains(t, errs[0].Message, "Remote work preference must be")
	})

	t.Run("syntax errors are reported at the root", func(t *testing.T) {
		var s struct{}
		err := json.Unmarshal([]byte(`{`), &s)
		errs := FormatDecodeError(err)
		assert.Equal(t, FieldErrors{{Field: RootField, Message: "Malformed JSON payload"}}, errs)
	})
}

func TestFieldErrors(t *testing.T) {
	var errs FieldErrors
	errs.Add("email", "Please enter a valid email address")
	errs.Add("fullName", "Full name is required")

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("phoneNumber"))
	assert.Contains(t, errs.Error(), "2. fullName: Full name is required")
}

func TestGetFieldLabel(t *testing.T) {
	assert.Equal(t, "Salary", GetFieldLabel("salaryExpectation"))
	assert.Equal(t, "Some new field", GetFieldLabel("someNewField"))
}
