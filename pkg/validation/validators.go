package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// North American format with explicit grouping: +1-123-456-7890
	usPhoneRegex = regexp.MustCompile(`^\+1-\d{3}-\d{3}-\d{4}$`)
)

// clockLayouts are the accepted time-of-day formats for working hours.
var clockLayouts = []string{"15:04", "15:04:05"}

// NowFunc supplies "today" to the date-relative validators.
type NowFunc func() time.Time

// New returns a validator that reports JSON field names and has the custom
// rules registered.
func New(now NowFunc) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v, now)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate, now NowFunc) {
	_ = v.RegisterValidation("full_name", FullName)
	_ = v.RegisterValidation("us_phone", USPhone)
	_ = v.RegisterValidation("iso_date", ISODate)
	_ = v.RegisterValidation("clock_time", ClockTime)
	_ = v.RegisterValidation("multiple_of", MultipleOf)
	_ = v.RegisterValidation("min_age", minAge(now))
	_ = v.RegisterValidation("start_window", startWindow(now))
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FullName validates that a trimmed name has at least two whitespace-separated words
func FullName(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true // Optional, use required if needed
	}
	return len(strings.Fields(val)) >= 2
}

// USPhone validates the +1-XXX-XXX-XXXX phone structure
func USPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return usPhoneRegex.MatchString(val)
}

// ISODate validates a YYYY-MM-DD calendar date
func ISODate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.Parse(DateLayout, val)
	return err == nil
}

// ClockTime validates a 24h time of day (HH:MM or HH:MM:SS)
func ClockTime(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := ParseClock(val)
	return ok
}

// ParseClock parses a time of day and returns it as an offset from midnight.
func ParseClock(value string) (time.Duration, bool) {
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// MultipleOf validates that an integer field is divisible by the tag param
func MultipleOf(fl validator.FieldLevel) bool {
	step, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil || step <= 0 {
		return false
	}
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int()%step == 0
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return f == float64(int64(f)) && int64(f)%step == 0
	}
	return false
}

// minAge validates that a YYYY-MM-DD birth date yields at least param years.
// Unparseable dates pass here; iso_date reports them.
func minAge(now NowFunc) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		minYears, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		age, ok := AgeFromString(val, now())
		if !ok {
			return true
		}
		return age >= minYears
	}
}

// startWindow validates today <= date <= today + param calendar days.
func startWindow(now NowFunc) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		days, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		today := DateOnly(now())
		date, err := ParseDate(val, today.Location())
		if err != nil {
			return true
		}
		return WithinWindow(date, today, days)
	}
}

// WithinWindow reports whether date falls in [today, today+days], inclusive.
func WithinWindow(date, today time.Time, days int) bool {
	today = DateOnly(today)
	date = DateOnly(date)
	last := today.AddDate(0, 0, days)
	return !date.Before(today) && !date.After(last)
}
