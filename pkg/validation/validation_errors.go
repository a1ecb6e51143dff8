package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RootField is the path reported for errors that do not belong to a field.
const RootField = "(root)"

// FieldError is a single violation keyed by its JSON field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of violations; it satisfies error.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, e := range fe {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, e.Field, e.Message))
	}
	return sb.String()
}

// Has reports whether any error is keyed by field.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Add appends an error for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	// PersonalInfo fields
	"fullName":    "Full name",
	"email":       "Email",
	"phoneNumber": "Phone number",
	"dateOfBirth": "Date of birth",

	// JobDetails fields
	"department":        "Department",
	"positionTitle":     "Position title",
	"startDate":         "Start date",
	"jobType":           "Job type",
	"salaryExpectation": "Salary",
	"managerId":         "Manager",

	// Skills fields
	"primarySkills":        "Primary skills",
	"skillExperience":      "Years of experience",
	"workingHoursStart":    "Start time",
	"workingHoursEnd":      "End time",
	"remoteWorkPreference": "Remote work preference",
	"managerApproved":      "Manager approval",
	"extraNotes":           "Notes",

	// EmergencyContact fields
	"contactName":   "Contact name",
	"relationship":  "Relationship",
	"guardianName":  "Guardian name",
	"guardianPhone": "Guardian phone number",

	// Review fields
	"confirmationChecked": "Confirmation",
}

// messageOverrides replaces the generic message for a field/tag pair
var messageOverrides = map[string]string{
	"managerId.required":         "Please select a manager",
	"relationship.required":      "Please select a relationship",
	"primarySkills.min":          "Please select at least %s skills",
	"primarySkills.required":     "Please select at least 3 skills",
	"confirmationChecked.eq":     "You must confirm the information is correct",
	"dateOfBirth.min_age":        "Must be at least %s years old",
	"startDate.start_window":     "Start date must be today or within the next %s days",
	"fullName.full_name":         "Full name must contain at least 2 words",
	"workingHoursStart.required": "Start time is required",
	"workingHoursEnd.required":   "End time is required",
}

// FormatValidationErrors converts validator.ValidationErrors to field errors
func FormatValidationErrors(err error) FieldErrors {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, report it against the root
		return FieldErrors{{Field: RootField, Message: err.Error()}}
	}

	out := make(FieldErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   fieldPath(e),
			Message: formatSingleError(e),
		})
	}
	return out
}

// FormatDecodeError converts a JSON decoding failure to field errors
func FormatDecodeError(err error) FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		label := GetFieldLabel(baseField(typeErr.Field))
		return FieldErrors{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be %s", label, describeKind(typeErr.Type.Kind().String())),
		}}
	}
	return FieldErrors{{Field: RootField, Message: "Malformed JSON payload"}}
}

// fieldPath strips the top-level struct name from the namespace,
// e.g. "Skills.skillExperience[Go]" -> "skillExperience[Go]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := baseField(e.Field())
	label := GetFieldLabel(field)
	tag := e.Tag()
	param := e.Param()

	if msg, ok := messageOverrides[field+"."+tag]; ok {
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, param)
		}
		return msg
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min", "gte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max", "lte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s cannot exceed %s characters", label, param)
		}
		return fmt.Sprintf("%s cannot exceed %s", label, param)

	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "department", "job_type", "relationship":
		return fmt.Sprintf("Please select a valid %s", strings.ToLower(label))

	case "email":
		return "Please enter a valid email address"

	case "full_name":
		return fmt.Sprintf("%s must contain at least 2 words", label)

	case "us_phone":
		return fmt.Sprintf("%s must be in format +1-123-456-7890", label)

	case "iso_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", label)

	case "min_age":
		return fmt.Sprintf("Must be at least %s years old", param)

	case "start_window":
		return fmt.Sprintf("%s must be today or within the next %s days", label, param)

	case "clock_time":
		return fmt.Sprintf("%s must be a time in HH:MM format", label)

	case "multiple_of":
		return fmt.Sprintf("%s must be in steps of %s", label, param)

	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", label)

	case "eq":
		return fmt.Sprintf("%s must be %s", label, param)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s failed validation (%s)", label, tag)
	}
}

// baseField drops any index or key suffix: "skillExperience[Go]" -> "skillExperience".
func baseField(field string) string {
	if i := strings.Index(field, "["); i >= 0 {
		return field[:i]
	}
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

// GetFieldLabel returns the user-friendly label for a field
func GetFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to a sentence-cased phrase
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteString(strings.ToUpper(string(r)))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r = r + ('a' - 'A')
		}
		result.WriteRune(r)
	}
	return result.String()
}

func describeKind(kind string) string {
	switch kind {
	case "string":
		return "text"
	case "bool":
		return "true or false"
	case "slice", "array":
		return "a list"
	case "map", "struct":
		return "an object"
	default:
		return "a number"
	}
}
