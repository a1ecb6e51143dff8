package domain

import (
	"context"
	"errors"
)

var ErrUnknownDepartment = errors.New("unknown department")

// Department scopes managers, the skill catalog and start-date rules
type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "Finance"
)

// ValidDepartments returns all departments in display order
func ValidDepartments() []Department {
	return []Department{
		DepartmentEngineering,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentHR,
		DepartmentFinance,
	}
}

// IsValid checks if the department is a known department
func (d Department) IsValid() bool {
	for _, valid := range ValidDepartments() {
		if d == valid {
			return true
		}
	}
	return false
}

// BlocksWeekendStart reports whether employees of d may not start on a
// Friday or Saturday
func (d Department) BlocksWeekendStart() bool {
	return d == DepartmentHR || d == DepartmentFinance
}

// JobType selects the compensation unit
type JobType string

const (
	JobTypeFullTime JobType = "Full-time"
	JobTypePartTime JobType = "Part-time"
	JobTypeContract JobType = "Contract"
)

// ValidJobTypes returns all job types
func ValidJobTypes() []JobType {
	return []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract}
}

// IsValid checks if the job type is known
func (j JobType) IsValid() bool {
	for _, valid := range ValidJobTypes() {
		if j == valid {
			return true
		}
	}
	return false
}

// IsHourly reports whether compensation is an hourly rate
func (j JobType) IsHourly() bool {
	return j == JobTypeContract
}

// CompensationRange is the inclusive bound for SalaryExpectation
type CompensationRange struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range
func (r CompensationRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CompensationRange returns the accepted salary bound for the job type
func (j JobType) CompensationRange() CompensationRange {
	if j.IsHourly() {
		return CompensationRange{Min: 50, Max: 150}
	}
	return CompensationRange{Min: 30000, Max: 200000}
}

// CompensationLabel is the field label shown for the salary input
func (j JobType) CompensationLabel() string {
	if j.IsHourly() {
		return "Hourly Rate"
	}
	return "Annual Salary"
}

// Relationship of the emergency contact to the applicant
type Relationship string

const (
	RelationshipSpouse  Relationship = "Spouse"
	RelationshipPartner Relationship = "Partner"
	RelationshipParent  Relationship = "Parent"
	RelationshipSibling Relationship = "Sibling"
	RelationshipChild   Relationship = "Child"
	RelationshipFriend  Relationship = "Friend"
	RelationshipOther   Relationship = "Other"
)

// ValidRelationships returns all relationship options
func ValidRelationships() []Relationship {
	return []Relationship{
		RelationshipSpouse,
		RelationshipPartner,
		RelationshipParent,
		RelationshipSibling,
		RelationshipChild,
		RelationshipFriend,
		RelationshipOther,
	}
}

// IsValid checks if the relationship is one of the options
func (r Relationship) IsValid() bool {
	for _, valid := range ValidRelationships() {
		if r == valid {
			return true
		}
	}
	return false
}

// Manager is a selectable reporting manager
type Manager struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Department Department `json:"department"`
}

// DirectoryRepository provides per-department managers and skills
type DirectoryRepository interface {
	Managers(ctx context.Context, department Department) ([]Manager, error)
	SkillCatalog(ctx context.Context, department Department) ([]string, error)
}
