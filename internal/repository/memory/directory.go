package memory

import (
	"context"

	"go-onboarding-wizard/internal/domain"
)

// ============================================================================
// Built-in catalog
// ============================================================================

var managersByDepartment = map[domain.Department][]domain.Manager{
	domain.DepartmentEngineering: {
		{ID: "eng-1", Name: "Alice Chen", Department: domain.DepartmentEngineering},
		{ID: "eng-2", Name: "Marcus Webb", Department: domain.DepartmentEngineering},
		{ID: "eng-3", Name: "Priya Raman", Department: domain.DepartmentEngineering},
	},
	domain.DepartmentMarketing: {
		{ID: "mkt-1", Name: "Jordan Blake", Department: domain.DepartmentMarketing},
		{ID: "mkt-2", Name: "Sofia Alvarez", Department: domain.DepartmentMarketing},
	},
	domain.DepartmentSales: {
		{ID: "sal-1", Name: "Derek Owens", Department: domain.DepartmentSales},
		{ID: "sal-2", Name: "Hannah Kim", Department: domain.DepartmentSales},
	},
	domain.DepartmentHR: {
		{ID: "hr-1", Name: "Grace Liu", Department: domain.DepartmentHR},
		{ID: "hr-2", Name: "Samuel Ortiz", Department: domain.DepartmentHR},
	},
	domain.DepartmentFinance: {
		{ID: "fin-1", Name: "Robert Hayes", Department: domain.DepartmentFinance},
		{ID: "fin-2", Name: "Nina Patel", Department: domain.DepartmentFinance},
	},
}

var skillsByDepartment = map[domain.Department][]string{
	domain.DepartmentEngineering: {
		"JavaScript", "TypeScript", "React", "Node.js", "Python", "Go", "SQL", "Docker", "Kubernetes", "AWS",
	},
	domain.DepartmentMarketing: {
		"SEO", "Content Writing", "Social Media", "Google Analytics", "Email Marketing", "Copywriting", "Branding",
	},
	domain.DepartmentSales: {
		"Negotiation", "CRM", "Lead Generation", "Cold Calling", "Account Management", "Presentation",
	},
	domain.DepartmentHR: {
		"Recruiting", "Employee Relations", "Payroll", "Onboarding", "Compliance", "Benefits Administration",
	},
	domain.DepartmentFinance: {
		"Accounting", "Financial Modeling", "Excel", "Budgeting", "Auditing", "Tax Preparation", "Forecasting",
	},
}

type staticDirectory struct{}

// NewDirectory returns the built-in manager and skill catalog
func NewDirectory() domain.DirectoryRepository {
	return staticDirectory{}
}

func (staticDirectory) Managers(ctx context.Context, department domain.Department) ([]domain.Manager, error) {
	if !department.IsValid() {
		return nil, domain.ErrUnknownDepartment
	}
	return append([]domain.Manager(nil), managersByDepartment[department]...), nil
}

func (staticDirectory) SkillCatalog(ctx context.Context, department domain.Department) ([]string, error) {
	if !department.IsValid() {
		return nil, domain.ErrUnknownDepartment
	}
	return append([]string(nil), skillsByDepartment[department]...), nil
}
