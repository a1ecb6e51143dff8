package postgres

import (
	"context"
	"fmt"

	"go-onboarding-wizard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type directoryRepo struct {
	db *pgxpool.Pool
}

// NewDirectoryRepository reads managers and skills from the managers and
// department_skills tables
func NewDirectoryRepository(db *pgxpool.Pool) domain.DirectoryRepository {
	return &directoryRepo{db: db}
}

func (r *directoryRepo) Managers(ctx context.Context, department domain.Department) ([]domain.Manager, error) {
	if !department.IsValid() {
		return nil, domain.ErrUnknownDepartment
	}

	query := `
		SELECT id, name, department
		FROM managers
		WHERE department = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, string(department))
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var results []domain.Manager
	for rows.Next() {
		var m domain.Manager
		var dept string
		if err := rows.Scan(&m.ID, &m.Name, &dept); err != nil {
			return nil, fmt.Errorf("failed to scan manager row: %w", err)
		}
		m.Department = domain.Department(dept)
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manager rows: %w", err)
	}
	return results, nil
}

func (r *directoryRepo) SkillCatalog(ctx context.Context, department domain.Department) ([]string, error) {
	if !department.IsValid() {
		return nil, domain.ErrUnknownDepartment
	}

	query := `
		SELECT skill
		FROM department_skills
		WHERE department = $1
		ORDER BY position ASC, skill ASC
	`

	rows, err := r.db.Query(ctx, query, string(department))
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}
	return skills, nil
}
