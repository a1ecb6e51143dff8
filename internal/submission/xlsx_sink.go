package submission

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/pkg/format"
	"go-onboarding-wizard/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Onboarding"
	skillsSheet  = "Skills"
)

// XLSXSink writes every submission to its own workbook in dir
type XLSXSink struct {
	dir string
}

func NewXLSXSink(dir string) *XLSXSink {
	return &XLSXSink{dir: dir}
}

// Filename returns the workbook name for sub, e.g.
// onboarding-jane-doe-20250115-093000.xlsx
func Filename(sub domain.Submission) string {
	name := "employee"
	if pi := sub.Record.PersonalInfo; pi != nil {
		if slug := format.Slug(pi.FullName); slug != "" {
			name = slug
		}
	}
	return fmt.Sprintf("onboarding-%s-%s.xlsx", name, sub.SubmittedAt.Format("20060102-150405"))
}

func (s *XLSXSink) Submit(ctx context.Context, sub domain.Submission) error {
	f, err := BuildWorkbook(sub)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(s.dir, Filename(sub))
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Log.Info("Onboarding workbook exported", "submission_id", sub.ID, "path", path)
	return nil
}

// BuildWorkbook lays the record out as a field/value summary sheet and a
// skills sheet
func BuildWorkbook(sub domain.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(skillsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	writeRows(f, summarySheet, []string{"Field", "Value"}, summaryRows(sub), headerStyle)
	writeRows(f, skillsSheet, []string{"Skill", "Years of Experience"}, skillRows(sub.Record.Skills), headerStyle)

	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 48)
	f.SetColWidth(skillsSheet, "A", "B", 24)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}, style int) {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", endCell, style)

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}
}

func summaryRows(sub domain.Submission) [][]interface{} {
	rows := [][]interface{}{
		{"Submission ID", sub.ID},
		{"Submitted At", sub.SubmittedAt.Format("2006-01-02 15:04:05 MST")},
	}
	rec := sub.Record
	if pi := rec.PersonalInfo; pi != nil {
		rows = append(rows,
			[]interface{}{"Full Name", pi.FullName},
			[]interface{}{"Email", pi.Email},
			[]interface{}{"Phone Number", pi.PhoneNumber},
			[]interface{}{"Date of Birth", pi.DateOfBirth},
		)
	}
	if jd := rec.JobDetails; jd != nil {
		rows = append(rows,
			[]interface{}{"Department", string(jd.Department)},
			[]interface{}{"Position Title", jd.PositionTitle},
			[]interface{}{"Start Date", jd.StartDate},
			[]interface{}{"Job Type", string(jd.JobType)},
			[]interface{}{jd.JobType.CompensationLabel(), sub.Compensation},
			[]interface{}{"Manager", sub.ManagerName},
		)
	}
	if sk := rec.Skills; sk != nil {
		approved := "No"
		if sk.ManagerApproved != nil && *sk.ManagerApproved {
			approved = "Yes"
		}
		rows = append(rows,
			[]interface{}{"Working Hours", sk.WorkingHoursStart + " - " + sk.WorkingHoursEnd},
			[]interface{}{"Remote Work Preference", fmt.Sprintf("%d%%", sk.RemoteWorkPreference)},
			[]interface{}{"Manager Approved", approved},
			[]interface{}{"Notes", sk.ExtraNotes},
		)
	}
	if ec := rec.EmergencyContact; ec != nil {
		rows = append(rows,
			[]interface{}{"Emergency Contact", ec.ContactName},
			[]interface{}{"Relationship", string(ec.Relationship)},
			[]interface{}{"Emergency Phone", ec.PhoneNumber},
		)
		if ec.HasGuardian() {
			rows = append(rows,
				[]interface{}{"Guardian", ec.GuardianName},
				[]interface{}{"Guardian Phone", ec.GuardianPhone},
			)
		}
	}
	return rows
}

// skillRows lists selected skills in selection order; skills without
// recorded experience leave the second column blank
func skillRows(sk *domain.Skills) [][]interface{} {
	if sk == nil {
		return nil
	}
	rows := make([][]interface{}, 0, len(sk.PrimarySkills))
	seen := make(map[string]bool, len(sk.PrimarySkills))
	for _, skill := range sk.PrimarySkills {
		seen[skill] = true
		if years, ok := sk.SkillExperience[skill]; ok {
			rows = append(rows, []interface{}{skill, years})
			continue
		}
		rows = append(rows, []interface{}{skill, ""})
	}

	// experience for unselected skills never passes validation, but keep
	// the export lossless
	var extra []string
	for skill := range sk.SkillExperience {
		if !seen[skill] {
			extra = append(extra, skill)
		}
	}
	sort.Strings(extra)
	for _, skill := range extra {
		rows = append(rows, []interface{}{strings.TrimSpace(skill), sk.SkillExperience[skill]})
	}
	return rows
}
