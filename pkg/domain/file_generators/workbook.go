package file_generators

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
)

const (
	SheetPlan    = "Plan"
	SheetSummary = "Summary"
)

var planHeaders = []interface{}{"Day", "Day Name", "Exercise", "Sets", "Reps"}

// GenerateWorkbook renders plan as an XLSX workbook: one row per exercise
// on the Plan sheet, one row per day on the Summary sheet.
func GenerateWorkbook(plan planner.WorkoutPlan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlan); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writePlanSheet(f, plan, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, plan, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writePlanSheet(f *excelize.File, plan planner.WorkoutPlan, headerStyle int) error {
	if err := f.SetSheetRow(SheetPlan, "A1", &planHeaders); err != nil {
		return fmt.Errorf("failed to write plan header: %w", err)
	}
	if err := f.SetCellStyle(SheetPlan, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style plan header: %w", err)
	}
	if err := f.SetColWidth(SheetPlan, "B", "C", 28); err != nil {
		return fmt.Errorf("failed to size plan columns: %w", err)
	}

	row := 2
	for _, day := range plan.Plan {
		for _, ex := range day.Exercises {
			values := []interface{}{day.Day, day.DayName, ex.Name, ex.Sets, ex.Reps}
			if err := f.SetSheetRow(SheetPlan, fmt.Sprintf("A%d", row), &values); err != nil {
				return fmt.Errorf("failed to write %q on day %d: %w", ex.Name, day.Day, err)
			}
			row++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, plan planner.WorkoutPlan, headerStyle int) error {
	totals := [][]interface{}{
		{"Days per week", plan.DaysPerWeek},
		{"Goal", plan.Goal},
		{"Total exercises", plan.ExerciseCount()},
	}
	for i, values := range totals {
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", i+1), &values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A3", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	dayHeaders := []interface{}{"Day", "Day Name", "Exercises"}
	if err := f.SetSheetRow(SheetSummary, "A5", &dayHeaders); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	if err := f.SetCellStyle(SheetSummary, "A5", "C5", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	if err := f.SetColWidth(SheetSummary, "A", "B", 20); err != nil {
		return fmt.Errorf("failed to size summary columns: %w", err)
	}

	for i, day := range plan.Plan {
		values := []interface{}{day.Day, day.DayName, len(day.Exercises)}
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", 6+i), &values); err != nil {
			return fmt.Errorf("failed to write summary for day %d: %w", day.Day, err)
		}
	}
	return nil
}
