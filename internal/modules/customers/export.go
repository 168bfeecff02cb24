package customers

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Name", "Email", "Phone", "Plan Manager", "Platform",
	"Renewal Date", "Income", "Expense", "Profit", "Notes", "Flagged",
}

// BuildExportWorkbook renders the filtered customer list as the
// customers_export.xlsx workbook, one row per customer, columns matching
// the list view.
func BuildExportWorkbook(items []ListItem) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Customers"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for idx, item := range items {
		row := idx + 2

		managerName := item.ManagerName
		if managerName == "" {
			managerName = "-"
		}
		platform := item.ManagerPlatform
		if platform == "" {
			platform = "-"
		}
		renewal := "-"
		if item.RenewalDate != nil {
			renewal = item.RenewalDate.Format("2006-01-02")
		}
		flagged := "No"
		if item.IsFlagged {
			flagged = "Yes"
		}

		values := []any{
			item.Name,
			item.Email,
			item.Phone,
			managerName,
			platform,
			renewal,
			item.Income.String(),
			item.Expense.String(),
			item.Profit.String(),
			item.Notes,
			flagged,
		}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "C", "E", 16)
	f.SetColWidth(sheet, "F", "I", 13)
	f.SetColWidth(sheet, "J", "J", 30)
	return f, nil
}
