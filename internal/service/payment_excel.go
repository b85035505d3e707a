package service

import (
	"fmt"

	"dormhub/internal/domain"

	"github.com/xuri/excelize/v2"
)

// PaymentHistoryHeader is the export header row.
var PaymentHistoryHeader = []string{
	"Month",
	"Amount",
	"Payment Method",
	"Payer Name",
	"Date Paid",
}

// generatePaymentHistoryExcel renders a tenant's payment records as an xlsx
// workbook, one row per payment.
func generatePaymentHistoryExcel(payments []domain.Payment) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file open.

	sheetName := "Payment History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range PaymentHistoryHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, p := range payments {
		row := i + 2
		values := []any{
			p.Month,
			p.Amount,
			p.Method,
			p.PayerName,
			p.DatePaid.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	_ = f.Close()
	return buf.Bytes(), nil
}
