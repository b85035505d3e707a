package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RoomListHeader is the export header row.
var RoomListHeader = []string{
	"Building",
	"Room Number",
	"Floor",
	"Room Type",
	"Capacity",
	"Occupancy",
	"Rate",
	"Status",
}

func generateRoomListExcel(items []RoomWithOccupancy) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Rooms"
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

	for col, header := range RoomListHeader {
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

	for i, item := range items {
		row := i + 2
		values := []any{
			item.Room.BuildingName,
			item.Room.RoomNumber,
			item.Room.Floor,
			item.Room.RoomType,
			item.Room.Capacity,
			item.Occupancy,
			item.Room.Rate,
			item.Room.Status,
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
