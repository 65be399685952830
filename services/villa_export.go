package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"villa-backend/models"
)

const villaSheet = "Villas"

var villaExportHeaders = []string{"ID", "Name", "Details", "Rate", "Occupancy", "Sqft", "Image URL", "Amenity", "Created", "Updated"}

// WriteVillasXLSX writes one header row and one row per villa.
func WriteVillasXLSX(w io.Writer, villas []models.Villa) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", villaSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(villaSheet, "A1", &villaExportHeaders); err != nil {
		return err
	}
	for i, v := range villas {
		row := []any{
			v.ID, v.Name, v.Details, v.Rate, v.Occupancy, v.Sqft, v.ImageURL, v.Amenity,
			v.CreatedAt.Format("2006-01-02 15:04:05"), v.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(villaSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_, err := f.WriteTo(w)
	return err
}
