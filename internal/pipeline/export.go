package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"serverdb/internal"
	"serverdb/internal/util"
)

const exportSheet = "servers"

func ExportServersToXLSX(servers []internal.StoredServer, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return err
	}

	headers := []string{
		"id", "model", "cpu", "ram_gb", "hdd", "storage_gb", "location_city",
		"location_code", "price_eur", "raw_price", "raw_ram", "raw_hdd", "created_at",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for i, s := range servers {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(exportSheet, cell, value)
		}

		set(1, s.ID)
		set(2, s.Model)
		set(3, util.DerefString(s.CPU))
		set(4, derefInt(s.RAMGB))
		set(5, s.HDD)
		set(6, derefInt(s.StorageGB))
		set(7, util.DerefString(s.LocationCity))
		set(8, util.DerefString(s.LocationCode))
		set(9, derefFloat(s.PriceEUR))
		set(10, s.RawPrice)
		set(11, s.RawRAM)
		set(12, s.RawHDD)
		set(13, s.CreatedAt)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
