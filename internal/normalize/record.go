package normalize

import "serverdb/internal"

// Record normalizes one spreadsheet row. The five field parsers run
// independently of each other.
func Record(row internal.ServerRow) internal.ServerRecord {
	storageGB, rawHDD := Storage(row.HDD)
	price, rawPrice := Price(row.Price)
	city, code := Location(row.Location)

	return internal.ServerRecord{
		Model:        row.Model,
		CPU:          CPU(row.Model),
		RAMGB:        RAM(row.RAM),
		HDD:          row.HDD,
		StorageGB:    storageGB,
		LocationCity: city,
		LocationCode: code,
		PriceEUR:     price,
		RawPrice:     rawPrice,
		RawRAM:       row.RAM,
		RawHDD:       rawHDD,
	}
}

func Records(rows []internal.ServerRow) []internal.ServerRecord {
	out := make([]internal.ServerRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, Record(row))
	}
	return out
}
