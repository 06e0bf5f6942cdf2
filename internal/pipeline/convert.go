package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"serverdb/internal"
	"serverdb/internal/config"
	"serverdb/internal/normalize"
	"serverdb/internal/storage"
)

var (
	ErrInputNotFound = errors.New("input file not found")
	ErrSpreadsheet   = errors.New("read spreadsheet")
	ErrDatabaseBuild = errors.New("build database")
)

type ConvertResult struct {
	Rows     int
	Inserted int
	Output   string
}

type Converter struct {
	log       zerolog.Logger
	sheet     string
	batchSize int
	insert    func(db *storage.DB, records []internal.ServerRecord, batchSize int, onBatch func(batch, total int)) error
}

func NewConverter(cfg config.Config, log zerolog.Logger) *Converter {
	return &Converter{
		log:       log,
		sheet:     cfg.SheetName,
		batchSize: cfg.BatchSize,
		insert:    (*storage.DB).InsertServers,
	}
}

// Convert normalizes the spreadsheet at input into a fresh database at
// output. The database is built next to output under a temporary name and
// renamed into place only after every row is written; on failure the
// temporary file is removed and output is left untouched.
func (c *Converter) Convert(input, output string) (ConvertResult, error) {
	if _, err := os.Stat(input); err != nil {
		return ConvertResult{}, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}

	c.log.Info().Str("input", input).Msg("reading spreadsheet")
	rows, err := ReadServerRows(input, c.sheet)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("%w %s: %w", ErrSpreadsheet, input, err)
	}
	c.log.Info().Int("rows", len(rows)).Msg("loaded rows")

	records := normalize.Records(rows)
	c.logParseMisses(rows, records)

	inserted, err := c.build(records, output)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("%w %s: %w", ErrDatabaseBuild, output, err)
	}
	c.log.Info().Int("records", inserted).Str("output", output).Msg("database published")

	return ConvertResult{Rows: len(rows), Inserted: inserted, Output: output}, nil
}

func (c *Converter) build(records []internal.ServerRecord, output string) (int, error) {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, ".servers-*.db")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}

	published := false
	defer func() {
		if published {
			return
		}
		_ = os.Remove(tmpPath)
		_ = os.Remove(tmpPath + "-journal")
	}()

	count, err := c.fill(tmpPath, records)
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmpPath, output); err != nil {
		return 0, err
	}
	published = true
	return count, nil
}

func (c *Converter) fill(path string, records []internal.ServerRecord) (count int, err error) {
	db, err := storage.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	c.log.Debug().Str("path", path).Msg("creating schema")
	if err := db.CreateSchema(); err != nil {
		return 0, err
	}

	err = c.insert(db, records, c.batchSize, func(batch, total int) {
		c.log.Info().Msgf("inserted batch %d/%d", batch, total)
	})
	if err != nil {
		return 0, err
	}

	count, err = db.Count()
	if err != nil {
		return 0, err
	}
	if count != len(records) {
		return 0, fmt.Errorf("row count mismatch: inserted %d of %d", count, len(records))
	}
	return count, nil
}

func (c *Converter) logParseMisses(rows []internal.ServerRow, records []internal.ServerRecord) {
	if c.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for i, rec := range records {
		row := rows[i]
		miss := func(field, raw string) {
			c.log.Debug().Int("row", row.RowNumber).Str("field", field).Str("raw", raw).Msg("unparsed field")
		}
		if rec.RAMGB == nil && row.RAM != "" {
			miss("ram", row.RAM)
		}
		if rec.StorageGB == nil && row.HDD != "" {
			miss("hdd", row.HDD)
		}
		if rec.PriceEUR == nil && row.Price != "" {
			miss("price", row.Price)
		}
		if rec.CPU == nil && row.Model != "" {
			miss("cpu", row.Model)
		}
		if rec.LocationCode == nil && row.Location != "" {
			miss("location_code", row.Location)
		}
	}
}
