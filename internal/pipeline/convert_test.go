package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"serverdb/internal"
	"serverdb/internal/config"
	"serverdb/internal/storage"
)

var sampleSheet = [][]any{
	{"Model", "RAM", "HDD", "Location", "Price"},
	{"Dell R210Intel Xeon X3440", "16GBDDR3", "2x2TBSATA2", "AmsterdamAMS-01", "€49.99"},
	{},
	{"HP DL120G7Intel G850", "lots", "8x2TBSATA2", "FrankfurtFRA-10", "call us"},
}

func writeWorkbook(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, "servers.xlsx")
	if err := os.WriteFile(path, mkXLSX(rows), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestConverter() *Converter {
	return NewConverter(config.Config{BatchSize: 2}, zerolog.Nop())
}

func readServers(t *testing.T, path string) []internal.StoredServer {
	t.Helper()
	db, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	servers, err := db.ListServers()
	if err != nil {
		t.Fatal(err)
	}
	return servers
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, ".servers-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestConvertEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, sampleSheet)
	output := filepath.Join(dir, "data", "servers.db")

	res, err := newTestConverter().Convert(input, output)
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows != 3 || res.Inserted != 3 || res.Output != output {
		t.Fatalf("result=%+v", res)
	}
	assertNoTempFiles(t, filepath.Dir(output))

	servers := readServers(t, output)
	if len(servers) != 3 {
		t.Fatalf("len=%d", len(servers))
	}

	good := servers[0]
	if good.CPU == nil || *good.CPU != "Intel Xeon" || good.RAMGB == nil || *good.RAMGB != 16 ||
		good.StorageGB == nil || *good.StorageGB != 4096 || good.LocationCity == nil || *good.LocationCity != "Amsterdam" ||
		good.LocationCode == nil || *good.LocationCode != "AMS-01" || good.PriceEUR == nil || *good.PriceEUR != 49.99 {
		t.Fatalf("well-formed row=%+v", good)
	}

	empty := servers[1]
	if empty.Model != "" || empty.CPU != nil || empty.RAMGB != nil || empty.StorageGB != nil ||
		empty.LocationCity != nil || empty.LocationCode != nil || empty.PriceEUR != nil ||
		empty.RawPrice != "" || empty.RawRAM != "" || empty.RawHDD != "" {
		t.Fatalf("empty row=%+v", empty)
	}

	bad := servers[2]
	if bad.RAMGB != nil || bad.PriceEUR != nil {
		t.Fatalf("expected NULL ram/price: %+v", bad)
	}
	if bad.RawRAM != "lots" || bad.RawPrice != "call us" {
		t.Fatalf("raw fields lost: %+v", bad)
	}
	if bad.CPU == nil || *bad.CPU != "Intel G850" || bad.StorageGB == nil || *bad.StorageGB != 16384 {
		t.Fatalf("other fields should still parse: %+v", bad)
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, sampleSheet)
	output := filepath.Join(dir, "servers.db")
	c := newTestConverter()

	if _, err := c.Convert(input, output); err != nil {
		t.Fatal(err)
	}
	first := readServers(t, output)
	if _, err := c.Convert(input, output); err != nil {
		t.Fatal(err)
	}
	second := readServers(t, output)

	for i := range first {
		first[i].CreatedAt = ""
	}
	for i := range second {
		second[i].CreatedAt = ""
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("contents differ:\n%+v\n%+v", first, second)
	}
}

func TestConvertFailureKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, sampleSheet)
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(outDir, "servers.db")
	if err := os.WriteFile(output, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestConverter()
	c.insert = func(db *storage.DB, records []internal.ServerRecord, batchSize int, onBatch func(batch, total int)) error {
		if err := db.InsertServers(records[:1], batchSize, onBatch); err != nil {
			return err
		}
		return errors.New("disk full")
	}

	_, err := c.Convert(input, output)
	if !errors.Is(err, ErrDatabaseBuild) {
		t.Fatalf("err=%v", err)
	}

	blob, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "previous" {
		t.Fatalf("output was modified: %q", blob)
	}
	assertNoTempFiles(t, outDir)
}

func TestConvertFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, sampleSheet)
	output := filepath.Join(dir, "servers.db")

	c := newTestConverter()
	c.insert = func(*storage.DB, []internal.ServerRecord, int, func(int, int)) error {
		return errors.New("boom")
	}
	if _, err := c.Convert(input, output); !errors.Is(err, ErrDatabaseBuild) {
		t.Fatalf("err=%v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatalf("output should not exist: %v", err)
	}
	assertNoTempFiles(t, dir)
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "servers.db")

	_, err := newTestConverter().Convert(filepath.Join(dir, "missing.xlsx"), output)
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("err=%v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatalf("output should not exist: %v", err)
	}
}

func TestConvertUnreadableSpreadsheet(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.xlsx")
	if err := os.WriteFile(input, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := newTestConverter().Convert(input, filepath.Join(dir, "servers.db"))
	if !errors.Is(err, ErrSpreadsheet) {
		t.Fatalf("err=%v", err)
	}
	assertNoTempFiles(t, dir)
}
