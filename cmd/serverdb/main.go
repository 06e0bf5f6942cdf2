package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"serverdb/internal/config"
	"serverdb/internal/logging"
	"serverdb/internal/pipeline"
	"serverdb/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	cmd := os.Args[1]
	switch cmd {
	case "convert":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		output := fs.String("output", cfg.DBPath, "output SQLite database path")
		fs.StringVar(output, "o", cfg.DBPath, "output SQLite database path (shorthand)")
		sheet := fs.String("sheet", cfg.SheetName, "sheet name (default: first sheet)")
		batch := fs.Int("batch", cfg.BatchSize, "rows per insert transaction")
		args := parseInterleaved(fs, os.Args[2:])
		if len(args) != 1 {
			must(fmt.Errorf("usage: serverdb convert <excel_file> [-o|--output <path>]"))
		}
		if *batch <= 0 {
			must(fmt.Errorf("--batch must be positive"))
		}
		cfg.SheetName = *sheet
		cfg.BatchSize = *batch

		res, err := pipeline.NewConverter(cfg, log).Convert(args[0], *output)
		must(err)
		fmt.Printf("convert done rows=%d output=%s\n", res.Inserted, res.Output)
	case "export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dbPath := fs.String("db", cfg.DBPath, "SQLite database path")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "servers.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("--out", *out))

		db, err := storage.Open(*dbPath)
		must(err)
		defer db.Close()
		servers, err := db.ListServers()
		must(err)
		must(pipeline.ExportServersToXLSX(servers, *out))
		fmt.Printf("exported %d rows to %s\n", len(servers), *out)
	case "stats":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dbPath := fs.String("db", cfg.DBPath, "SQLite database path")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(*dbPath)
		must(err)
		defer db.Close()
		m, err := db.Metrics()
		must(err)
		cities, err := db.Locations()
		must(err)
		fmt.Printf("servers=%d price_min=%s price_max=%s locations=%d\n", m.TotalServers, fmtPrice(m.MinPrice), fmtPrice(m.MaxPrice), m.LocationsCount)
		if len(cities) > 0 {
			fmt.Printf("cities: %s\n", strings.Join(cities, ", "))
		}
	default:
		usage()
		os.Exit(1)
	}
}

// parseInterleaved lets flags follow positional arguments:
// "convert servers.xlsx -o out.db" parses the same as "convert -o out.db servers.xlsx".
func parseInterleaved(fs *flag.FlagSet, args []string) []string {
	var positional []string
	for {
		_ = fs.Parse(args)
		args = fs.Args()
		if len(args) == 0 {
			return positional
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func fmtPrice(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func usage() {
	fmt.Println("usage: serverdb <command>")
	fmt.Println("commands:")
	fmt.Println("  convert <excel_file> [-o|--output data/servers.db] [--sheet=NAME] [--batch=1000]")
	fmt.Println("  export [--db=data/servers.db] [--out=out/servers.xlsx]")
	fmt.Println("  stats [--db=data/servers.db]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
