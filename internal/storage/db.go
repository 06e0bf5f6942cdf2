package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"serverdb/internal"
)

const DefaultBatchSize = 1000

type DB struct {
	conn *sql.DB
}

// Create opens path for building a fresh database. The rollback journal is
// kept (no WAL) so the closed file is self-contained and safe to rename.
func Create(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode = DELETE;`); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// Open opens an existing database for reading.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) CreateSchema() error {
	schema := `
DROP TABLE IF EXISTS servers;
CREATE TABLE servers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  model TEXT NOT NULL,
  cpu TEXT,
  ram_gb INTEGER,
  hdd TEXT,
  storage_gb INTEGER,
  location_city TEXT,
  location_code TEXT,
  price_eur REAL,
  raw_price TEXT,
  raw_ram TEXT,
  raw_hdd TEXT,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_servers_model ON servers(model);
CREATE INDEX idx_servers_cpu ON servers(cpu);
CREATE INDEX idx_servers_ram_gb ON servers(ram_gb);
CREATE INDEX idx_servers_storage_gb ON servers(storage_gb);
CREATE INDEX idx_servers_location_city ON servers(location_city);
CREATE INDEX idx_servers_location_code ON servers(location_code);
CREATE INDEX idx_servers_price_eur ON servers(price_eur);
CREATE INDEX idx_servers_hdd ON servers(hdd);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertServers writes records in chunks of batchSize, committing each chunk
// in its own transaction. onBatch, when set, runs after every commit.
func (d *DB) InsertServers(records []internal.ServerRecord, batchSize int, onBatch func(batch, total int)) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	total := (len(records) + batchSize - 1) / batchSize
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := d.insertBatch(records[i:end]); err != nil {
			return fmt.Errorf("insert batch %d/%d: %w", i/batchSize+1, total, err)
		}
		if onBatch != nil {
			onBatch(i/batchSize+1, total)
		}
	}
	return nil
}

func (d *DB) insertBatch(records []internal.ServerRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO servers (
  model, cpu, ram_gb, hdd, storage_gb, location_city,
  location_code, price_eur, raw_price, raw_ram, raw_hdd
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.Model, r.CPU, r.RAMGB, r.HDD, r.StorageGB, r.LocationCity,
			r.LocationCode, r.PriceEUR, r.RawPrice, r.RawRAM, r.RawHDD,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) Count() (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM servers`).Scan(&count)
	return count, err
}

func (d *DB) ListServers() ([]internal.StoredServer, error) {
	rows, err := d.conn.Query(`
SELECT id, model, cpu, ram_gb, hdd, storage_gb, location_city,
       location_code, price_eur, raw_price, raw_ram, raw_hdd, created_at
FROM servers
ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.StoredServer
	for rows.Next() {
		var s internal.StoredServer
		var hdd, rawPrice, rawRAM, rawHDD, createdAt sql.NullString
		if err := rows.Scan(
			&s.ID, &s.Model, &s.CPU, &s.RAMGB, &hdd, &s.StorageGB, &s.LocationCity,
			&s.LocationCode, &s.PriceEUR, &rawPrice, &rawRAM, &rawHDD, &createdAt,
		); err != nil {
			return nil, err
		}
		s.HDD = hdd.String
		s.RawPrice = rawPrice.String
		s.RawRAM = rawRAM.String
		s.RawHDD = rawHDD.String
		s.CreatedAt = createdAt.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) Metrics() (internal.ServerMetrics, error) {
	var m internal.ServerMetrics
	err := d.conn.QueryRow(`
SELECT
  COUNT(*),
  MIN(price_eur),
  MAX(price_eur),
  COUNT(DISTINCT location_city),
  MAX(created_at)
FROM servers`).Scan(&m.TotalServers, &m.MinPrice, &m.MaxPrice, &m.LocationsCount, &m.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return internal.ServerMetrics{}, nil
	}
	return m, err
}

func (d *DB) Locations() ([]string, error) {
	rows, err := d.conn.Query(`
SELECT DISTINCT location_city
FROM servers
WHERE location_city IS NOT NULL AND location_city != ''
ORDER BY location_city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		out = append(out, city)
	}
	return out, rows.Err()
}
