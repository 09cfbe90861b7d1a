package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dcss-tools/morguelib/internal/model"
)

// catalogFile is the name of the database file inside the data
// directory.
const catalogFile = "morguelib.db"

// CatalogDB stores winning games in an SQLite database, one row per
// morgue URL.
type CatalogDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures CatalogDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the catalog in dbDir.
func Open(dbDir string, opts Options) (*CatalogDB, error) {
	dbPath := filepath.Join(dbDir, catalogFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check catalog path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create
	// a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite supports one writer; a second connection only buys lock
	// contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CatalogDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CatalogDB) Close() error {
	return cdb.db.Close()
}

// Path returns the location of the database file.
func (cdb *CatalogDB) Path() string {
	return cdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (cdb *CatalogDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS winners (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		species TEXT NOT NULL,
		background TEXT NOT NULL,
		god TEXT NOT NULL DEFAULT '',
		runes INTEGER NOT NULL,
		version TEXT NOT NULL,
		version_value REAL NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_winners_species ON winners(species);
	CREATE INDEX IF NOT EXISTS idx_winners_background ON winners(background);
	CREATE INDEX IF NOT EXISTS idx_winners_god ON winners(god);
	CREATE INDEX IF NOT EXISTS idx_winners_version ON winners(version_value);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertWinner inserts or updates a winning game, keyed by its morgue
// URL. A morgue file never changes once written, so re-parsing the
// same URL simply refreshes the row.
func (cdb *CatalogDB) InsertWinner(ctx context.Context, entry *model.WinnerEntry) error {
	query := `
	INSERT INTO winners (url, species, background, god, runes, version, version_value)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		species = excluded.species,
		background = excluded.background,
		god = excluded.god,
		runes = excluded.runes,
		version = excluded.version,
		version_value = excluded.version_value,
		timestamp = CURRENT_TIMESTAMP
	`

	r := entry.Record
	value, err := r.VersionValue()
	if err != nil {
		return fmt.Errorf("failed to insert winner: %w", err)
	}

	_, err = cdb.db.ExecContext(ctx, query,
		strings.TrimSpace(entry.URL),
		r.Species,
		r.Background,
		r.God,
		r.Runes,
		r.Version,
		value,
	)
	if err != nil {
		return fmt.Errorf("failed to insert winner: %w", err)
	}
	return nil
}

// GetWinner retrieves the winning game stored for a morgue URL.
// It returns nil without error when the URL is not cataloged.
func (cdb *CatalogDB) GetWinner(ctx context.Context, url string) (*model.WinnerEntry, error) {
	query := `
	SELECT url, species, background, god, runes, version
	FROM winners
	WHERE url = ?
	`

	var entry model.WinnerEntry
	err := cdb.db.QueryRowContext(ctx, query, strings.TrimSpace(url)).Scan(
		&entry.URL,
		&entry.Record.Species,
		&entry.Record.Background,
		&entry.Record.God,
		&entry.Record.Runes,
		&entry.Record.Version,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}
	return &entry, nil
}

// CountWinners returns the number of cataloged winning games.
func (cdb *CatalogDB) CountWinners(ctx context.Context) (int64, error) {
	var count int64
	if err := cdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM winners").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count winners: %w", err)
	}
	return count, nil
}

// WinnerQuery filters catalog rows. Zero-valued fields do not
// constrain the result.
type WinnerQuery struct {
	// Species are two-letter species codes. Empty means any species.
	Species []string

	// Backgrounds are two-letter background codes.
	Backgrounds []string

	// Gods are full lowercase deity names; include "" to match
	// godless games.
	Gods []string

	// RuneMin and RuneMax bound the rune count when non-nil.
	RuneMin *int
	RuneMax *int

	// VersionMin and VersionMax bound the numeric game version when
	// non-nil.
	VersionMin *float64
	VersionMax *float64
}

// QueryWinners returns cataloged games matching the query, ordered by
// URL.
func (cdb *CatalogDB) QueryWinners(ctx context.Context, q WinnerQuery) ([]model.WinnerEntry, error) {
	var (
		where []string
		args  []any
	)

	appendIn := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		holders := make([]string, len(values))
		for i, v := range values {
			holders[i] = "?"
			args = append(args, v)
		}
		where = append(where, fmt.Sprintf("%s IN (%s)", column, strings.Join(holders, ", ")))
	}

	appendIn("species", q.Species)
	appendIn("background", q.Backgrounds)
	appendIn("god", q.Gods)

	if q.RuneMin != nil {
		where = append(where, "runes >= ?")
		args = append(args, *q.RuneMin)
	}
	if q.RuneMax != nil {
		where = append(where, "runes <= ?")
		args = append(args, *q.RuneMax)
	}
	if q.VersionMin != nil {
		where = append(where, "version_value >= ?")
		args = append(args, *q.VersionMin)
	}
	if q.VersionMax != nil {
		where = append(where, "version_value <= ?")
		args = append(args, *q.VersionMax)
	}

	query := "SELECT url, species, background, god, runes, version FROM winners"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY url"

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query winners: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []model.WinnerEntry
	for rows.Next() {
		var entry model.WinnerEntry
		if err := rows.Scan(
			&entry.URL,
			&entry.Record.Species,
			&entry.Record.Background,
			&entry.Record.God,
			&entry.Record.Runes,
			&entry.Record.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
