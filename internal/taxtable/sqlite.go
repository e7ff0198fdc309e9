package taxtable

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/finplan/household-planner/internal/domain"
)

// SQLiteStore persists tax tables in a SQLite database. Bracket schedules
// are stored as JSON; the (year, status, jurisdiction) key is the primary
// key, so reseeding is idempotent.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath, migrates the
// schema and seeds the built-in federal defaults when the table is empty.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tax_tables (
		year INTEGER NOT NULL,
		filing_status TEXT NOT NULL,
		jurisdiction TEXT NOT NULL,
		brackets TEXT NOT NULL,
		standard_deduction TEXT NOT NULL,
		ss_wage_base TEXT NOT NULL,
		ss_rate TEXT NOT NULL,
		medicare_rate TEXT NOT NULL,
		PRIMARY KEY (year, filing_status, jurisdiction)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) seed() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tax_tables`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, params := range Defaults2025() {
		p := params
		if err := s.Put(&p); err != nil {
			return err
		}
	}
	return nil
}

// Put validates and upserts a table.
func (s *SQLiteStore) Put(params *domain.TaxParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	brackets, err := json.Marshal(params.Brackets)
	if err != nil {
		return fmt.Errorf("failed to encode brackets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`
		INSERT INTO tax_tables
			(year, filing_status, jurisdiction, brackets, standard_deduction, ss_wage_base, ss_rate, medicare_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (year, filing_status, jurisdiction) DO UPDATE SET
			brackets = excluded.brackets,
			standard_deduction = excluded.standard_deduction,
			ss_wage_base = excluded.ss_wage_base,
			ss_rate = excluded.ss_rate,
			medicare_rate = excluded.medicare_rate`,
		params.Year, string(params.FilingStatus), params.Jurisdiction,
		string(brackets), params.StandardDeduction.String(),
		params.SSWageBase.String(), params.SSRate.String(), params.MedicareRate.String(),
	)
	return err
}

// Lookup finds the table for the given year, or the most recent earlier
// year when the exact year is absent.
func (s *SQLiteStore) Lookup(year int, status domain.FilingStatus, jurisdiction string) (*domain.TaxParameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT year, brackets, standard_deduction, ss_wage_base, ss_rate, medicare_rate
		FROM tax_tables
		WHERE year <= ? AND filing_status = ? AND jurisdiction = ?
		ORDER BY year DESC
		LIMIT 1`,
		year, string(status), jurisdiction,
	)

	var foundYear int
	var brackets, stdDeduction, wageBase, ssRate, medicare string
	if err := row.Scan(&foundYear, &brackets, &stdDeduction, &wageBase, &ssRate, &medicare); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no tax table for %s/%s in or before %d", jurisdiction, status, year)
		}
		return nil, err
	}

	params := &domain.TaxParameters{
		Year:         foundYear,
		FilingStatus: status,
		Jurisdiction: jurisdiction,
	}
	if err := json.Unmarshal([]byte(brackets), &params.Brackets); err != nil {
		return nil, fmt.Errorf("failed to decode brackets: %w", err)
	}
	var err error
	if params.StandardDeduction, err = parseDecimal(stdDeduction); err != nil {
		return nil, err
	}
	if params.SSWageBase, err = parseDecimal(wageBase); err != nil {
		return nil, err
	}
	if params.SSRate, err = parseDecimal(ssRate); err != nil {
		return nil, err
	}
	if params.MedicareRate, err = parseDecimal(medicare); err != nil {
		return nil, err
	}
	return params, nil
}
