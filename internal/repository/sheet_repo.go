package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ratehistory/internal/rates"
)

// SheetRepository persists rate documents so the service can start without
// reaching the upstream source.
type SheetRepository interface {
	SaveDocument(ctx context.Context, doc *rates.Document) (int, error)
	LoadDocument(ctx context.Context) (*rates.Document, error)
	LatestDate(ctx context.Context) (time.Time, error)
}

// PostgresSheetRepository is an implementation of SheetRepository using PostgreSQL.
type PostgresSheetRepository struct {
	db *sql.DB
}

// NewPostgresSheetRepository creates a new PostgresSheetRepository.
func NewPostgresSheetRepository(db *sql.DB) SheetRepository {
	return &PostgresSheetRepository{db: db}
}

// SaveDocument upserts every sheet of doc in one transaction and returns the
// number of sheets written. Rates of an existing sheet are replaced.
func (r *PostgresSheetRepository) SaveDocument(ctx context.Context, doc *rates.Document) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	sheetStmt, err := tx.PrepareContext(ctx, `INSERT INTO rate_sheets (sheet_date, fetched_at)
              VALUES ($1::date, NOW())
              ON CONFLICT (sheet_date) DO UPDATE SET fetched_at = EXCLUDED.fetched_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare sheet upsert: %w", err)
	}
	defer sheetStmt.Close() //nolint:errcheck // closed with the transaction

	clearStmt, err := tx.PrepareContext(ctx, `DELETE FROM rates WHERE sheet_date = $1::date`)
	if err != nil {
		return 0, fmt.Errorf("prepare rate cleanup: %w", err)
	}
	defer clearStmt.Close() //nolint:errcheck // closed with the transaction

	rateStmt, err := tx.PrepareContext(ctx, `INSERT INTO rates (sheet_date, currency, rate)
              VALUES ($1::date, $2, $3::numeric)`)
	if err != nil {
		return 0, fmt.Errorf("prepare rate insert: %w", err)
	}
	defer rateStmt.Close() //nolint:errcheck // closed with the transaction

	for _, s := range doc.Sheets() {
		day := rates.FormatDate(s.Date)
		if _, err = sheetStmt.ExecContext(ctx, day); err != nil {
			return 0, fmt.Errorf("upsert sheet %s: %w", day, err)
		}
		if _, err = clearStmt.ExecContext(ctx, day); err != nil {
			return 0, fmt.Errorf("clear rates of %s: %w", day, err)
		}
		for code, v := range s.Rates {
			if _, err = rateStmt.ExecContext(ctx, day, code, v.String()); err != nil {
				return 0, fmt.Errorf("insert rate %s on %s: %w", code, day, err)
			}
		}
		n++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return n, nil
}

// LoadDocument rebuilds the stored document, returning (nil, nil) when no
// sheet has been saved yet.
func (r *PostgresSheetRepository) LoadDocument(ctx context.Context) (*rates.Document, error) {
	query := `SELECT to_char(s.sheet_date, 'YYYY-MM-DD'), r.currency, r.rate::text
              FROM rate_sheets s
              LEFT JOIN rates r ON r.sheet_date = s.sheet_date
              ORDER BY s.sheet_date, r.currency`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sheets: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err is checked below

	var sheets []rates.Sheet
	for rows.Next() {
		var day string
		var code, value sql.NullString
		if err := rows.Scan(&day, &code, &value); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}

		if len(sheets) == 0 || rates.FormatDate(sheets[len(sheets)-1].Date) != day {
			date, err := rates.ParseDate(day)
			if err != nil {
				return nil, err
			}
			sheets = append(sheets, rates.Sheet{Date: date, Rates: map[string]decimal.Decimal{}})
		}
		if !code.Valid {
			continue
		}
		v, err := decimal.NewFromString(value.String)
		if err != nil {
			return nil, fmt.Errorf("%w: stored %s rate %q", rates.ErrMalformedRate, code.String, value.String)
		}
		sheets[len(sheets)-1].Rates[code.String] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheets: %w", err)
	}

	if len(sheets) == 0 {
		return nil, nil
	}
	return rates.NewDocument(sheets)
}

// LatestDate returns the newest stored sheet date, or the zero time when the
// store is empty.
func (r *PostgresSheetRepository) LatestDate(ctx context.Context) (time.Time, error) {
	var day sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT to_char(MAX(sheet_date), 'YYYY-MM-DD') FROM rate_sheets`).Scan(&day)
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest sheet: %w", err)
	}
	if !day.Valid {
		return time.Time{}, nil
	}
	return rates.ParseDate(day.String)
}
