// Package sqlstore provides a database/sql persistence gateway for SQLite
// (modernc.org/sqlite) and PostgreSQL (pgx).
//
// Dates are stored as ISO "YYYY-MM-DD" text in both dialects so the two
// schemas stay identical and scanning never depends on driver type mapping.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/utc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	pkgerrors "github.com/agentstation/grantmap/pkg/errors"
	"github.com/agentstation/grantmap/pkg/normalize"
	"github.com/agentstation/grantmap/pkg/programs"
	"github.com/agentstation/grantmap/pkg/store"
)

var _ store.Store = (*Store)(nil)

// Dialect selects driver and placeholder style.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case SQLite, Postgres:
		return d, nil
	case "postgresql", "pgx":
		return Postgres, nil
	}
	return "", pkgerrors.NewConfigError("store", fmt.Sprintf("unsupported SQL dialect %q", s), nil)
}

// rebind rewrites "?" placeholders to "$n" for Postgres.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store is a SQL-backed gateway.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps an open handle.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open opens a store for dialect. It does not connect; call Ping and
// Migrate before use.
func Open(dialect Dialect, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, pkgerrors.NewConfigError("store", "dsn is required", nil)
	}

	switch dialect {
	case SQLite:
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		// One connection: writes are serialized and ":memory:" stays one database.
		db.SetMaxOpenConns(1)
		return New(db, SQLite), nil

	case Postgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, pkgerrors.NewConfigError("store", "invalid postgres dsn", err)
		}
		if viaBouncer(cfg) {
			cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		}
		return New(stdlib.OpenDB(*cfg), Postgres), nil
	}
	return nil, pkgerrors.NewConfigError("store", fmt.Sprintf("unsupported SQL dialect %q", dialect), nil)
}

func sqliteDSN(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// viaBouncer reports whether the connection goes through PgBouncer, which
// cannot hold prepared statements in transaction pooling mode.
func viaBouncer(cfg *pgx.ConnConfig) bool {
	return cfg.Port == 6432 || cfg.RuntimeParams["application_name"] == "pgbouncer"
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

const selectColumns = `source_id, source, title, summary, description, category, region, target,
	method, organizer, url, start_date, end_date, status, amount_min, amount_max, view_count`

// FindByKey implements store.Store.
func (s *Store) FindByKey(ctx context.Context, sourceID string) (*programs.Program, error) {
	row := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT `+selectColumns+` FROM programs WHERE source_id = ?`), sourceID)

	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.WrapPersist("find", sourceID, err)
	}
	return p, nil
}

// Upsert implements store.Store. Lookup and write share one transaction so
// the created/updated classification is exact.
func (s *Store) Upsert(ctx context.Context, p programs.Program) (outcome store.Outcome, err error) {
	if p.SourceID == "" {
		return 0, pkgerrors.NewValidationError("source_id", p.SourceID, "is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, pkgerrors.WrapPersist("begin", p.SourceID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, s.dialect.rebind(`SELECT 1 FROM programs WHERE source_id = ?`), p.SourceID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		outcome = store.Created
	case err != nil:
		return 0, pkgerrors.WrapPersist("find", p.SourceID, err)
	default:
		outcome = store.Updated
	}

	now := timestamp(nowUTC())
	args := programArgs(p)
	if outcome == store.Created {
		_, err = tx.ExecContext(ctx, s.dialect.rebind(`INSERT INTO programs (
			source, title, summary, description, category, region, target, method,
			organizer, url, start_date, end_date, status, amount_min, amount_max, view_count,
			created_at, updated_at, source_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			append(args, now, now, p.SourceID)...)
		if err != nil {
			return 0, pkgerrors.WrapPersist("create", p.SourceID, err)
		}
	} else {
		_, err = tx.ExecContext(ctx, s.dialect.rebind(`UPDATE programs SET
			source = ?, title = ?, summary = ?, description = ?, category = ?, region = ?,
			target = ?, method = ?, organizer = ?, url = ?, start_date = ?, end_date = ?,
			status = ?, amount_min = ?, amount_max = ?, view_count = ?, updated_at = ?
		WHERE source_id = ?`),
			append(args, now, p.SourceID)...)
		if err != nil {
			return 0, pkgerrors.WrapPersist("update", p.SourceID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, pkgerrors.WrapPersist("commit", p.SourceID, err)
	}
	return outcome, nil
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context, filter store.Filter) (int, error) {
	query := `SELECT COUNT(*) FROM programs`
	var (
		where []string
		args  []any
	)
	if filter.Source != "" {
		where = append(where, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	var n int
	if err := s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...).Scan(&n); err != nil {
		return 0, pkgerrors.WrapPersist("count", "", err)
	}
	return n, nil
}

// GroupByCount implements store.Store.
func (s *Store) GroupByCount(ctx context.Context, field store.Field) ([]store.GroupCount, error) {
	if !field.IsValid() {
		return nil, pkgerrors.NewValidationError("field", field, "cannot group on this field")
	}

	// field is one of a fixed set of column names.
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM programs GROUP BY %[1]s ORDER BY %[1]s`, field)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pkgerrors.WrapPersist("group", "", err)
	}
	defer func() { _ = rows.Close() }()

	var out []store.GroupCount
	for rows.Next() {
		var gc store.GroupCount
		if err := rows.Scan(&gc.Key, &gc.Count); err != nil {
			return nil, pkgerrors.WrapPersist("group", "", err)
		}
		out = append(out, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapPersist("group", "", err)
	}
	return out, nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.Store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (*programs.Program, error) {
	var (
		out                                                              programs.Program
		summary, description, category, region, target, method, org, url sql.NullString
		start, end                                                       sql.NullString
		amountMin, amountMax, views                                      sql.NullInt64
		status                                                           string
	)
	if err := row.Scan(
		&out.SourceID, &out.Source, &out.Title,
		&summary, &description, &category, &region, &target, &method, &org, &url,
		&start, &end, &status, &amountMin, &amountMax, &views,
	); err != nil {
		return nil, err
	}

	out.Summary = nullString(summary)
	out.Description = nullString(description)
	out.Category = nullString(category)
	out.Region = nullString(region)
	out.Target = nullString(target)
	out.Method = nullString(method)
	out.Organizer = nullString(org)
	out.URL = nullString(url)
	out.StartDate = nullDate(start)
	out.EndDate = nullDate(end)
	out.Status = programs.Status(status)
	out.AmountMin = nullInt(amountMin)
	out.AmountMax = nullInt(amountMax)
	out.ViewCount = nullInt(views)
	return &out, nil
}

// programArgs lists p's columns in INSERT/UPDATE order, without source_id.
func programArgs(p programs.Program) []any {
	return []any{
		p.Source, p.Title,
		stringArg(p.Summary), stringArg(p.Description), stringArg(p.Category), stringArg(p.Region),
		stringArg(p.Target), stringArg(p.Method), stringArg(p.Organizer), stringArg(p.URL),
		dateArg(p.StartDate), dateArg(p.EndDate),
		string(p.Status),
		intArg(p.AmountMin), intArg(p.AmountMax), intArg(p.ViewCount),
	}
}

func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func intArg(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.DateOnly)
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	n := ni.Int64
	return &n
}

func nullDate(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	return normalize.ParseDate(ns.String)
}

var nowUTC = func() time.Time { return utc.Now().Time }

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
