package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    uid           TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    phone_number  TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    address       TEXT NOT NULL,
    role          TEXT NOT NULL,
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS foods (
    id                  TEXT PRIMARY KEY,
    fid                 TEXT NOT NULL UNIQUE,
    name                TEXT NOT NULL,
    description         TEXT NOT NULL,
    price               REAL NOT NULL,
    image               TEXT NOT NULL,
    category            TEXT NOT NULL,
    ingredients         TEXT NOT NULL,
    is_vegetarian       INTEGER NOT NULL,
    is_gluten_free      INTEGER NOT NULL,
    is_vegan            INTEGER NOT NULL,
    is_on_offer         INTEGER NOT NULL,
    offer_description   TEXT NOT NULL,
    discount_percentage REAL,
    created_at          DATETIME NOT NULL,
    updated_at          DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_foods_category ON foods(category)`,
	`CREATE TABLE IF NOT EXISTS orders (
    id      TEXT PRIMARY KEY,
    oid     TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    items   TEXT NOT NULL,
    amount  REAL NOT NULL,
    address TEXT NOT NULL,
    status  TEXT NOT NULL,
    payment INTEGER NOT NULL,
    date    DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	`CREATE TABLE IF NOT EXISTS delivery_persons (
    id           TEXT PRIMARY KEY,
    did          TEXT NOT NULL UNIQUE,
    first_name   TEXT NOT NULL,
    last_name    TEXT NOT NULL,
    nic          TEXT NOT NULL UNIQUE,
    email        TEXT NOT NULL UNIQUE,
    age          INTEGER NOT NULL,
    vehicle_type TEXT NOT NULL,
    address      TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS delivery_assignments (
    id                 TEXT PRIMARY KEY,
    did                TEXT NOT NULL UNIQUE,
    order_id           TEXT NOT NULL,
    delivery_person_id TEXT NOT NULL,
    assigned_at        DATETIME NOT NULL,
    status             TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
    id          TEXT PRIMARY KEY,
    rid         TEXT NOT NULL UNIQUE,
    reviewed_by TEXT NOT NULL,
    review      TEXT NOT NULL,
    rate        TEXT NOT NULL,
    order_id    TEXT NOT NULL,
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_order ON reviews(order_id)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
    id         TEXT PRIMARY KEY,
    cid        TEXT NOT NULL UNIQUE,
    message    TEXT NOT NULL,
    status     TEXT NOT NULL,
    user_id    TEXT NOT NULL,
    email      TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
    user_id  TEXT NOT NULL,
    food_id  TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    PRIMARY KEY (user_id, food_id)
)`,
}

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	kinds    *seqid.Registry
	assigner *seqid.Assigner
}

// Option configures a SQLiteStore.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the clock that decides which day a new sequential
// identifier belongs to.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Pragmas go in the DSN so that every pooled connection gets them.
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	dsn := dbPath + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	s := &SQLiteStore{
		db:    db,
		kinds: seqid.DefaultRegistry(),
	}
	s.assigner = seqid.NewAssigner(s, seqid.WithClock(o.clock))
	return s, nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LastIssued returns the highest identifier of kind starting with prefix by
// scanning the kind's own table. Identifiers are compared by length first so
// that a four-digit counter outranks a three-digit one.
func (s *SQLiteStore) LastIssued(ctx context.Context, kind seqid.Kind, prefix string) (string, error) {
	if err := s.kinds.Verify(kind); err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`SELECT %[2]s FROM %[1]s WHERE %[2]s LIKE ? ORDER BY length(%[2]s) DESC, %[2]s DESC LIMIT 1`,
		kind.Collection, kind.Field,
	)

	var last string
	err := s.db.QueryRowContext(ctx, query, prefix+"%").Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query last %s: %w", kind.Field, err)
	}
	return last, nil
}

// record is an entity the store can create.
type record interface {
	seqid.Entity
	SetID(id string)
}

// create is the creation hook shared by every aggregate: it stamps the
// sequential identifier, assigns the primary key and runs insert. If the
// insert fails both are cleared so a retry starts from scratch.
func (s *SQLiteStore) create(ctx context.Context, r record, insert func(context.Context) error) error {
	if !r.IsNew() {
		return ErrAlreadyPersisted
	}

	kind := r.SeqKind()
	if err := s.assigner.Stamp(ctx, r); err != nil {
		return fmt.Errorf("assign %s: %w", kind.Field, err)
	}
	r.SetID(model.NewID())

	if err := insert(ctx); err != nil {
		r.SetID("")
		r.SetSeqID("")
		return classifyInsert(kind, err)
	}
	return nil
}

// classifyInsert maps unique constraint violations to ErrDuplicateID when the
// sequential identifier column collided and ErrConflict otherwise.
func classifyInsert(kind seqid.Kind, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if isUniqueViolation(err) {
		if strings.Contains(err.Error(), kind.Collection+"."+kind.Field) {
			seqid.ObserveCollision(kind)
			return fmt.Errorf("insert %s: %w", kind.Name, ErrDuplicateID)
		}
		return fmt.Errorf("insert %s: %w", kind.Name, ErrConflict)
	}
	return fmt.Errorf("insert %s: %w", kind.Name, err)
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE constraint failed")
}

// execUpdate runs an UPDATE or DELETE and reports ErrNotFound when no row matched.
func execUpdate(ctx context.Context, db interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, op, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

// listPage runs a COUNT query and a page query in one read transaction,
// scanning each row with scan.
func listPage[T any](ctx context.Context, db *sql.DB, what, countQuery, pageQuery string, args []any, p Page, scan func(scanner) (T, error)) ([]T, int, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", what, err)
	}

	rows, err := tx.QueryContext(ctx, pageQuery, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", what, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", what, err)
	}

	return items, total, nil
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, what, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return items, nil
}
