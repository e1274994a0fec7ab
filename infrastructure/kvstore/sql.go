package kvstore

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "volume_entries"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore keeps entries in a two-column table (entry_key, entry_value).
// Queries are written with '?' placeholders and rebound for the driver.
type SQLStore struct {
	db    *sqlx.DB
	table string
}

var _ ports.KVStore = (*SQLStore)(nil)

// NewSQLStore creates a SQLStore over db. An empty table selects DefaultTable.
func NewSQLStore(db *sqlx.DB, table string) (*SQLStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLStore{db: db, table: table}, nil
}

// EnsureSchema creates the backing table if it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (entry_key TEXT PRIMARY KEY, entry_value BYTEA NOT NULL)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Get implements ports.KVStore.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := s.db.Rebind(fmt.Sprintf("SELECT entry_value FROM %s WHERE entry_key = ?", s.table))

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// Put implements ports.KVStore.
func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (entry_key, entry_value) VALUES (?, ?) ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value",
		s.table,
	))
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete implements ports.KVStore.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE entry_key = ?", s.table))
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Keys implements ports.KVStore.
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := s.db.Rebind(fmt.Sprintf(`SELECT entry_key FROM %s WHERE entry_key LIKE ? ESCAPE '\'`, s.table))

	var keys []string
	if err := s.db.SelectContext(ctx, &keys, query, likePrefix(prefix)); err != nil {
		return nil, fmt.Errorf("failed to list keys with prefix %q: %w", prefix, err)
	}

	// LIKE matching varies with collation; filter and order bytewise here.
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
