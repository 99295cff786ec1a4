package repository

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/newsfeed/pkg/domain"
)

// ErrNotFound returned when no article matches the requested id
var ErrNotFound = domain.ErrNotFound

// errNoRetry marks errors the repeater must not retry
var errNoRetry = errors.New("no retry")

// noRetry wraps an error so repeater stops on it
func noRetry(err error) error {
	return fmt.Errorf("%w: %w", errNoRetry, err)
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// tags is a nullable string list stored as a JSON array
type tags []string

// Value implements driver.Valuer, nil list is stored as NULL
func (t tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (t *tags) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported tags type %T", src)
	}

	var res []string
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	*t = res
	return nil
}

var (
	_ sql.Scanner   = (*tags)(nil)
	_ driver.Valuer = tags(nil)
)
