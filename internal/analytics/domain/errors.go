package domain

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DataIntegrityError marks catalog data the engine cannot safely work with,
// e.g. an item without a valid order pack. It aborts the whole restock run:
// a partial order set is worse than none.
type DataIntegrityError struct {
	ItemID uint
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: item %d: %s", e.ItemID, e.Reason)
}

// ConfigurationError marks missing required external configuration
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration missing: %s", e.Key)
}

// TransientError wraps store errors the caller may retry
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying. Serialization failures,
// deadlocks and lock timeouts from PostgreSQL count as transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}

	return false
}
