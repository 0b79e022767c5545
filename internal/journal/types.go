package journal

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the run journal.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
