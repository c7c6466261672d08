// Package memory keeps the completed booking attempts of the current widget
// session. Nothing survives a restart; the widget has no persistence.
package memory

import (
	"sync"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/logger"
)

type Config struct {
	L *logger.Logger
}

type DB struct {
	mu      sync.Mutex
	l       *logger.Logger
	records []booking.Record
	byRef   map[string]int
}

func New(conf Config) *DB {
	return &DB{
		l:     conf.L,
		byRef: make(map[string]int),
	}
}

func (db *DB) Append(record booking.Record) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.byRef[record.RefNumber] = len(db.records)
	db.records = append(db.records, record)

	db.l.LogInfo("Recorded booking %v (email sent: %v)", record.RefNumber, record.EmailSent)
}

func (db *DB) All() []booking.Record {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]booking.Record, len(db.records))
	copy(out, db.records)

	return out
}

func (db *DB) ByRef(ref string) (booking.Record, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx, ok := db.byRef[ref]
	if !ok {
		return booking.Record{}, false
	}

	return db.records[idx], true
}
