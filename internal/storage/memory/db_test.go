package memory_test

import (
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/storage/memory"
	"github.com/everefficient/booking/internal/ticket"
)

func TestDB_AppendAndLookup(t *testing.T) {
	db := memory.New(memory.Config{L: logger.New(log.New(io.Discard, "", 0))})

	assert.Empty(t, db.All())

	_, ok := db.ByRef("REF-000001")
	assert.False(t, ok)

	record := booking.Record{
		SessionID: uuid.New(),
		RefNumber: "REF-000001",
		Buyer:     booking.Buyer{Name: "Amara Perera"},
		Selection: ticket.NewSelection(),
		Total:     5000,
		EmailSent: true,
	}
	db.Append(record)

	all := db.All()
	require.Len(t, all, 1)
	assert.Equal(t, record.RefNumber, all[0].RefNumber)

	got, ok := db.ByRef("REF-000001")
	require.True(t, ok)
	assert.Equal(t, record.SessionID, got.SessionID)
}
