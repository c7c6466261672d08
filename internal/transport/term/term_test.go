package term_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/refgen/timeref"
	"github.com/everefficient/booking/internal/storage/memory"
	"github.com/everefficient/booking/internal/ticket"
	"github.com/everefficient/booking/internal/transport/term"
)

func runCommands(t *testing.T, input string) (string, *memory.DB) {
	t.Helper()

	quiet := logger.New(log.New(io.Discard, "", 0))
	db := memory.New(memory.Config{L: quiet})

	db.Append(booking.Record{
		SessionID: uuid.New(),
		RefNumber: "REF-000001",
		Buyer:     booking.Buyer{Name: "Amara Perera"},
		Selection: ticket.NewSelection(),
		Total:     5000,
		EmailSent: true,
	})

	out := &bytes.Buffer{}

	ui := term.New(term.Conf{
		L:     quiet,
		In:    strings.NewReader(input),
		Out:   out,
		Title: "Nuwara Aale - Chapter 01",
		Venue: "Sahas Uyana - Kandy",
	})

	manager := booking.New(quiet, nil, timeref.New(), db, ui.ShowNotice, booking.Options{CollectNIC: true})
	ui.Attach(manager, db)

	require.NoError(t, ui.Run(context.Background()))

	return out.String(), db
}

func TestRun_TierCommandsSetQuantities(t *testing.T) {
	out, _ := runCommands(t, "book\nvip 2\ngeneral 1\n")

	assert.Contains(t, out, "Total: 13,000 LKR")
	assert.Contains(t, out, "VIP")
}

func TestRun_UnknownCommandRejected(t *testing.T) {
	out, _ := runCommands(t, "book\nbackstage 2\n")

	assert.Contains(t, out, `Unknown command "backstage"`)
	assert.NotContains(t, out, "Total: 1")
}

func TestRun_LookupFindsRecordedBooking(t *testing.T) {
	out, _ := runCommands(t, "lookup REF-000001\nlookup REF-999999\n")

	assert.Contains(t, out, "REF-000001 | Amara Perera | 5,000 LKR | email sent: true")
	assert.Contains(t, out, `No booking with ref "REF-999999"`)
}

func TestRun_DismissDiscardsEntry(t *testing.T) {
	out, _ := runCommands(t, "book\nvip 1\nname Amara\nclose\n")

	assert.Contains(t, out, "-- dialog closed --")
}
