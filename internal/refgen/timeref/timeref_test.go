package timeref_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/everefficient/booking/internal/refgen/timeref"
)

func TestNext_LastSixMillisDigits(t *testing.T) {
	gen := timeref.New()

	at := time.UnixMilli(1756580165123)
	assert.Equal(t, "REF-165123", gen.Next(at))
}

func TestNext_DiffersAcrossOpens(t *testing.T) {
	gen := timeref.New()

	at := time.UnixMilli(1756580165123)
	assert.NotEqual(t, gen.Next(at), gen.Next(at.Add(7*time.Millisecond)))
}
