package ticket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everefficient/booking/internal/ticket"
)

func TestTotal_EmptySelectionIsZero(t *testing.T) {
	assert.Equal(t, 0, ticket.NewSelection().Total())
}

func TestTotal_SumsPerTier(t *testing.T) {
	s := ticket.NewSelection()
	s.Set(ticket.TierVIP, 1)
	s.Set(ticket.TierGeneral, 2)

	assert.Equal(t, 11000, s.Total())

	s.Set(ticket.TierEarlyBird, 3)
	assert.Equal(t, 18500, s.Total())
}

func TestTotal_IncrementAddsUnitPrice(t *testing.T) {
	for _, tier := range ticket.Tiers {
		s := ticket.NewSelection()
		s.Set(ticket.TierVIP, 2)
		s.Set(ticket.TierGeneral, 1)

		before := s.Total()
		s.Set(tier, s.Quantity(tier)+1)

		assert.Equal(t, ticket.Prices[tier], s.Total()-before, "tier %s", tier)
	}
}

func TestSet_ClampsToAllowedRange(t *testing.T) {
	s := ticket.NewSelection()

	s.Set(ticket.TierVIP, -5)
	assert.Equal(t, 0, s.Quantity(ticket.TierVIP))

	s.Set(ticket.TierVIP, 99)
	assert.Equal(t, ticket.MaxQuantity, s.Quantity(ticket.TierVIP))
}

func TestClone_IsIndependent(t *testing.T) {
	s := ticket.NewSelection()
	s.Set(ticket.TierVIP, 3)

	clone := s.Clone()
	clone.Set(ticket.TierVIP, 7)

	assert.Equal(t, 3, s.Quantity(ticket.TierVIP))
	assert.Equal(t, 7, clone.Quantity(ticket.TierVIP))
}

func TestParse(t *testing.T) {
	tier, err := ticket.Parse("VIP")
	require.NoError(t, err)
	assert.Equal(t, ticket.TierVIP, tier)

	_, err = ticket.Parse("BACKSTAGE")
	assert.ErrorIs(t, err, ticket.ErrUnknownTier)
}

func TestFormatLKR(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "0 LKR"},
		{500, "500 LKR"},
		{2500, "2,500 LKR"},
		{11000, "11,000 LKR"},
		{15000, "15,000 LKR"},
		{1234567, "1,234,567 LKR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ticket.FormatLKR(tt.amount))
	}
}
