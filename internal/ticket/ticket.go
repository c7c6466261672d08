package ticket

import (
	"fmt"
	"strconv"
)

type Tier string

const (
	TierVIP       Tier = "VIP"
	TierGeneral   Tier = "GENERAL"
	TierEarlyBird Tier = "EARLYBIRD"
)

// Tiers lists every tier in display order.
var Tiers = []Tier{TierVIP, TierGeneral, TierEarlyBird}

// Prices holds the unit price per tier in LKR.
var Prices = map[Tier]int{
	TierVIP:       5000,
	TierGeneral:   3000,
	TierEarlyBird: 2500,
}

const (
	MinQuantity = 0
	MaxQuantity = 10
)

var ErrUnknownTier = fmt.Errorf("unknown ticket tier")

func Parse(s string) (Tier, error) {
	switch Tier(s) {
	case TierVIP, TierGeneral, TierEarlyBird:
		return Tier(s), nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownTier)
}

// Selection maps each tier to a requested quantity.
type Selection map[Tier]int

func NewSelection() Selection {
	s := make(Selection, len(Tiers))
	for _, tier := range Tiers {
		s[tier] = 0
	}

	return s
}

// Set stores a quantity for the tier, clamped to [MinQuantity, MaxQuantity].
func (s Selection) Set(tier Tier, quantity int) {
	if quantity < MinQuantity {
		quantity = MinQuantity
	}

	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	s[tier] = quantity
}

func (s Selection) Quantity(tier Tier) int {
	return s[tier]
}

// Total returns the price of the selection in LKR.
func (s Selection) Total() int {
	var total int
	for tier, quantity := range s {
		total += quantity * Prices[tier]
	}

	return total
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for tier, quantity := range s {
		out[tier] = quantity
	}

	return out
}

// FormatLKR renders an amount the way the widget shows it, e.g. "15,000 LKR".
func FormatLKR(amount int) string {
	return groupThousands(amount) + " LKR"
}

func groupThousands(amount int) string {
	if amount < 0 {
		return "-" + groupThousands(-amount)
	}

	digits := strconv.Itoa(amount)
	if len(digits) <= 3 {
		return digits
	}

	return groupThousands(amount/1000) + "," + digits[len(digits)-3:]
}
