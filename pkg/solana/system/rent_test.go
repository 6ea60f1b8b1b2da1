package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentMinimumBalance(t *testing.T) {
	rent := DefaultRent()

	// Values cross-checked against the Solana SDK's Rent::minimum_balance.
	assert.EqualValues(t, 890880, rent.MinimumBalance(0))
	assert.EqualValues(t, 904800, rent.MinimumBalance(2))
	assert.EqualValues(t, 1113600, rent.MinimumBalance(32))
}
