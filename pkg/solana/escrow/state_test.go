package escrow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowAccount_RoundTrip(t *testing.T) {
	for bump := 0; bump <= math.MaxUint8; bump++ {
		state := NewEscrowAccount(uint8(bump))

		data := state.Marshal()
		require.Len(t, data, EscrowAccountSize)
		assert.EqualValues(t, 1, data[0])
		assert.EqualValues(t, bump, data[1])

		var unmarshalled EscrowAccount
		require.NoError(t, unmarshalled.Unmarshal(data))
		assert.True(t, unmarshalled.IsInitialized)
		assert.EqualValues(t, bump, unmarshalled.Bump)
	}
}

func TestEscrowAccount_Unmarshal(t *testing.T) {
	var state EscrowAccount

	assert.Equal(t, ErrInvalidAccountData, state.Unmarshal(nil))
	assert.Equal(t, ErrInvalidAccountData, state.Unmarshal([]byte{1}))
	assert.Equal(t, ErrInvalidAccountData, state.Unmarshal([]byte{1, 255, 0}))

	require.NoError(t, state.Unmarshal([]byte{0, 42}))
	assert.False(t, state.IsInitialized)
	assert.EqualValues(t, 42, state.Bump)
}
