package escrow

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/escrow-program/pkg/solana/system"
)

func TestUnpackInstruction(t *testing.T) {
	ix, err := UnpackInstruction([]byte{0, 0x2d, 0xae, 0x06, 0x06, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeInitialize, ix.Type)
	assert.EqualValues(t, 101101101, ix.Amount)

	ix, err = UnpackInstruction([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeComplete, ix.Type)

	ix, err = UnpackInstruction([]byte{2})
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeClose, ix.Type)

	// Trailing bytes beyond the discriminant are tolerated.
	ix, err = UnpackInstruction([]byte{1, 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeComplete, ix.Type)
}

func TestUnpackInstruction_Invalid(t *testing.T) {
	invalid := [][]byte{
		nil,
		{},
		{3},
		{255},
		{0},
		{0, 1, 2, 3},
		{0, 1, 2, 3, 4, 5, 6, 7},
		// Initialize takes exactly 8 bytes of amount, nothing more.
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}

	for _, data := range invalid {
		_, err := UnpackInstruction(data)
		assert.Equal(t, ErrInvalidInstructionData, err)
	}
}

func TestMarshalInstruction_RoundTrip(t *testing.T) {
	for _, ix := range []*Instruction{
		{Type: InstructionTypeInitialize, Amount: 101101101},
		{Type: InstructionTypeComplete},
		{Type: InstructionTypeClose},
	} {
		decoded, err := UnpackInstruction(MarshalInstruction(ix))
		require.NoError(t, err)
		assert.Equal(t, ix, decoded)
	}
}

func TestInstructionBuilders(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	recipient, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	escrowAddress, _, err := GetEscrowAddress(PROGRAM_ID, &GetEscrowAddressArgs{
		Payer:     payer,
		Recipient: recipient,
	})
	require.NoError(t, err)

	initialize := Initialize(payer, recipient, escrowAddress, 101101101)
	assert.Equal(t, PROGRAM_ID, initialize.Program)
	require.Len(t, initialize.Accounts, 4)
	assert.EqualValues(t, payer, initialize.Accounts[0].PublicKey)
	assert.True(t, initialize.Accounts[0].IsSigner)
	assert.True(t, initialize.Accounts[0].IsWritable)
	assert.EqualValues(t, recipient, initialize.Accounts[1].PublicKey)
	assert.False(t, initialize.Accounts[1].IsWritable)
	assert.EqualValues(t, escrowAddress, initialize.Accounts[2].PublicKey)
	assert.True(t, initialize.Accounts[2].IsWritable)
	assert.EqualValues(t, system.SystemAccount, initialize.Accounts[3].PublicKey)

	ix, err := UnpackInstruction(initialize.Data)
	require.NoError(t, err)
	assert.Equal(t, InstructionTypeInitialize, ix.Type)
	assert.EqualValues(t, 101101101, ix.Amount)

	complete := Complete(payer, recipient, escrowAddress)
	require.Len(t, complete.Accounts, 3)
	assert.True(t, complete.Accounts[1].IsWritable)
	assert.Equal(t, []byte{1}, complete.Data)

	closeIx := Close(payer, recipient, escrowAddress)
	require.Len(t, closeIx.Accounts, 3)
	assert.True(t, closeIx.Accounts[0].IsSigner)
	assert.False(t, closeIx.Accounts[1].IsWritable)
	assert.Equal(t, []byte{2}, closeIx.Data)
}
