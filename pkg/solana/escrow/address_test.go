package escrow

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEscrowAddress_Deterministic(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	recipient, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	args := &GetEscrowAddressArgs{
		Payer:     payer,
		Recipient: recipient,
	}

	address, bump, err := GetEscrowAddress(PROGRAM_ID, args)
	require.NoError(t, err)

	again, againBump, err := GetEscrowAddress(PROGRAM_ID, args)
	require.NoError(t, err)
	assert.EqualValues(t, address, again)
	assert.Equal(t, bump, againBump)

	rederived, err := GetEscrowAddressWithBump(PROGRAM_ID, args, bump)
	require.NoError(t, err)
	assert.EqualValues(t, address, rederived)
}

func TestGetEscrowAddress_DistinctPairs(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	recipient, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	other, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	address, _, err := GetEscrowAddress(PROGRAM_ID, &GetEscrowAddressArgs{
		Payer:     payer,
		Recipient: recipient,
	})
	require.NoError(t, err)

	otherAddress, _, err := GetEscrowAddress(PROGRAM_ID, &GetEscrowAddressArgs{
		Payer:     payer,
		Recipient: other,
	})
	require.NoError(t, err)

	assert.NotEqual(t, address, otherAddress)

	// The pair is ordered: swapping payer and recipient derives a
	// different escrow.
	swapped, _, err := GetEscrowAddress(PROGRAM_ID, &GetEscrowAddressArgs{
		Payer:     recipient,
		Recipient: payer,
	})
	require.NoError(t, err)
	assert.NotEqual(t, address, swapped)
}

func TestGetEscrowSigner(t *testing.T) {
	payer, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	recipient, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	args := &GetEscrowAddressArgs{
		Payer:     payer,
		Recipient: recipient,
	}

	address, bump, err := GetEscrowAddress(PROGRAM_ID, args)
	require.NoError(t, err)

	signer := getEscrowSigner(PROGRAM_ID, args, bump)
	assert.True(t, signer.Controls(address))
}
