package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-program/pkg/solana"
)

var EscrowStatePrefix = []byte("escrow")

type GetEscrowAddressArgs struct {
	Payer     ed25519.PublicKey
	Recipient ed25519.PublicKey
}

// GetEscrowAddress finds the canonical escrow address and bump for a
// (payer, recipient) pair under the provided program identity.
func GetEscrowAddress(program ed25519.PublicKey, args *GetEscrowAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		EscrowStatePrefix,
		args.Payer,
		args.Recipient,
	)
}

// GetEscrowAddressWithBump re-derives the escrow address for a known bump.
// The derivation failing, or producing a different address than the one a
// caller supplied, means the bump does not belong to this (payer,
// recipient) pair.
func GetEscrowAddressWithBump(program ed25519.PublicKey, args *GetEscrowAddressArgs, bump uint8) (ed25519.PublicKey, error) {
	return solana.CreateProgramAddress(
		program,
		EscrowStatePrefix,
		args.Payer,
		args.Recipient,
		[]byte{bump},
	)
}

func getEscrowSigner(program ed25519.PublicKey, args *GetEscrowAddressArgs, bump uint8) solana.ProgramDerivedSigner {
	return solana.NewProgramDerivedSigner(
		program,
		bump,
		EscrowStatePrefix,
		args.Payer,
		args.Recipient,
	)
}
