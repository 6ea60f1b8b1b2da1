package escrow

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"

	"github.com/code-payments/escrow-program/pkg/solana"
	"github.com/code-payments/escrow-program/pkg/solana/system"
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("E6v3tbZyZAthzd5JCPJgd3TmLXL3VirKxib9XHjyKTjL")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

// Initialize returns an instruction that creates the escrow between payer
// and recipient and locks amount lamports in it, on top of the rent
// exemption minimum the payer also fronts.
func Initialize(payer, recipient, escrow ed25519.PublicKey, amount uint64) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Payer
	//   1. [] Recipient
	//   2. [WRITE] Escrow state
	//   3. [] System program
	return solana.NewInstruction(
		PROGRAM_ID,
		MarshalInstruction(&Instruction{
			Type:   InstructionTypeInitialize,
			Amount: amount,
		}),
		solana.NewAccountMeta(payer, true),
		solana.NewReadonlyAccountMeta(recipient, false),
		solana.NewAccountMeta(escrow, false),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
	)
}

// Complete returns an instruction that releases the escrowed deposit to the
// recipient and returns the rent exemption minimum to the payer.
func Complete(payer, recipient, escrow ed25519.PublicKey) solana.Instruction {
	// # Account references
	//   0. [WRITE] Payer
	//   1. [WRITE] Recipient
	//   2. [WRITE] Escrow state
	return solana.NewInstruction(
		PROGRAM_ID,
		MarshalInstruction(&Instruction{Type: InstructionTypeComplete}),
		solana.NewAccountMeta(payer, false),
		solana.NewAccountMeta(recipient, false),
		solana.NewAccountMeta(escrow, false),
	)
}

// Close returns an instruction that cancels the escrow, returning the
// deposit and the rent exemption minimum to the payer.
func Close(payer, recipient, escrow ed25519.PublicKey) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Payer
	//   1. [] Recipient
	//   2. [WRITE] Escrow state
	return solana.NewInstruction(
		PROGRAM_ID,
		MarshalInstruction(&Instruction{Type: InstructionTypeClose}),
		solana.NewAccountMeta(payer, true),
		solana.NewReadonlyAccountMeta(recipient, false),
		solana.NewAccountMeta(escrow, false),
	)
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
