package escrow

import "github.com/pkg/errors"

var (
	ErrInvalidInstructionData = errors.New("invalid instruction data")
	ErrNotEnoughAccountKeys   = errors.New("not enough account keys")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrIncorrectProgramId     = errors.New("incorrect program id")
	ErrInvalidAccountData     = errors.New("invalid account data")
	ErrUninitializedAccount   = errors.New("uninitialized account")
	ErrArithmeticOverflow     = errors.New("arithmetic overflow")
)
