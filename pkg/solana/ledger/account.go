package ledger

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-program/pkg/solana/system"
)

// Account is one addressable slot on the ledger: a balance, a byte buffer,
// and the program that owns (may mutate) it.
type Account struct {
	Lamports uint64
	Data     []byte
	Owner    ed25519.PublicKey
}

func newAccount() *Account {
	return &Account{
		Owner: system.SystemAccount,
	}
}

// IsEmpty reports whether the slot holds no state, i.e. whether the address
// is available for account creation.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0
}

func (a *Account) clone() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)

	owner := make(ed25519.PublicKey, len(a.Owner))
	copy(owner, a.Owner)

	return &Account{
		Lamports: a.Lamports,
		Data:     data,
		Owner:    owner,
	}
}

// AccountInfo is a program's view of one account for the duration of a
// single invocation.
type AccountInfo struct {
	Key        ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	Account    *Account
}
