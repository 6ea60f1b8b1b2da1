package ledger

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/escrow-program/pkg/solana"
)

var (
	ErrProgramNotFound          = errors.New("program not found")
	ErrAccountInUse             = errors.New("account in use")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrReadonlyAccount          = errors.New("readonly account")
)

// Rent answers the minimum-balance-for-storage-size query.
type Rent interface {
	MinimumBalance(dataLen uint64) uint64
}

// Runtime is the set of system collaborators available to a program during
// an invocation.
type Runtime interface {
	// MinimumBalanceForRentExemption returns the balance an account with
	// dataLen bytes of storage must hold to persist on the ledger.
	MinimumBalanceForRentExemption(dataLen uint64) uint64

	// CreateAccount creates target as a new account funded by funder with
	// the provided lamports, sized to space bytes and owned by owner.
	//
	// The target must authorize its own creation: either it signed the
	// invocation itself, or the invoking program proves control over the
	// address with a derived signer credential. Creation fails with
	// ErrAccountInUse if the address already holds state.
	CreateAccount(funder, target *AccountInfo, owner ed25519.PublicKey, lamports, space uint64, signer *solana.ProgramDerivedSigner) error
}

// Program is a deterministic program the ledger can dispatch instructions to.
type Program interface {
	ID() ed25519.PublicKey
	Process(rt Runtime, accounts []*AccountInfo, data []byte) error
}

// Ledger is an in-memory account ledger that dispatches instructions to
// registered programs. Each invocation runs against a copy of the accounts
// it references; the copy is committed only if the program succeeds, so a
// failed invocation leaves no observable side effects.
type Ledger struct {
	log      *logrus.Entry
	rent     Rent
	programs map[string]Program
	accounts map[string]*Account
}

// NewLedger creates a ledger using the provided rent parameters.
func NewLedger(rent Rent) *Ledger {
	return &Ledger{
		log:      logrus.StandardLogger().WithField("type", "solana/ledger"),
		rent:     rent,
		programs: make(map[string]Program),
		accounts: make(map[string]*Account),
	}
}

// Register makes a program available for dispatch.
func (l *Ledger) Register(p Program) {
	l.programs[string(p.ID())] = p
}

// InitializeAccount sets up a system-owned account holding the provided
// balance. It is the bootstrap (airdrop) analog for funding payers.
func (l *Ledger) InitializeAccount(key ed25519.PublicKey, lamports uint64) {
	account := newAccount()
	account.Lamports = lamports
	l.accounts[string(key)] = account
}

// GetAccount returns a copy of the slot at key, or false if the address has
// never held state. Closed accounts come back as empty slots.
func (l *Ledger) GetAccount(key ed25519.PublicKey) (*Account, bool) {
	account, ok := l.accounts[string(key)]
	if !ok {
		return nil, false
	}
	return account.clone(), true
}

// GetBalance returns the balance of the account at key. Addresses without
// state have a zero balance.
func (l *Ledger) GetBalance(key ed25519.PublicKey) uint64 {
	account, ok := l.accounts[string(key)]
	if !ok {
		return 0
	}
	return account.Lamports
}

// Process executes one instruction atomically: the referenced accounts are
// loaded, the program runs against working copies, and the copies are
// committed only on success.
func (l *Ledger) Process(ix solana.Instruction) error {
	program, ok := l.programs[string(ix.Program)]
	if !ok {
		return ErrProgramNotFound
	}

	log := l.log.WithFields(logrus.Fields{
		"method":  "Process",
		"program": base58.Encode(ix.Program),
	})

	clones := make(map[string]*Account)
	writable := make(map[string]bool)
	infos := make([]*AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		key := string(meta.PublicKey)

		clone, ok := clones[key]
		if !ok {
			if existing, exists := l.accounts[key]; exists {
				clone = existing.clone()
			} else {
				clone = newAccount()
			}
			clones[key] = clone
		}
		writable[key] = writable[key] || meta.IsWritable

		infos[i] = &AccountInfo{
			Key:        meta.PublicKey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
			Account:    clone,
		}
	}

	if err := program.Process(l, infos, ix.Data); err != nil {
		log.WithError(err).Warn("instruction failed, discarding state")
		return err
	}

	// Only accounts declared writable are committed; mutations a program
	// makes to a readonly view are dropped with the clone.
	for key, clone := range clones {
		if !writable[key] {
			continue
		}
		l.accounts[key] = clone
	}
	return nil
}

// MinimumBalanceForRentExemption implements Runtime.
func (l *Ledger) MinimumBalanceForRentExemption(dataLen uint64) uint64 {
	return l.rent.MinimumBalance(dataLen)
}

// CreateAccount implements Runtime.
func (l *Ledger) CreateAccount(funder, target *AccountInfo, owner ed25519.PublicKey, lamports, space uint64, signer *solana.ProgramDerivedSigner) error {
	if !funder.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !funder.IsWritable || !target.IsWritable {
		return ErrReadonlyAccount
	}

	if signer == nil {
		if !target.IsSigner {
			return ErrMissingRequiredSignature
		}
	} else if !signer.Controls(target.Key) {
		return ErrMissingRequiredSignature
	}

	if !target.Account.IsEmpty() {
		return errors.Wrapf(ErrAccountInUse, "address %s", base58.Encode(target.Key))
	}
	if funder.Account.Lamports < lamports {
		return ErrInsufficientFunds
	}

	funder.Account.Lamports -= lamports
	target.Account.Lamports = lamports
	target.Account.Data = make([]byte, space)
	target.Account.Owner = owner

	return nil
}
