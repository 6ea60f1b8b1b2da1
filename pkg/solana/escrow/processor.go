package escrow

import (
	"bytes"
	"crypto/ed25519"
	"math"

	"github.com/mr-tron/base58/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/escrow-program/pkg/solana/ledger"
	"github.com/code-payments/escrow-program/pkg/solana/system"
)

// Processor implements the escrow state machine. Each invocation validates
// the supplied accounts fully before mutating any balance, so a failing
// check never leaves a partially applied escrow behind.
type Processor struct {
	log       *logrus.Entry
	programID ed25519.PublicKey
}

// NewProcessor creates a processor operating under the default program
// identity.
func NewProcessor() *Processor {
	return NewProcessorWithID(PROGRAM_ID)
}

// NewProcessorWithID creates a processor operating under the provided
// program identity. All derivation and ownership checks are made against
// it.
func NewProcessorWithID(programID ed25519.PublicKey) *Processor {
	return &Processor{
		log:       logrus.StandardLogger().WithField("type", "solana/escrow/processor"),
		programID: programID,
	}
}

// ID implements ledger.Program.
func (p *Processor) ID() ed25519.PublicKey {
	return p.programID
}

// Process implements ledger.Program.
func (p *Processor) Process(rt ledger.Runtime, accounts []*ledger.AccountInfo, data []byte) error {
	ix, err := UnpackInstruction(data)
	if err != nil {
		return err
	}

	switch ix.Type {
	case InstructionTypeInitialize:
		return p.processInitialize(rt, accounts, ix.Amount)
	case InstructionTypeComplete:
		return p.processComplete(rt, accounts)
	case InstructionTypeClose:
		return p.processClose(rt, accounts)
	}

	return ErrInvalidInstructionData
}

func (p *Processor) processInitialize(rt ledger.Runtime, accounts []*ledger.AccountInfo, amount uint64) error {
	log := p.log.WithField("method", "processInitialize")

	// The deposit must at minimum cover the escrow account's own rent
	// exemption, or the account could not persist.
	rentExemptionMinimum := rt.MinimumBalanceForRentExemption(EscrowAccountSize)
	if amount < rentExemptionMinimum {
		return ErrInsufficientFunds
	}

	if len(accounts) < 4 {
		return ErrNotEnoughAccountKeys
	}
	payer := accounts[0]
	recipient := accounts[1]
	escrow := accounts[2]

	addressArgs := &GetEscrowAddressArgs{
		Payer:     payer.Key,
		Recipient: recipient.Key,
	}
	expected, bump, err := GetEscrowAddress(p.programID, addressArgs)
	if err != nil {
		return err
	}
	if !bytes.Equal(expected, escrow.Key) {
		return ErrInvalidInstructionData
	}

	totalLamports, err := creditLamports(amount, rentExemptionMinimum)
	if err != nil {
		return err
	}

	signer := getEscrowSigner(p.programID, addressArgs, bump)
	if err := rt.CreateAccount(payer, escrow, p.programID, totalLamports, EscrowAccountSize, &signer); err != nil {
		return err
	}

	state := NewEscrowAccount(bump)
	copy(escrow.Account.Data, state.Marshal())

	log.WithFields(logrus.Fields{
		"escrow": base58.Encode(escrow.Key),
		"amount": amount,
	}).Debug("initialized escrow")

	return nil
}

func (p *Processor) processComplete(rt ledger.Runtime, accounts []*ledger.AccountInfo) error {
	log := p.log.WithField("method", "processComplete")

	payer, recipient, escrow, state, err := p.loadEscrow(accounts)
	if err != nil {
		return err
	}

	rentExemptionMinimum := rt.MinimumBalanceForRentExemption(EscrowAccountSize)
	if escrow.Account.Lamports < rentExemptionMinimum {
		return ErrInsufficientFunds
	}
	lockedAmount := escrow.Account.Lamports - rentExemptionMinimum

	// The deposit goes to the recipient, then closing returns the rent
	// exemption minimum to the payer. The two credits together drain the
	// escrow exactly.
	recipient.Account.Lamports, err = creditLamports(recipient.Account.Lamports, lockedAmount)
	if err != nil {
		return err
	}
	if err := closeEscrowAccount(payer, escrow, rentExemptionMinimum); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"escrow": base58.Encode(escrow.Key),
		"bump":   state.Bump,
		"amount": lockedAmount,
	}).Debug("completed escrow")

	return nil
}

func (p *Processor) processClose(_ ledger.Runtime, accounts []*ledger.AccountInfo) error {
	log := p.log.WithField("method", "processClose")

	payer, _, escrow, state, err := p.loadEscrow(accounts)
	if err != nil {
		return err
	}

	// The recipient gets nothing: the deposit and the rent exemption
	// minimum both go back to the payer.
	refunded := escrow.Account.Lamports
	if err := closeEscrowAccount(payer, escrow, refunded); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"escrow":   base58.Encode(escrow.Key),
		"bump":     state.Bump,
		"refunded": refunded,
	}).Debug("closed escrow")

	return nil
}

// loadEscrow performs the shared authorization steps for complete and
// close: the escrow account must be owned by this program, hold a decodable
// initialized record, and sit at the address the record's bump re-derives
// for the supplied (payer, recipient) pair. The re-derivation, rather than
// trust in the supplied address, is what authorizes the operation.
func (p *Processor) loadEscrow(accounts []*ledger.AccountInfo) (payer, recipient, escrow *ledger.AccountInfo, state *EscrowAccount, err error) {
	if len(accounts) < 3 {
		return nil, nil, nil, nil, ErrNotEnoughAccountKeys
	}
	payer = accounts[0]
	recipient = accounts[1]
	escrow = accounts[2]

	if !bytes.Equal(escrow.Account.Owner, p.programID) {
		return nil, nil, nil, nil, ErrIncorrectProgramId
	}

	state = &EscrowAccount{}
	if err := state.Unmarshal(escrow.Account.Data); err != nil {
		return nil, nil, nil, nil, err
	}
	if !state.IsInitialized {
		return nil, nil, nil, nil, ErrUninitializedAccount
	}

	expected, err := GetEscrowAddressWithBump(
		p.programID,
		&GetEscrowAddressArgs{
			Payer:     payer.Key,
			Recipient: recipient.Key,
		},
		state.Bump,
	)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !bytes.Equal(expected, escrow.Key) {
		return nil, nil, nil, nil, ErrInvalidInstructionData
	}

	return payer, recipient, escrow, state, nil
}

// closeEscrowAccount credits amount to the receiving account, then removes
// the escrow account from the ledger: balance zeroed, data cleared to zero
// length, and ownership reassigned to the system program so the address
// becomes reusable.
func closeEscrowAccount(to, escrow *ledger.AccountInfo, amount uint64) error {
	credited, err := creditLamports(to.Account.Lamports, amount)
	if err != nil {
		return err
	}
	to.Account.Lamports = credited

	escrow.Account.Lamports = 0
	escrow.Account.Data = nil
	escrow.Account.Owner = system.SystemAccount

	return nil
}

// creditLamports adds amount to balance, failing instead of wrapping on
// overflow.
func creditLamports(balance, amount uint64) (uint64, error) {
	if balance > math.MaxUint64-amount {
		return 0, ErrArithmeticOverflow
	}
	return balance + amount, nil
}
