package escrow

// EscrowAccount is the record persisted in the escrow state account. The
// locked amount is never stored: it is always the account balance less the
// rent exemption minimum, so the record cannot go stale.
type EscrowAccount struct {
	IsInitialized bool
	Bump          uint8
}

const EscrowAccountSize = (1 + // is_initialized
	1) // bump

func NewEscrowAccount(bump uint8) *EscrowAccount {
	return &EscrowAccount{
		IsInitialized: true,
		Bump:          bump,
	}
}

// Marshal serializes the record into its fixed 2 byte layout.
func (obj *EscrowAccount) Marshal() []byte {
	data := make([]byte, EscrowAccountSize)

	if obj.IsInitialized {
		data[0] = 1
	}
	data[1] = obj.Bump

	return data
}

// Unmarshal deserializes the record from the provided account data.
func (obj *EscrowAccount) Unmarshal(data []byte) error {
	if len(data) != EscrowAccountSize {
		return ErrInvalidAccountData
	}

	obj.IsInitialized = data[0] == 1
	obj.Bump = data[1]

	return nil
}
