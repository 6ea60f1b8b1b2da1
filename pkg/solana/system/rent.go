package system

// accountStorageOverhead is the number of bytes the ledger charges for on
// top of an account's own data to cover its metadata.
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/rent.rs#L31
const accountStorageOverhead = 128

// Rent holds the parameters of the rent sysvar needed to compute the
// minimum balance an account must carry to persist on the ledger.
type Rent struct {
	// LamportsPerByteYear is the rental rate in lamports per byte-year.
	LamportsPerByteYear uint64

	// ExemptionThreshold is the amount of time, in years, a balance must
	// be able to cover rent for to be exempt from collection.
	ExemptionThreshold float64
}

// DefaultRent returns the rent parameters used by mainnet.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
	}
}

// MinimumBalance returns the minimum balance an account holding dataLen
// bytes must maintain to be exempt from rent collection.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	return uint64(float64((accountStorageOverhead+dataLen)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}
