package pins

import (
	"sync"
	"sync/atomic"

	"challenger-go/errcode"
)

// Bank is the proof of ownership of IO_BANK0. Split consumes it; a consumed
// bank cannot be split again.
type Bank struct {
	mu    sync.Mutex
	spent bool
}

var (
	hwBank  = &Bank{}
	hwTaken atomic.Bool
)

// Both ways of acquiring the bank twice report the same error.
func errBankTaken() error {
	return errcode.New(errcode.BankTaken, "pins", "IO_BANK0 already split")
}

// TakeBank returns the process-wide bank token. Only the first call succeeds.
func TakeBank() (*Bank, error) {
	if !hwTaken.CompareAndSwap(false, true) {
		return nil, errBankTaken()
	}
	return hwBank, nil
}

// NewBank mints an independent token, for simulated boards and tests. It does
// not grant access to the process-wide bank.
func NewBank() *Bank { return &Bank{} }

// consume runs fn while holding the bank and marks it spent only if fn
// succeeds, so a failed split can be retried with the same token.
func (b *Bank) consume(fn func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spent {
		return errBankTaken()
	}
	if err := fn(); err != nil {
		return err
	}
	b.spent = true
	return nil
}

// Spent reports whether the bank has been split.
func (b *Bank) Spent() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spent
}
