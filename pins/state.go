package pins

import (
	"sync"

	"challenger-go/board"
	"challenger-go/errcode"
)

// Change describes one completed reconfiguration.
type Change struct {
	Index int
	Alias string
	From  Config
	To    Config
}

// Option customises Split.
type Option func(*state)

// WithObserver registers fn to be called after every reconfiguration,
// including the initial one Split performs. fn runs on the caller's goroutine
// and must not block.
func WithObserver(fn func(Change)) Option {
	return func(s *state) { s.observers = append(s.observers, fn) }
}

// WithoutReset skips the reset-to-unconfigured pass Split does by default,
// leaving whatever the boot ROM and bootloader set up.
func WithoutReset() Option {
	return func(s *state) { s.noReset = true }
}

// state is shared by every handle produced from one bank.
type state struct {
	mu        sync.Mutex
	mux       Mux
	live      [board.NumPins]*Pin
	observers []func(Change)
	noReset   bool
}

func (s *state) reconfigure(old *Pin, cfg Config) (*Pin, error) {
	n := old.def.Index

	s.mu.Lock()
	if s.live[n] != old {
		s.mu.Unlock()
		return nil, errcode.New(errcode.StaleHandle, "pins.reconfigure", old.String())
	}
	if err := s.mux.Configure(n, cfg); err != nil {
		s.mu.Unlock()
		return nil, &errcode.E{C: errcode.Of(err), Op: "pins.reconfigure", Msg: old.String(), Err: err}
	}
	np := &Pin{st: s, def: old.def, cfg: cfg}
	s.live[n] = np
	obs := s.observers
	s.mu.Unlock()

	s.notify(obs, Change{Index: n, Alias: old.def.Alias, From: old.cfg, To: cfg})
	return np, nil
}

func (s *state) notify(obs []func(Change), c Change) {
	for _, fn := range obs {
		fn(c)
	}
}
