package pins

import (
	"strconv"

	"challenger-go/board"
	"challenger-go/errcode"
)

// Pin is an exclusive handle on one GPIO in one configuration.
//
// Reconfiguring consumes the handle: Into, IntoInput, IntoOutput and
// IntoUnconfigured return a new handle and every later call on the old one
// fails with errcode.StaleHandle. A Pin is not safe for concurrent use; hand
// it to one goroutine at a time.
type Pin struct {
	st  *state
	def *board.PinDef
	cfg Config
}

func (p *Pin) Index() int         { return p.def.Index }
func (p *Pin) Alias() string      { return p.def.Alias }
func (p *Pin) Def() *board.PinDef { return p.def }
func (p *Pin) Mode() Mode         { return p.cfg.Mode }
func (p *Pin) Pull() Pull         { return p.cfg.Pull }
func (p *Pin) Config() Config     { return p.cfg }
func (p *Pin) Supports(k board.Kind) bool {
	_, ok := p.def.Supports(k)
	return ok
}

// Function returns the alternate function the pin is routed to; the zero
// Function unless Mode is ModeAlternate.
func (p *Pin) Function() board.Function { return p.cfg.Function }

// Live reports whether p is the current handle for its GPIO.
func (p *Pin) Live() bool {
	p.st.mu.Lock()
	defer p.st.mu.Unlock()
	return p.st.live[p.def.Index] == p
}

func (p *Pin) String() string {
	return "gpio" + strconv.Itoa(p.def.Index) + "(" + p.def.Alias + ")"
}

// Into routes the pin to the alternate function of kind k. Kinds the board
// does not declare for this pin are rejected with
// errcode.UnsupportedFunction before any register is touched; the receiver
// stays live in that case.
func (p *Pin) Into(k board.Kind) (*Pin, error) {
	f, ok := p.def.Supports(k)
	if !ok {
		return nil, errcode.New(errcode.UnsupportedFunction, "pins.Into", p.String()+": "+k.String())
	}
	return p.st.reconfigure(p, Config{Mode: ModeAlternate, Function: f})
}

// MustInto is Into for start-up code: an undeclared function panics.
func (p *Pin) MustInto(k board.Kind) *Pin {
	np, err := p.Into(k)
	if err != nil {
		panic(err)
	}
	return np
}

// IntoInput makes the pin a SIO input with the given pull.
func (p *Pin) IntoInput(pull Pull) (*Pin, error) {
	return p.st.reconfigure(p, Config{Mode: ModeInput, Pull: pull})
}

// IntoOutput makes the pin a SIO output driving initial.
func (p *Pin) IntoOutput(initial bool) (*Pin, error) {
	return p.st.reconfigure(p, Config{Mode: ModeOutput, Initial: initial})
}

// IntoUnconfigured returns the pin to its reset state.
func (p *Pin) IntoUnconfigured() (*Pin, error) {
	return p.st.reconfigure(p, Config{})
}

// Set drives an output pin.
func (p *Pin) Set(level bool) error {
	if err := p.check("pins.Set", ModeOutput); err != nil {
		return err
	}
	p.st.mux.Set(p.def.Index, level)
	return nil
}

func (p *Pin) High() error { return p.Set(true) }
func (p *Pin) Low() error  { return p.Set(false) }

// Toggle inverts an output pin.
func (p *Pin) Toggle() error {
	if err := p.check("pins.Toggle", ModeOutput); err != nil {
		return err
	}
	n := p.def.Index
	p.st.mux.Set(n, !p.st.mux.Get(n))
	return nil
}

// Get reads the pad level of an input or output pin.
func (p *Pin) Get() (bool, error) {
	if err := p.check("pins.Get", ModeInput, ModeOutput); err != nil {
		return false, err
	}
	return p.st.mux.Get(p.def.Index), nil
}

func (p *Pin) check(op string, modes ...Mode) error {
	if !p.Live() {
		return errcode.New(errcode.StaleHandle, op, p.String())
	}
	for _, m := range modes {
		if p.cfg.Mode == m {
			return nil
		}
	}
	return errcode.New(errcode.WrongMode, op, p.String()+" is "+p.cfg.Mode.String())
}
