package pins

import "challenger-go/board"

// Mode is the configuration state of a pin.
type Mode uint8

const (
	// ModeUnconfigured is the reset state: FUNCSEL NULL, pad idle.
	ModeUnconfigured Mode = iota
	ModeInput
	ModeOutput
	// ModeAlternate routes the pin to a peripheral (Config.Function).
	ModeAlternate
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	case ModeAlternate:
		return "alternate"
	}
	return "unconfigured"
}

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	}
	return "none"
}

// Config is the pad and FUNCSEL state applied to one GPIO.
type Config struct {
	Mode     Mode
	Pull     Pull
	Initial  bool           // output level applied before the driver is enabled
	Function board.Function // valid when Mode == ModeAlternate
}

// Sel returns the FUNCSEL value cfg puts in GPIOx_CTRL.
func (c Config) Sel() uint8 {
	switch c.Mode {
	case ModeInput, ModeOutput:
		return board.SelSIO
	case ModeAlternate:
		return c.Function.Kind.Sel()
	}
	return board.SelNull
}

// Mux is the register-level multiplexer a pin set drives. Implementations
// live in internal/provider (machine on rp2040, a simulator elsewhere).
type Mux interface {
	Configure(n int, cfg Config) error
	Set(n int, level bool)
	Get(n int) bool
}
