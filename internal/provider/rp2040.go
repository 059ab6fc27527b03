//go:build rp2040

package provider

import (
	"context"
	"machine"
	"strconv"
	"sync"

	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/pins"
	"challenger-go/setups"
	"challenger-go/x/timex"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// -----------------------------------------------------------------------------
// Pin multiplexer
// -----------------------------------------------------------------------------

type rp2Mux struct{}

var _ pins.Mux = rp2Mux{}

// NewMux returns the IO_BANK0 multiplexer.
func NewMux() pins.Mux { return rp2Mux{} }

func pinMode(cfg pins.Config) machine.PinMode {
	switch cfg.Mode {
	case pins.ModeInput:
		switch cfg.Pull {
		case pins.PullUp:
			return machine.PinInputPullup
		case pins.PullDown:
			return machine.PinInputPulldown
		}
		return machine.PinInput
	case pins.ModeOutput:
		return machine.PinOutput
	case pins.ModeAlternate:
		switch cfg.Function.Kind.Class() {
		case board.ClassUART:
			return machine.PinUART
		case board.ClassSPI:
			return machine.PinSPI
		case board.ClassI2C:
			return machine.PinI2C
		case board.ClassPWM:
			return machine.PinPWM
		case board.ClassPIO:
			if cfg.Function.Kind == board.PIO1 {
				return machine.PinPIO1
			}
			return machine.PinPIO0
		}
	}
	// FUNCSEL NULL with the pad isolated.
	return machine.PinAnalog
}

func (rp2Mux) Configure(n int, cfg pins.Config) error {
	if n < 0 || n >= board.NumPins {
		return errcode.New(errcode.UnknownPin, "provider", "gpio"+strconv.Itoa(n))
	}
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: pinMode(cfg)})
	if cfg.Mode == pins.ModeOutput {
		p.Set(cfg.Initial)
	}
	return nil
}

func (rp2Mux) Set(n int, level bool) { machine.Pin(n).Set(level) }
func (rp2Mux) Get(n int) bool        { return machine.Pin(n).Get() }

// -----------------------------------------------------------------------------
// Controllers
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

func gpio(n int) machine.Pin {
	if n < 0 {
		return machine.NoPin
	}
	return machine.Pin(n)
}

type rp2Opener struct {
	mu     sync.Mutex
	opened map[string]bool
	owners []*i2cOwner
}

var _ setups.Opener = (*rp2Opener)(nil)

// NewOpener returns the opener for the on-chip controllers.
func NewOpener() setups.Opener { return &rp2Opener{opened: map[string]bool{}} }

func (o *rp2Opener) claim(class string, unit, max uint8) (string, error) {
	id := class + strconv.Itoa(int(unit))
	if unit > max {
		return id, errcode.New(errcode.UnknownBus, "provider", id)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.opened[id] {
		return id, errcode.New(errcode.BusInUse, "provider", id)
	}
	o.opened[id] = true
	return id, nil
}

func (o *rp2Opener) OpenI2C(unit uint8, sda, scl int, hz uint32) (drivers.I2C, error) {
	if _, err := o.claim("i2c", unit, 1); err != nil {
		return nil, err
	}
	hw := machine.I2C0
	if unit == 1 {
		hw = machine.I2C1
	}
	if err := hw.Configure(machine.I2CConfig{SDA: gpio(sda), SCL: gpio(scl), Frequency: hz}); err != nil {
		return nil, err
	}
	ow := newI2COwner(hw)
	o.mu.Lock()
	o.owners = append(o.owners, ow)
	o.mu.Unlock()
	return &ownedI2C{o: ow, timeout: i2cTimeout}, nil
}

func (o *rp2Opener) OpenSPI(unit uint8, sck, sdo, sdi int, hz uint32) (drivers.SPI, error) {
	if _, err := o.claim("spi", unit, 1); err != nil {
		return nil, err
	}
	hw := machine.SPI0
	if unit == 1 {
		hw = machine.SPI1
	}
	err := hw.Configure(machine.SPIConfig{
		Frequency: hz,
		SCK:       gpio(sck),
		SDO:       gpio(sdo),
		SDI:       gpio(sdi),
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}

func (o *rp2Opener) OpenUART(unit uint8, tx, rx int, baud uint32) (setups.Serial, error) {
	if _, err := o.claim("uart", unit, 1); err != nil {
		return nil, err
	}
	hw := uartx.UART0
	if unit == 1 {
		hw = uartx.UART1
	}
	if err := hw.Configure(uartx.UARTConfig{BaudRate: baud, TX: gpio(tx), RX: gpio(rx)}); err != nil {
		return nil, err
	}
	return &rp2Serial{u: hw}, nil
}

func (o *rp2Opener) OpenPWM(slice uint8, hz uint32) (setups.PWM, error) {
	if _, err := o.claim("pwm", slice, 7); err != nil {
		return nil, err
	}
	ctl := pwmBySlice(slice)
	if err := ctl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(hz)}); err != nil {
		return nil, err
	}
	return ctl, nil
}

// rp2Serial adapts uartx to setups.Serial.
type rp2Serial struct{ u *uartx.UART }

func (p *rp2Serial) Write(b []byte) (int, error) { return p.u.Write(b) }
func (p *rp2Serial) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, buf)
}
func (p *rp2Serial) SetBaudRate(br uint32) error { p.u.SetBaudRate(br); return nil }

// SetFormat accepts parity "none", "even" or "odd".
func (p *rp2Serial) SetFormat(databits, stopbits uint8, parity string) error {
	var par uartx.UARTParity
	switch parity {
	case "even":
		par = uartx.ParityEven
	case "odd":
		par = uartx.ParityOdd
	default:
		par = uartx.ParityNone
	}
	return p.u.SetFormat(databits, stopbits, par)
}
