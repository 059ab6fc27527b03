package setups

import (
	"context"
	"time"

	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/pins"
	"challenger-go/x/mathx"
	"challenger-go/x/ramp"

	"tinygo.org/x/drivers"
)

// Serial is a UART opened by Apply.
type Serial interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
	SetBaudRate(br uint32) error
}

// PWM is one configured slice; channel 0 is A, 1 is B.
type PWM interface {
	Top() uint32
	Set(channel uint8, value uint32)
}

// Opener brings up controllers once their pins are routed. Pin arguments are
// GPIO numbers; an absent optional pin is -1.
type Opener interface {
	OpenI2C(unit uint8, sda, scl int, hz uint32) (drivers.I2C, error)
	OpenSPI(unit uint8, sck, sdo, sdi int, hz uint32) (drivers.SPI, error)
	OpenUART(unit uint8, tx, rx int, baud uint32) (Serial, error)
	OpenPWM(slice uint8, hz uint32) (PWM, error)
}

// Rate limits applied to plan values.
const (
	minI2CHz    uint32 = 10_000
	maxI2CHz    uint32 = 1_000_000
	minSPIHz    uint32 = 100_000
	maxSPIHz    uint32 = 62_500_000
	minUARTBaud uint32 = 300
	maxUARTBaud uint32 = 921_600
)

// PWMOut drives one channel of a shared slice. Like a pin handle it is not
// safe for concurrent use.
type PWMOut struct {
	Pin   *pins.Pin
	ch    uint8
	ctl   PWM
	level uint32
}

func (o *PWMOut) Channel() uint8 { return o.ch }
func (o *PWMOut) Top() uint32    { return o.ctl.Top() }
func (o *PWMOut) Level() uint32  { return o.level }

// Set writes a compare value, clamped to the slice top.
func (o *PWMOut) Set(v uint32) {
	o.level = mathx.Clamp(v, 0, o.ctl.Top())
	o.ctl.Set(o.ch, o.level)
}

// Fade moves linearly to v over d in steps, blocking until it gets there or
// ctx ends.
func (o *PWMOut) Fade(ctx context.Context, v uint32, d time.Duration, steps uint16) error {
	tick := func(step time.Duration) bool {
		t := time.NewTimer(step)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
			return true
		}
	}
	ramp.Linear(o.level, v, o.ctl.Top(), d, steps, tick, o.Set)
	return ctx.Err()
}

// Resources is what Apply hands back: open controllers by id and the
// configured pin handles by alias.
type Resources struct {
	I2C  map[string]drivers.I2C
	SPI  map[string]drivers.SPI
	UART map[string]Serial
	PWM  map[string]*PWMOut // by pin alias
	Pins map[string]*pins.Pin
}

// Apply checks plan, reconfigures the pins it names on ps, then opens the
// planned controllers through op. A nil op only routes the pins. The first
// hardware failure aborts; pins already reconfigured stay that way.
func Apply(plan Plan, ps *pins.Pins, op Opener) (*Resources, error) {
	if ps == nil {
		return nil, errcode.New(errcode.InvalidParams, "setups.Apply", "nil pin set")
	}
	reqs, err := plan.resolve()
	if err != nil {
		return nil, err
	}
	res := &Resources{
		I2C:  map[string]drivers.I2C{},
		SPI:  map[string]drivers.SPI{},
		UART: map[string]Serial{},
		PWM:  map[string]*PWMOut{},
		Pins: make(map[string]*pins.Pin, len(reqs)),
	}
	gpio := map[string]int{}
	for _, r := range reqs {
		var p *pins.Pin
		switch r.mode {
		case pins.ModeAlternate:
			p, err = ps.Into(r.alias, r.fn.Kind)
		case pins.ModeOutput:
			p, err = ps.Output(r.alias, r.initial)
		case pins.ModeInput:
			p, err = ps.Input(r.alias, r.pull)
		}
		if err != nil {
			return nil, err
		}
		res.Pins[r.alias] = p
		gpio[r.alias] = r.index
	}
	if op == nil {
		return res, nil
	}

	num := func(alias string) int {
		if n, ok := gpio[alias]; ok {
			return n
		}
		return -1
	}
	for _, c := range plan.I2C {
		hz := rate(c.Hz, DefaultI2CHz, minI2CHz, maxI2CHz)
		bus, err := op.OpenI2C(controllerUnit(c.ID, board.ClassI2C), num(c.SDA), num(c.SCL), hz)
		if err != nil {
			return nil, wrap(c.ID, err)
		}
		res.I2C[c.ID] = bus
	}
	for _, c := range plan.SPI {
		hz := rate(c.Hz, DefaultSPIHz, minSPIHz, maxSPIHz)
		bus, err := op.OpenSPI(controllerUnit(c.ID, board.ClassSPI), num(c.SCK), num(c.SDO), num(c.SDI), hz)
		if err != nil {
			return nil, wrap(c.ID, err)
		}
		res.SPI[c.ID] = bus
	}
	for _, c := range plan.UART {
		baud := rate(c.Baud, DefaultUARTBaud, minUARTBaud, maxUARTBaud)
		port, err := op.OpenUART(controllerUnit(c.ID, board.ClassUART), num(c.TX), num(c.RX), baud)
		if err != nil {
			return nil, wrap(c.ID, err)
		}
		res.UART[c.ID] = port
	}

	slices := map[uint8]PWM{}
	for _, c := range plan.PWM {
		p := res.Pins[c.Pin]
		f := p.Function()
		ctl, ok := slices[f.Unit]
		if !ok {
			ctl, err = op.OpenPWM(f.Unit, c.Hz)
			if err != nil {
				return nil, wrap(f.Controller(), err)
			}
			slices[f.Unit] = ctl
		}
		var ch uint8
		if f.Kind == board.PWMB {
			ch = 1
		}
		res.PWM[c.Pin] = &PWMOut{Pin: p, ch: ch, ctl: ctl}
	}
	return res, nil
}

// MustApply is Apply for init code: any error panics.
func MustApply(plan Plan, ps *pins.Pins, op Opener) *Resources {
	res, err := Apply(plan, ps, op)
	if err != nil {
		panic(err)
	}
	return res
}

func rate(v, def, lo, hi uint32) uint32 {
	if v == 0 {
		return def
	}
	return mathx.Clamp(v, lo, hi)
}

func wrap(id string, err error) error {
	return &errcode.E{C: errcode.Of(err), Op: "setups.Apply", Msg: "open " + id, Err: err}
}
