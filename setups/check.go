package setups

import (
	"strconv"
	"strings"

	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/pins"

	"go.uber.org/multierr"
)

// request is one pin configuration a plan asks for.
type request struct {
	what    string // plan location, e.g. "uart1.tx"
	alias   string
	mode    pins.Mode
	kind    board.Kind
	ctrl    string // controller the pin must be routed to; "" when implied
	pull    pins.Pull
	initial bool

	index int
	fn    board.Function
}

// Check validates plan against the board without touching hardware and
// returns every problem found, combined.
func (p Plan) Check() error {
	_, err := p.resolve()
	return err
}

func (p Plan) resolve() ([]request, error) {
	var (
		err  error
		reqs []request
	)
	bad := func(c errcode.Code, msg string) {
		err = multierr.Append(err, errcode.New(c, "setups.Check", msg))
	}
	ctrls := map[string]bool{}
	controller := func(id string, class board.Class) bool {
		if !validController(id, class) {
			bad(errcode.UnknownBus, strconv.Quote(id)+" is not a "+class.String()+" controller")
			return false
		}
		if ctrls[id] {
			bad(errcode.BusInUse, id+" planned twice")
			return false
		}
		ctrls[id] = true
		return true
	}
	alt := func(what, alias string, k board.Kind, ctrl string, required bool) {
		if alias == "" {
			if required {
				bad(errcode.InvalidPlan, what+": pin missing")
			}
			return
		}
		reqs = append(reqs, request{what: what, alias: alias, mode: pins.ModeAlternate, kind: k, ctrl: ctrl})
	}

	for _, c := range p.I2C {
		if controller(c.ID, board.ClassI2C) {
			alt(c.ID+".sda", c.SDA, board.I2CSDA, c.ID, true)
			alt(c.ID+".scl", c.SCL, board.I2CSCL, c.ID, true)
		}
	}
	for _, c := range p.SPI {
		if controller(c.ID, board.ClassSPI) {
			alt(c.ID+".sck", c.SCK, board.SPISCK, c.ID, true)
			alt(c.ID+".sdo", c.SDO, board.SPITX, c.ID, false)
			alt(c.ID+".sdi", c.SDI, board.SPIRX, c.ID, false)
			alt(c.ID+".cs", c.CS, board.SPICSn, c.ID, false)
			if c.SDO == "" && c.SDI == "" {
				bad(errcode.InvalidPlan, c.ID+": needs sdo or sdi")
			}
		}
	}
	for _, c := range p.UART {
		if controller(c.ID, board.ClassUART) {
			alt(c.ID+".tx", c.TX, board.UARTTX, c.ID, true)
			alt(c.ID+".rx", c.RX, board.UARTRX, c.ID, true)
			alt(c.ID+".cts", c.CTS, board.UARTCTS, c.ID, false)
			alt(c.ID+".rts", c.RTS, board.UARTRTS, c.ID, false)
		}
	}
	for i, c := range p.PWM {
		what := "pwm[" + strconv.Itoa(i) + "]"
		if c.Hz == 0 {
			bad(errcode.InvalidPlan, what+": hz must be > 0")
		}
		// Channel A or B follows from the pin; resolve picks whichever the
		// pin declares.
		alt(what, c.Pin, board.PWMA, "", true)
	}
	for _, c := range p.PIO {
		k := board.PIO0
		if c.Block == 1 {
			k = board.PIO1
		} else if c.Block != 0 {
			bad(errcode.UnknownBus, "pio"+strconv.Itoa(int(c.Block))+" does not exist")
			continue
		}
		for _, a := range c.Pins {
			alt(k.String()+"."+a, a, k, "", true)
		}
	}
	for _, c := range p.Outputs {
		reqs = append(reqs, request{what: "output." + c.Pin, alias: c.Pin, mode: pins.ModeOutput, initial: c.Initial})
	}
	for _, c := range p.Inputs {
		pull, ok := parsePull(c.Pull)
		if !ok {
			bad(errcode.InvalidPlan, "input."+c.Pin+": pull "+strconv.Quote(c.Pull))
		}
		reqs = append(reqs, request{what: "input." + c.Pin, alias: c.Pin, mode: pins.ModeInput, pull: pull})
	}

	used := map[int]string{}
	out := reqs[:0]
	for _, r := range reqs {
		d, ok := board.ByAlias(r.alias)
		if !ok {
			bad(errcode.UnknownPin, r.what+": no pin "+strconv.Quote(r.alias))
			continue
		}
		r.index = d.Index
		if prev, dup := used[d.Index]; dup {
			bad(errcode.PinInUse, r.what+": "+r.alias+" already used by "+prev)
			continue
		}
		used[d.Index] = r.what

		if r.mode == pins.ModeAlternate {
			if r.kind == board.PWMA {
				if _, ok := d.Supports(board.PWMA); !ok {
					r.kind = board.PWMB
				}
			}
			f, ok := d.Supports(r.kind)
			if !ok {
				bad(errcode.UnsupportedFunction, r.what+": "+r.alias+" has no "+r.kind.String())
				continue
			}
			if r.ctrl != "" && f.Controller() != r.ctrl {
				bad(errcode.InvalidPlan, r.what+": "+r.alias+" routes "+r.kind.String()+" to "+f.Controller()+", not "+r.ctrl)
				continue
			}
			r.fn = f
		}
		out = append(out, r)
	}

	err = multierr.Append(err, checkPWMSlices(p.PWM, out))
	return out, err
}

// checkPWMSlices rejects two pins on one slice asking for different rates.
func checkPWMSlices(plans []PWMPlan, reqs []request) error {
	hz := map[string]uint32{}
	rate := map[string]uint32{}
	for _, c := range plans {
		rate[c.Pin] = c.Hz
	}
	var err error
	for _, r := range reqs {
		if r.fn.Kind.Class() != board.ClassPWM {
			continue
		}
		slice := r.fn.Controller()
		want := rate[r.alias]
		if have, ok := hz[slice]; ok && have != want {
			err = multierr.Append(err, errcode.New(errcode.Conflict, "setups.Check",
				slice+": "+r.alias+" wants "+strconv.FormatUint(uint64(want), 10)+" Hz, slice runs at "+strconv.FormatUint(uint64(have), 10)))
			continue
		}
		hz[slice] = want
	}
	return err
}

func validController(id string, class board.Class) bool {
	if !strings.HasPrefix(id, class.String()) {
		return false
	}
	return board.Challenger.HasController(id)
}

// controllerUnit returns the instance number of an id validController
// accepted, e.g. 1 for "i2c1".
func controllerUnit(id string, class board.Class) uint8 {
	n, _ := strconv.Atoi(strings.TrimPrefix(id, class.String()))
	return uint8(n)
}

func parsePull(s string) (pins.Pull, bool) {
	switch s {
	case "", "none":
		return pins.PullNone, true
	case "up":
		return pins.PullUp, true
	case "down":
		return pins.PullDown, true
	}
	return pins.PullNone, false
}
