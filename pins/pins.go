// Package pins hands out the board's GPIOs. Split turns a Bank token into a
// Pins set holding one handle per GPIO; each handle can then be moved into
// any function the board declares for it.
package pins

import (
	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/x/mathx"
)

// Pins holds one handle per GPIO, named after the silkscreen.
type Pins struct {
	SDA      *Pin // GPIO0
	SCL      *Pin // GPIO1
	D5       *Pin // GPIO2
	D6       *Pin // GPIO3
	ESPTx    *Pin // GPIO4, UART1 TX to the ESP8285
	ESPRx    *Pin // GPIO5, UART1 RX from the ESP8285
	D9       *Pin // GPIO6
	D10      *Pin // GPIO7
	D11      *Pin // GPIO8
	D12      *Pin // GPIO9
	D13      *Pin // GPIO10
	Neopixel *Pin // GPIO11
	LED      *Pin // GPIO12
	ESPMode  *Pin // GPIO13
	D14      *Pin // GPIO14
	D15      *Pin // GPIO15
	TX       *Pin // GPIO16
	RX       *Pin // GPIO17
	D16      *Pin // GPIO18
	ESPReset *Pin // GPIO19, active low
	D17      *Pin // GPIO20
	A5       *Pin // GPIO21
	SCK      *Pin // GPIO22
	SDO      *Pin // GPIO23
	SDI      *Pin // GPIO24
	A4       *Pin // GPIO25
	A0       *Pin // GPIO26
	A1       *Pin // GPIO27
	A2       *Pin // GPIO28
	A3       *Pin // GPIO29

	st     *state
	fields [board.NumPins]**Pin
}

// Split consumes the bank and returns every GPIO as an unconfigured handle.
// A bank can be split once; later calls fail with errcode.BankTaken. If the
// reset pass fails the bank is left unspent.
func Split(b *Bank, m Mux, opts ...Option) (*Pins, error) {
	if b == nil || m == nil {
		return nil, errcode.New(errcode.InvalidParams, "pins.Split", "nil bank or mux")
	}
	var p *Pins
	err := b.consume(func() error {
		st := &state{mux: m}
		for _, o := range opts {
			o(st)
		}

		np := &Pins{st: st}
		np.fields = [board.NumPins]**Pin{
			&np.SDA, &np.SCL, &np.D5, &np.D6, &np.ESPTx, &np.ESPRx, &np.D9, &np.D10,
			&np.D11, &np.D12, &np.D13, &np.Neopixel, &np.LED, &np.ESPMode, &np.D14, &np.D15,
			&np.TX, &np.RX, &np.D16, &np.ESPReset, &np.D17, &np.A5, &np.SCK, &np.SDO,
			&np.SDI, &np.A4, &np.A0, &np.A1, &np.A2, &np.A3,
		}

		for n := 0; n < board.NumPins; n++ {
			def, _ := board.ByIndex(n)
			h := &Pin{st: st, def: def}
			st.live[n] = h
			*np.fields[n] = h
		}

		if !st.noReset {
			for n := 0; n < board.NumPins; n++ {
				if err := m.Configure(n, Config{}); err != nil {
					return &errcode.E{C: errcode.Of(err), Op: "pins.Split", Msg: "reset " + st.live[n].String(), Err: err}
				}
			}
			// Observers hear about the reset only once the whole bank is ours.
			for n := 0; n < board.NumPins; n++ {
				st.notify(st.observers, Change{Index: n, Alias: st.live[n].Alias()})
			}
		}
		p = np
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ByIndex returns the handle the set holds for GPIO n. It reports false for
// unknown pins and pins moved out with Take.
func (p *Pins) ByIndex(n int) (*Pin, bool) {
	if !mathx.Between(n, 0, board.NumPins-1) {
		return nil, false
	}
	h := *p.fields[n]
	return h, h != nil
}

// ByAlias is ByIndex keyed by silkscreen alias.
func (p *Pins) ByAlias(alias string) (*Pin, bool) {
	d, ok := board.ByAlias(alias)
	if !ok {
		return nil, false
	}
	return p.ByIndex(d.Index)
}

// All returns the handles in GPIO order; taken pins are nil.
func (p *Pins) All() []*Pin {
	out := make([]*Pin, board.NumPins)
	for i, f := range p.fields {
		out[i] = *f
	}
	return out
}

// Take moves the handle for alias out of the set. Taking it again fails with
// errcode.PinInUse.
func (p *Pins) Take(alias string) (*Pin, error) {
	f, err := p.field("pins.Take", alias)
	if err != nil {
		return nil, err
	}
	h := *f
	if h == nil {
		return nil, errcode.New(errcode.PinInUse, "pins.Take", alias)
	}
	*f = nil
	return h, nil
}

// Into reconfigures the handle held for alias and stores the result back.
func (p *Pins) Into(alias string, k board.Kind) (*Pin, error) {
	return p.replace("pins.Into", alias, func(h *Pin) (*Pin, error) { return h.Into(k) })
}

// Output makes alias a SIO output and stores the new handle back.
func (p *Pins) Output(alias string, initial bool) (*Pin, error) {
	return p.replace("pins.Output", alias, func(h *Pin) (*Pin, error) { return h.IntoOutput(initial) })
}

// Input makes alias a SIO input and stores the new handle back.
func (p *Pins) Input(alias string, pull Pull) (*Pin, error) {
	return p.replace("pins.Input", alias, func(h *Pin) (*Pin, error) { return h.IntoInput(pull) })
}

func (p *Pins) replace(op, alias string, fn func(*Pin) (*Pin, error)) (*Pin, error) {
	f, err := p.field(op, alias)
	if err != nil {
		return nil, err
	}
	if *f == nil {
		return nil, errcode.New(errcode.PinInUse, op, alias)
	}
	h, err := fn(*f)
	if err != nil {
		return nil, err
	}
	*f = h
	return h, nil
}

func (p *Pins) field(op, alias string) (**Pin, error) {
	d, ok := board.ByAlias(alias)
	if !ok {
		return nil, errcode.New(errcode.UnknownPin, op, alias)
	}
	return p.fields[d.Index], nil
}
