package pins

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"challenger-go/board"
	"challenger-go/errcode"
)

// fakeMux records every Configure and holds pad levels.
type fakeMux struct {
	mu     sync.Mutex
	cfg    [board.NumPins]Config
	calls  int
	level  [board.NumPins]bool
	failOn int // pin index whose Configure fails; -1 for none
}

func newFakeMux() *fakeMux { return &fakeMux{failOn: -1} }

func (m *fakeMux) Configure(n int, c Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n == m.failOn {
		return errcode.Unsupported
	}
	m.cfg[n] = c
	m.calls++
	if c.Mode == ModeOutput {
		m.level[n] = c.Initial
	}
	return nil
}

func (m *fakeMux) Set(n int, v bool) {
	m.mu.Lock()
	m.level[n] = v
	m.mu.Unlock()
}

func (m *fakeMux) Get(n int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level[n]
}

func split(t *testing.T, opts ...Option) (*Pins, *fakeMux) {
	t.Helper()
	m := newFakeMux()
	p, err := Split(NewBank(), m, opts...)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	return p, m
}

func TestSplitYieldsEveryPin(t *testing.T) {
	p, m := split(t)
	all := p.All()
	if len(all) != board.NumPins {
		t.Fatalf("got %d handles", len(all))
	}
	for i, h := range all {
		d, _ := board.ByIndex(i)
		if h == nil || h.Index() != i || h.Alias() != d.Alias {
			t.Fatalf("slot %d: %v", i, h)
		}
		if h.Mode() != ModeUnconfigured || !h.Live() {
			t.Fatalf("%v: mode %s live %v", h, h.Mode(), h.Live())
		}
		if m.cfg[i].Sel() != board.SelNull {
			t.Fatalf("%v not reset", h)
		}
	}
	if m.calls != board.NumPins {
		t.Fatalf("reset pass made %d calls", m.calls)
	}
}

func TestFieldsMatchSilkscreen(t *testing.T) {
	p, _ := split(t)
	cases := map[string]*Pin{
		"sda": p.SDA, "scl": p.SCL, "d5": p.D5, "esp_tx": p.ESPTx, "esp_rx": p.ESPRx,
		"neopixel": p.Neopixel, "led": p.LED, "esp_mode": p.ESPMode, "tx": p.TX,
		"rx": p.RX, "esp_reset": p.ESPReset, "a5": p.A5, "sck": p.SCK, "sdo": p.SDO,
		"sdi": p.SDI, "a4": p.A4, "a0": p.A0, "a3": p.A3, "d17": p.D17, "d16": p.D16,
	}
	for alias, h := range cases {
		if h.Alias() != alias {
			t.Fatalf("field for %q holds %v", alias, h)
		}
		got, ok := p.ByAlias(alias)
		if !ok || got != h {
			t.Fatalf("ByAlias(%q) = %v", alias, got)
		}
	}
	if _, ok := p.ByAlias("d7"); ok {
		t.Fatal("unknown alias resolved")
	}
	if _, ok := p.ByIndex(30); ok {
		t.Fatal("gpio30 resolved")
	}
}

func TestWithoutReset(t *testing.T) {
	_, m := split(t, WithoutReset())
	if m.calls != 0 {
		t.Fatalf("WithoutReset still configured %d pins", m.calls)
	}
}

func TestIntoDeclaredFunction(t *testing.T) {
	p, m := split(t)
	old := p.SDA
	h, err := old.Into(board.I2CSDA)
	if err != nil {
		t.Fatal(err)
	}
	f := h.Function()
	if h.Mode() != ModeAlternate || f.Kind != board.I2CSDA || f.Unit != 0 || f.Alias != "Gp0I2C0Sda" {
		t.Fatalf("got %s %+v", h.Mode(), f)
	}
	if h.Index() != 0 || h.Alias() != "sda" {
		t.Fatalf("identity changed: %v", h)
	}
	if m.cfg[0].Sel() != board.SelI2C {
		t.Fatalf("FUNCSEL = %d", m.cfg[0].Sel())
	}
	if old.Live() || !h.Live() {
		t.Fatal("old handle should be consumed")
	}
}

func TestEveryDeclaredFunctionAccepted(t *testing.T) {
	for _, d := range board.Pins() {
		for _, f := range d.Functions {
			p, _ := split(t)
			h, _ := p.ByIndex(d.Index)
			got, err := h.Into(f.Kind)
			if err != nil {
				t.Fatalf("gpio%d %s: %v", d.Index, f.Kind, err)
			}
			if got.Function() != f {
				t.Fatalf("gpio%d reports %+v, want %+v", d.Index, got.Function(), f)
			}
		}
	}
}

func TestIntoUndeclaredFunctionRejected(t *testing.T) {
	p, m := split(t)
	before := m.calls

	cases := []struct {
		h *Pin
		k board.Kind
	}{
		{p.LED, board.UARTTX},
		{p.Neopixel, board.PIO0},
		{p.ESPMode, board.SPICSn},
		{p.ESPReset, board.PWMB},
		{p.ESPTx, board.SPIRX},
		{p.ESPRx, board.I2CSCL},
		{p.SDA, board.I2CSCL},
		{p.SDA, board.KindNone},
	}
	for _, tc := range cases {
		_, err := tc.h.Into(tc.k)
		if !errors.Is(err, errcode.UnsupportedFunction) {
			t.Fatalf("%v into %s: err = %v", tc.h, tc.k, err)
		}
		if !tc.h.Live() {
			t.Fatalf("%v consumed by a rejected request", tc.h)
		}
	}
	if m.calls != before {
		t.Fatal("rejected requests touched the mux")
	}
}

func TestMustIntoPanicsOnUndeclared(t *testing.T) {
	p, _ := split(t)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, errcode.UnsupportedFunction) {
			t.Fatalf("panic value %v", r)
		}
		if !strings.Contains(err.Error(), "gpio12(led)") {
			t.Fatalf("panic lost the pin: %v", err)
		}
	}()
	p.LED.MustInto(board.UARTTX)
}

func TestStaleHandleRejected(t *testing.T) {
	p, _ := split(t)
	old := p.LED
	if _, err := old.IntoOutput(false); err != nil {
		t.Fatal(err)
	}
	if _, err := old.IntoInput(PullUp); !errors.Is(err, errcode.StaleHandle) {
		t.Fatalf("reuse after move: %v", err)
	}
	if err := old.Set(true); !errors.Is(err, errcode.StaleHandle) {
		t.Fatalf("Set on stale handle: %v", err)
	}
}

func TestBankIsSingleUse(t *testing.T) {
	b := NewBank()
	if _, err := Split(b, newFakeMux()); err != nil {
		t.Fatal(err)
	}
	_, errSplit := Split(b, newFakeMux())
	if !errors.Is(errSplit, errcode.BankTaken) || !b.Spent() {
		t.Fatalf("second split: %v", errSplit)
	}

	// The process-wide token can be taken at most once.
	_, _ = TakeBank()
	_, errTake := TakeBank()
	if !errors.Is(errTake, errcode.BankTaken) {
		t.Fatalf("second take: %v", errTake)
	}
	if errSplit.Error() != errTake.Error() {
		t.Fatalf("double acquisition errors differ: %q vs %q", errSplit, errTake)
	}
}

func TestSplitFailedResetLeavesBankUnspent(t *testing.T) {
	b := NewBank()
	m := newFakeMux()
	m.failOn = 4
	var seen int
	count := WithObserver(func(Change) { seen++ })

	if _, err := Split(b, m, count); !errors.Is(err, errcode.Unsupported) {
		t.Fatalf("want unsupported, got %v", err)
	}
	if b.Spent() {
		t.Fatal("failed split spent the bank")
	}
	if seen != 0 {
		t.Fatalf("observer saw %d changes from a failed split", seen)
	}

	m.failOn = -1
	p, err := Split(b, m, count)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if p.ESPTx == nil || !b.Spent() || seen != board.NumPins {
		t.Fatalf("retry: esp_tx %v spent %v seen %d", p.ESPTx, b.Spent(), seen)
	}
	if _, err := Split(b, m); !errors.Is(err, errcode.BankTaken) {
		t.Fatalf("third split: %v", err)
	}
}

func TestSplitRejectsNil(t *testing.T) {
	if _, err := Split(nil, newFakeMux()); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("nil bank: %v", err)
	}
	if _, err := Split(NewBank(), nil); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("nil mux: %v", err)
	}
}

func TestOutputSetToggleGet(t *testing.T) {
	p, m := split(t)
	led, err := p.Output("led", true)
	if err != nil {
		t.Fatal(err)
	}
	if p.LED != led || !m.level[12] || m.cfg[12].Sel() != board.SelSIO {
		t.Fatal("Output did not configure led high")
	}
	if err := led.Low(); err != nil || m.level[12] {
		t.Fatalf("Low: %v", err)
	}
	if err := led.Toggle(); err != nil || !m.level[12] {
		t.Fatalf("Toggle: %v", err)
	}
	if v, err := led.Get(); err != nil || !v {
		t.Fatalf("Get = %v, %v", v, err)
	}

	in, err := p.Input("d5", PullDown)
	if err != nil {
		t.Fatal(err)
	}
	if in.Pull() != PullDown || m.cfg[2].Pull != PullDown {
		t.Fatal("pull not applied")
	}
	if err := in.Set(true); !errors.Is(err, errcode.WrongMode) {
		t.Fatalf("Set on input: %v", err)
	}

	alt, _ := p.Into("sck", board.SPISCK)
	if _, err := alt.Get(); !errors.Is(err, errcode.WrongMode) {
		t.Fatalf("Get on alternate: %v", err)
	}
	if un, err := alt.IntoUnconfigured(); err != nil || un.Mode() != ModeUnconfigured || m.cfg[22].Sel() != board.SelNull {
		t.Fatalf("IntoUnconfigured: %v", err)
	}
}

func TestTakeMovesHandleOut(t *testing.T) {
	p, _ := split(t)
	h, err := p.Take("esp_reset")
	if err != nil || h.Index() != 19 {
		t.Fatalf("Take: %v %v", h, err)
	}
	if p.ESPReset != nil {
		t.Fatal("field still set after Take")
	}
	if _, err := p.Take("esp_reset"); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("second Take: %v", err)
	}
	if _, err := p.Output("esp_reset", true); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("Output on taken pin: %v", err)
	}
	if _, ok := p.ByAlias("esp_reset"); ok {
		t.Fatal("taken pin still listed")
	}
	if _, err := p.Take("nope"); !errors.Is(err, errcode.UnknownPin) {
		t.Fatalf("unknown alias: %v", err)
	}
	if _, err := h.IntoOutput(true); err != nil {
		t.Fatalf("taken handle should stay usable: %v", err)
	}
}

func TestObserverSeesChanges(t *testing.T) {
	var got []Change
	p, _ := split(t, WithObserver(func(c Change) { got = append(got, c) }))
	if len(got) != board.NumPins {
		t.Fatalf("reset pass reported %d changes", len(got))
	}
	got = got[:0]

	if _, err := p.Into("tx", board.UARTTX); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Into("led", board.UARTTX); err == nil {
		t.Fatal("expected rejection")
	}
	if len(got) != 1 {
		t.Fatalf("got %d changes, want 1", len(got))
	}
	c := got[0]
	if c.Index != 16 || c.Alias != "tx" || c.From.Mode != ModeUnconfigured || c.To.Function.Alias != "Gp16Uart0Tx" {
		t.Fatalf("change = %+v", c)
	}
}

func TestMuxFailureKeepsHandle(t *testing.T) {
	m := newFakeMux()
	p, err := Split(NewBank(), m, WithoutReset())
	if err != nil {
		t.Fatal(err)
	}
	m.failOn = 5
	_, err = p.ESPRx.Into(board.UARTRX)
	if errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("err = %v", err)
	}
	if !p.ESPRx.Live() {
		t.Fatal("handle lost after mux failure")
	}
}

func TestHandlesAcrossGoroutines(t *testing.T) {
	p, m := split(t)
	var wg sync.WaitGroup
	for _, alias := range []string{"d9", "d10", "d11", "d12", "d13", "d14", "d15", "d16"} {
		h, err := p.Take(alias)
		if err != nil {
			t.Fatal(err)
		}
		wg.Add(1)
		go func(h *Pin) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				var err error
				if h, err = h.IntoOutput(i%2 == 0); err != nil {
					t.Error(err)
					return
				}
				if h, err = h.Into(board.PIO0); err != nil {
					t.Error(err)
					return
				}
			}
		}(h)
	}
	wg.Wait()
	for _, n := range []int{6, 7, 8, 9, 10, 14, 15, 18} {
		if m.cfg[n].Sel() != board.SelPIO0 {
			t.Fatalf("gpio%d FUNCSEL = %d", n, m.cfg[n].Sel())
		}
	}
}
