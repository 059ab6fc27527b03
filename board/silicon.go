package board

// RP2040 routes peripherals to GPIOs on a fixed pattern; SiliconFunctions
// reproduces it so the hand-written table can be checked against it.

var (
	uartSignals = [4]Kind{UARTTX, UARTRX, UARTCTS, UARTRTS}
	spiSignals  = [4]Kind{SPIRX, SPICSn, SPISCK, SPITX}
	i2cSignals  = [2]Kind{I2CSDA, I2CSCL}
	pwmSignals  = [2]Kind{PWMA, PWMB}
)

// SiliconFunctions returns every alternate function the chip can route to
// GPIO n, regardless of what the board wires there.
func SiliconFunctions(n int) []Function {
	if n < 0 || n >= NumPins {
		return nil
	}
	fs := []Function{
		{Kind: uartSignals[n%4], Unit: uint8((n + 4) / 8 % 2)},
		{Kind: spiSignals[n%4], Unit: uint8(n / 8 % 2)},
		{Kind: i2cSignals[n%2], Unit: uint8(n / 2 % 2)},
		{Kind: pwmSignals[n%2], Unit: uint8(n / 2 % 8)},
		{Kind: PIO0, Unit: 0},
		{Kind: PIO1, Unit: 1},
	}
	for i := range fs {
		fs[i].Alias = SpecializedName(n, fs[i])
	}
	return fs
}

// Gap is a function the silicon offers on a pin that the board table does
// not declare.
type Gap struct {
	Index    int
	Alias    string
	Function Function
}

// Gaps lists silicon functions the board table leaves undeclared. The
// on-board loads (neopixel, led, esp_reset) are skipped since they are wired
// to a single digital signal. GP13 (esp_mode) shows up here: the table gives
// it no alternate functions although the silicon has them. The table stays
// authoritative; this is only a report.
func Gaps() []Gap {
	var out []Gap
	for i := range catalog {
		d := &catalog[i]
		if d.Digital() && fixedPurpose(d.Index) {
			continue
		}
		for _, f := range SiliconFunctions(d.Index) {
			if _, ok := d.Supports(f.Kind); ok {
				continue
			}
			out = append(out, Gap{Index: d.Index, Alias: d.Alias, Function: f})
		}
	}
	return out
}

// Onboard loads hard-wired to a single digital signal.
func fixedPurpose(n int) bool {
	switch n {
	case 11, 12, 19:
		return true
	}
	return false
}
