// Package challenger is board support for the iLabs Challenger NB RP2040
// WiFi: the pin catalog, the IO bank split into alias-named handles, the
// crystal frequency and the second-stage bootloader.
//
// Firmware takes the pins once at startup:
//
//	ps, err := challenger.Take()
//	if err != nil {
//		panic(err)
//	}
//	tx := ps.ESPTx.MustInto(board.UARTTX) // ps.ESPTx is now stale
//	led, _ := ps.Output("led", false)    // ps.LED is replaced in place
package challenger

import (
	"challenger-go/board"
	"challenger-go/internal/provider"
	"challenger-go/pins"
	"challenger-go/setups"
)

// XOSCCrystalFreq is the frequency of the board's crystal oscillator in Hz.
const XOSCCrystalFreq = board.XOSCCrystalFreq

// Boot2 returns a copy of the W25Q080 second-stage bootloader placed at
// flash offset 0.
func Boot2() [board.Boot2Size]byte { return board.Boot2() }

// Take claims IO_BANK0 and splits it into the board's pin set. It succeeds
// once per program.
func Take(opts ...pins.Option) (*pins.Pins, error) {
	b, err := pins.TakeBank()
	if err != nil {
		return nil, err
	}
	return pins.Split(b, provider.NewMux(), opts...)
}

// Setup takes the pins and applies plan, opening the controllers it names.
func Setup(plan setups.Plan, opts ...pins.Option) (*pins.Pins, *setups.Resources, error) {
	ps, err := Take(opts...)
	if err != nil {
		return nil, nil, err
	}
	res, err := setups.Apply(plan, ps, provider.NewOpener())
	if err != nil {
		return ps, nil, err
	}
	return ps, res, nil
}
