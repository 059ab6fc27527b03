//go:build rp2040

// Command blinky is the smallest useful firmware: it applies the stock wiring,
// releases the ESP8285 from reset and blinks the status LED, echoing whatever
// the modem says to the console UART.
package main

import (
	"context"
	"time"

	challenger "challenger-go"
	"challenger-go/bus"
	"challenger-go/services/heartbeat"
	"challenger-go/services/pinstate"
	"challenger-go/setups"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[blinky] boot, xosc", challenger.XOSCCrystalFreq, "Hz")

	ctx := context.Background()
	b := bus.NewBus(8)
	ps, res, err := challenger.Setup(setups.Default(), pinstate.New(b.NewConnection("pinstate")).Option())
	if err != nil {
		// Wiring errors are fatal at init.
		panic(err)
	}

	hb := heartbeat.New(res.Pins["led"])
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	// Modem boots once its reset line has been high for a moment.
	time.Sleep(100 * time.Millisecond)
	modem, console := res.UART["uart1"], res.UART["uart0"]
	_, _ = modem.Write([]byte("AT+GMR\r\n"))

	buf := make([]byte, 64)
	var epoch uint32
	for {
		rctx, cancel := context.WithTimeout(ctx, time.Second)
		n, err := modem.RecvSomeContext(rctx, buf)
		cancel()
		if n > 0 {
			_, _ = console.Write(buf[:n])
		}
		if err != nil && err != context.DeadlineExceeded {
			println("[blinky] modem:", err.Error())
		}
		if e := hb.Beats() / 20; e != epoch {
			epoch = e
			println("[blinky] alive,", ps.ESPReset.String(), "held high")
		}
	}
}
