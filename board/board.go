// Package board describes the iLabs Challenger NB RP2040 WiFi: which GPIO
// carries which silkscreen label, the alternate functions each GPIO can be
// routed to, the crystal frequency and the second-stage bootloader image.
//
// Everything here is fixed at build time. Handing out pins at run time is the
// job of package pins.
package board

// Board describes what the PCB/SoC offers (controllers present, GPIO range).
// It must not include wiring choices or operating parameters; those live in
// setups.
type Board struct {
	Name             string
	GPIOMin, GPIOMax int

	// Controllers present (identities only).
	I2C  []string
	SPI  []string
	UART []string
	PWM  []string
	PIO  []string

	// Recommended default aliases, matching the silkscreen. The SPI labels
	// straddle controllers: sck and sdo are SPI0, sdi (GP24) is SPI1 RX.
	Defaults struct {
		I2C0SDA, I2C0SCL       string
		UART0TX, UART0RX       string
		UART1TX, UART1RX       string
		SPISCK, SPISDO, SPISDI string
		LED, Neopixel          string
		ModemReset, ModemMode  string
	}
}

// Challenger is the board this module supports.
var Challenger = func() Board {
	b := Board{
		Name:    "challenger_nb_rp2040_wifi",
		GPIOMin: 0,
		GPIOMax: NumPins - 1,
		I2C:     []string{"i2c0", "i2c1"},
		SPI:     []string{"spi0", "spi1"},
		UART:    []string{"uart0", "uart1"},
		PWM:     []string{"pwm0", "pwm1", "pwm2", "pwm3", "pwm4", "pwm5", "pwm6", "pwm7"},
		PIO:     []string{"pio0", "pio1"},
	}
	b.Defaults.I2C0SDA, b.Defaults.I2C0SCL = "sda", "scl"
	b.Defaults.UART0TX, b.Defaults.UART0RX = "tx", "rx"
	b.Defaults.UART1TX, b.Defaults.UART1RX = "esp_tx", "esp_rx"
	b.Defaults.SPISCK, b.Defaults.SPISDO, b.Defaults.SPISDI = "sck", "sdo", "sdi"
	b.Defaults.LED, b.Defaults.Neopixel = "led", "neopixel"
	b.Defaults.ModemReset, b.Defaults.ModemMode = "esp_reset", "esp_mode"
	return b
}()

// HasController reports whether id ("uart1", "pwm6", ...) exists on the board.
func (b *Board) HasController(id string) bool {
	for _, set := range [][]string{b.I2C, b.SPI, b.UART, b.PWM, b.PIO} {
		for _, s := range set {
			if s == id {
				return true
			}
		}
	}
	return false
}
