package board

import (
	"strconv"
	"strings"

	"periph.io/x/conn/v3/pin"
)

// Kind is a peripheral signal a GPIO can be multiplexed onto.
type Kind uint8

const (
	KindNone Kind = iota
	UARTTX
	UARTRX
	UARTCTS
	UARTRTS
	SPIRX
	SPITX
	SPISCK
	SPICSn
	I2CSDA
	I2CSCL
	PWMA
	PWMB
	PIO0
	PIO1

	numKinds
)

// Class groups kinds by the controller type that drives them.
type Class uint8

const (
	ClassNone Class = iota
	ClassUART
	ClassSPI
	ClassI2C
	ClassPWM
	ClassPIO
)

func (c Class) String() string {
	switch c {
	case ClassUART:
		return "uart"
	case ClassSPI:
		return "spi"
	case ClassI2C:
		return "i2c"
	case ClassPWM:
		return "pwm"
	case ClassPIO:
		return "pio"
	}
	return "none"
}

// IO_BANK0 GPIOx_CTRL.FUNCSEL values.
const (
	SelSPI  uint8 = 1
	SelUART uint8 = 2
	SelI2C  uint8 = 3
	SelPWM  uint8 = 4
	SelSIO  uint8 = 5
	SelPIO0 uint8 = 6
	SelPIO1 uint8 = 7
	SelNull uint8 = 0x1f
)

type kindInfo struct {
	name   string
	class  Class
	signal string // signal suffix in periph function names
	sel    uint8
}

var kinds = [numKinds]kindInfo{
	KindNone: {"none", ClassNone, "", SelNull},
	UARTTX:   {"uart_tx", ClassUART, "TX", SelUART},
	UARTRX:   {"uart_rx", ClassUART, "RX", SelUART},
	UARTCTS:  {"uart_cts", ClassUART, "CTS", SelUART},
	UARTRTS:  {"uart_rts", ClassUART, "RTS", SelUART},
	SPIRX:    {"spi_rx", ClassSPI, "MISO", SelSPI},
	SPITX:    {"spi_tx", ClassSPI, "MOSI", SelSPI},
	SPISCK:   {"spi_sck", ClassSPI, "CLK", SelSPI},
	SPICSn:   {"spi_csn", ClassSPI, "CS", SelSPI},
	I2CSDA:   {"i2c_sda", ClassI2C, "SDA", SelI2C},
	I2CSCL:   {"i2c_scl", ClassI2C, "SCL", SelI2C},
	PWMA:     {"pwm_a", ClassPWM, "A", SelPWM},
	PWMB:     {"pwm_b", ClassPWM, "B", SelPWM},
	PIO0:     {"pio0", ClassPIO, "", SelPIO0},
	PIO1:     {"pio1", ClassPIO, "", SelPIO1},
}

func (k Kind) valid() bool { return k < numKinds }

func (k Kind) String() string {
	if !k.valid() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kinds[k].name
}

func (k Kind) Class() Class {
	if !k.valid() {
		return ClassNone
	}
	return kinds[k].class
}

// Sel returns the FUNCSEL value that routes a pin to this kind.
func (k Kind) Sel() uint8 {
	if !k.valid() {
		return SelNull
	}
	return kinds[k].sel
}

// Kinds lists every multiplexable kind, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := UARTTX; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind accepts the String form of a kind ("uart_tx", "pio1", ...).
func ParseKind(s string) (Kind, bool) {
	for k := UARTTX; k < numKinds; k++ {
		if kinds[k].name == s {
			return k, true
		}
	}
	return KindNone, false
}

// Function is one alternate function a pin declares: the signal kind, the
// controller instance that owns it and the specialised alias naming the
// pin in that function.
type Function struct {
	Kind Kind
	// Unit is the controller instance: UART/SPI/I2C 0..1, PWM slice 0..7,
	// PIO block 0..1.
	Unit  uint8
	Alias string
}

// Func returns the periph function name, e.g. UART0_TX, SPI1_CS, PWM3_A, PIO0.
func (f Function) Func() pin.Func {
	if !f.Kind.valid() {
		return pin.FuncNone
	}
	info := kinds[f.Kind]
	u := strconv.Itoa(int(f.Unit))
	switch info.class {
	case ClassPIO:
		return pin.Func("PIO" + u)
	case ClassNone:
		return pin.FuncNone
	}
	return pin.Func(strings.ToUpper(info.class.String()) + u + "_" + info.signal)
}

// Controller returns the controller id the function belongs to ("uart1",
// "pwm3", "pio0").
func (f Function) Controller() string {
	return f.Kind.Class().String() + strconv.Itoa(int(f.Unit))
}

func (f Function) String() string { return f.Alias }

// SpecializedName derives the canonical alias for pin n in function f,
// e.g. Gp0Uart0Tx, Gp13Spi1Csn, Gp2I2C1Sda, Gp7Pwm3B, Gp4Pio1.
func SpecializedName(n int, f Function) string {
	u := strconv.Itoa(int(f.Unit))
	s := "Gp" + strconv.Itoa(n)
	switch f.Kind {
	case UARTTX:
		return s + "Uart" + u + "Tx"
	case UARTRX:
		return s + "Uart" + u + "Rx"
	case UARTCTS:
		return s + "Uart" + u + "Cts"
	case UARTRTS:
		return s + "Uart" + u + "Rts"
	case SPIRX:
		return s + "Spi" + u + "Rx"
	case SPITX:
		return s + "Spi" + u + "Tx"
	case SPISCK:
		return s + "Spi" + u + "Sck"
	case SPICSn:
		return s + "Spi" + u + "Csn"
	case I2CSDA:
		return s + "I2C" + u + "Sda"
	case I2CSCL:
		return s + "I2C" + u + "Scl"
	case PWMA:
		return s + "Pwm" + u + "A"
	case PWMB:
		return s + "Pwm" + u + "B"
	case PIO0:
		return s + "Pio0"
	case PIO1:
		return s + "Pio1"
	}
	return ""
}
