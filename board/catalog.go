package board

// NumPins is the number of user GPIOs on IO_BANK0.
const NumPins = 30

// PinDef describes one physical GPIO: its silicon number, the board alias
// printed on the silkscreen, and the alternate functions routed to it.
type PinDef struct {
	Index     int
	Alias     string
	Note      string
	Functions []Function
}

// Supports reports whether the pin declares kind k and returns that function.
func (d *PinDef) Supports(k Kind) (Function, bool) {
	for _, f := range d.Functions {
		if f.Kind == k {
			return f, true
		}
	}
	return Function{}, false
}

// Digital reports whether the pin has no alternate functions (SIO only).
func (d *PinDef) Digital() bool { return len(d.Functions) == 0 }

// Catalog is the fixed board table, ordered by Index.
type Catalog [NumPins]PinDef

// Pins returns the board table. The returned value is a copy; Functions
// slices are shared and must not be modified.
func Pins() Catalog { return catalog }

// ByIndex returns the definition of GPIO n.
func ByIndex(n int) (*PinDef, bool) {
	if n < 0 || n >= NumPins {
		return nil, false
	}
	return &catalog[n], true
}

// ByAlias returns the definition whose silkscreen alias is name.
func ByAlias(name string) (*PinDef, bool) {
	n, ok := aliasIndex[name]
	if !ok {
		return nil, false
	}
	return &catalog[n], true
}

// Aliases returns every silkscreen alias ordered by GPIO number.
func Aliases() []string {
	out := make([]string, NumPins)
	for i := range catalog {
		out[i] = catalog[i].Alias
	}
	return out
}

var aliasIndex = func() map[string]int {
	m := make(map[string]int, NumPins)
	for i := range catalog {
		m[catalog[i].Alias] = catalog[i].Index
	}
	return m
}()

var catalog = Catalog{
	{Index: 0, Alias: "sda", Functions: []Function{
		{UARTTX, 0, "Gp0Uart0Tx"},
		{SPIRX, 0, "Gp0Spi0Rx"},
		{I2CSDA, 0, "Gp0I2C0Sda"},
		{PWMA, 0, "Gp0Pwm0A"},
		{PIO0, 0, "Gp0Pio0"},
		{PIO1, 1, "Gp0Pio1"},
	}},
	{Index: 1, Alias: "scl", Functions: []Function{
		{UARTRX, 0, "Gp1Uart0Rx"},
		{SPICSn, 0, "Gp1Spi0Csn"},
		{I2CSCL, 0, "Gp1I2C0Scl"},
		{PWMB, 0, "Gp1Pwm0B"},
		{PIO0, 0, "Gp1Pio0"},
		{PIO1, 1, "Gp1Pio1"},
	}},
	{Index: 2, Alias: "d5", Functions: []Function{
		{UARTCTS, 0, "Gp2Uart0Cts"},
		{SPISCK, 0, "Gp2Spi0Sck"},
		{I2CSDA, 1, "Gp2I2C1Sda"},
		{PWMA, 1, "Gp2Pwm1A"},
		{PIO0, 0, "Gp2Pio0"},
		{PIO1, 1, "Gp2Pio1"},
	}},
	{Index: 3, Alias: "d6", Functions: []Function{
		{UARTRTS, 0, "Gp3Uart0Rts"},
		{SPITX, 0, "Gp3Spi0Tx"},
		{I2CSCL, 1, "Gp3I2C1Scl"},
		{PWMB, 1, "Gp3Pwm1B"},
		{PIO0, 0, "Gp3Pio0"},
		{PIO1, 1, "Gp3Pio1"},
	}},
	{Index: 4, Alias: "esp_tx", Note: "UART1 TX to ESP8285", Functions: []Function{
		{UARTTX, 1, "Gp4Uart1Tx"},
		{PIO0, 0, "Gp4Pio0"},
		{PIO1, 1, "Gp4Pio1"},
	}},
	{Index: 5, Alias: "esp_rx", Note: "UART1 RX from ESP8285", Functions: []Function{
		{UARTRX, 1, "Gp5Uart1Rx"},
		{PIO0, 0, "Gp5Pio0"},
		{PIO1, 1, "Gp5Pio1"},
	}},
	{Index: 6, Alias: "d9", Functions: []Function{
		{UARTCTS, 1, "Gp6Uart1Cts"},
		{SPISCK, 0, "Gp6Spi0Sck"},
		{I2CSDA, 1, "Gp6I2C1Sda"},
		{PWMA, 3, "Gp6Pwm3A"},
		{PIO0, 0, "Gp6Pio0"},
		{PIO1, 1, "Gp6Pio1"},
	}},
	{Index: 7, Alias: "d10", Functions: []Function{
		{UARTRTS, 1, "Gp7Uart1Rts"},
		{SPITX, 0, "Gp7Spi0Tx"},
		{I2CSCL, 1, "Gp7I2C1Scl"},
		{PWMB, 3, "Gp7Pwm3B"},
		{PIO0, 0, "Gp7Pio0"},
		{PIO1, 1, "Gp7Pio1"},
	}},
	{Index: 8, Alias: "d11", Functions: []Function{
		{UARTTX, 1, "Gp8Uart1Tx"},
		{SPIRX, 1, "Gp8Spi1Rx"},
		{I2CSDA, 0, "Gp8I2C0Sda"},
		{PWMA, 4, "Gp8Pwm4A"},
		{PIO0, 0, "Gp8Pio0"},
		{PIO1, 1, "Gp8Pio1"},
	}},
	{Index: 9, Alias: "d12", Functions: []Function{
		{UARTRX, 1, "Gp9Uart1Rx"},
		{SPICSn, 1, "Gp9Spi1Csn"},
		{I2CSCL, 0, "Gp9I2C0Scl"},
		{PWMB, 4, "Gp9Pwm4B"},
		{PIO0, 0, "Gp9Pio0"},
		{PIO1, 1, "Gp9Pio1"},
	}},
	{Index: 10, Alias: "d13", Functions: []Function{
		{UARTCTS, 1, "Gp10Uart1Cts"},
		{SPISCK, 1, "Gp10Spi1Sck"},
		{I2CSDA, 1, "Gp10I2C1Sda"},
		{PWMA, 5, "Gp10Pwm5A"},
		{PIO0, 0, "Gp10Pio0"},
		{PIO1, 1, "Gp10Pio1"},
	}},
	{Index: 11, Alias: "neopixel", Note: "single Neopixel RGB LED"},
	{Index: 12, Alias: "led", Note: "status LED"},
	{Index: 13, Alias: "esp_mode", Note: "ESP8285 boot mode select"},
	{Index: 14, Alias: "d14", Functions: []Function{
		{UARTCTS, 0, "Gp14Uart0Cts"},
		{SPISCK, 1, "Gp14Spi1Sck"},
		{I2CSDA, 1, "Gp14I2C1Sda"},
		{PWMA, 7, "Gp14Pwm7A"},
		{PIO0, 0, "Gp14Pio0"},
		{PIO1, 1, "Gp14Pio1"},
	}},
	{Index: 15, Alias: "d15", Functions: []Function{
		{UARTRTS, 0, "Gp15Uart0Rts"},
		{SPITX, 1, "Gp15Spi1Tx"},
		{I2CSCL, 1, "Gp15I2C1Scl"},
		{PWMB, 7, "Gp15Pwm7B"},
		{PIO0, 0, "Gp15Pio0"},
		{PIO1, 1, "Gp15Pio1"},
	}},
	{Index: 16, Alias: "tx", Functions: []Function{
		{UARTTX, 0, "Gp16Uart0Tx"},
		{SPIRX, 0, "Gp16Spi0Rx"},
		{I2CSDA, 0, "Gp16I2C0Sda"},
		{PWMA, 0, "Gp16Pwm0A"},
		{PIO0, 0, "Gp16Pio0"},
		{PIO1, 1, "Gp16Pio1"},
	}},
	{Index: 17, Alias: "rx", Functions: []Function{
		{UARTRX, 0, "Gp17Uart0Rx"},
		{SPICSn, 0, "Gp17Spi0Csn"},
		{I2CSCL, 0, "Gp17I2C0Scl"},
		{PWMB, 0, "Gp17Pwm0B"},
		{PIO0, 0, "Gp17Pio0"},
		{PIO1, 1, "Gp17Pio1"},
	}},
	{Index: 18, Alias: "d16", Functions: []Function{
		{UARTCTS, 0, "Gp18Uart0Cts"},
		{SPISCK, 0, "Gp18Spi0Sck"},
		{I2CSDA, 1, "Gp18I2C1Sda"},
		{PWMA, 1, "Gp18Pwm1A"},
		{PIO0, 0, "Gp18Pio0"},
		{PIO1, 1, "Gp18Pio1"},
	}},
	{Index: 19, Alias: "esp_reset", Note: "ESP8285 reset, active low"},
	{Index: 20, Alias: "d17", Functions: []Function{
		{UARTTX, 1, "Gp20Uart1Tx"},
		{SPIRX, 0, "Gp20Spi0Rx"},
		{I2CSDA, 0, "Gp20I2C0Sda"},
		{PWMA, 2, "Gp20Pwm2A"},
		{PIO0, 0, "Gp20Pio0"},
		{PIO1, 1, "Gp20Pio1"},
	}},
	{Index: 21, Alias: "a5", Note: "digital only, no ADC", Functions: []Function{
		{UARTRX, 1, "Gp21Uart1Rx"},
		{SPICSn, 0, "Gp21Spi0Csn"},
		{I2CSCL, 0, "Gp21I2C0Scl"},
		{PWMB, 2, "Gp21Pwm2B"},
		{PIO0, 0, "Gp21Pio0"},
		{PIO1, 1, "Gp21Pio1"},
	}},
	{Index: 22, Alias: "sck", Functions: []Function{
		{UARTCTS, 1, "Gp22Uart1Cts"},
		{SPISCK, 0, "Gp22Spi0Sck"},
		{I2CSDA, 1, "Gp22I2C1Sda"},
		{PWMA, 3, "Gp22Pwm3A"},
		{PIO0, 0, "Gp22Pio0"},
		{PIO1, 1, "Gp22Pio1"},
	}},
	{Index: 23, Alias: "sdo", Functions: []Function{
		{UARTRTS, 1, "Gp23Uart1Rts"},
		{SPITX, 0, "Gp23Spi0Tx"},
		{I2CSCL, 1, "Gp23I2C1Scl"},
		{PWMB, 3, "Gp23Pwm3B"},
		{PIO0, 0, "Gp23Pio0"},
		{PIO1, 1, "Gp23Pio1"},
	}},
	{Index: 24, Alias: "sdi", Functions: []Function{
		{UARTTX, 1, "Gp24Uart1Tx"},
		{SPIRX, 1, "Gp24Spi1Rx"},
		{I2CSDA, 0, "Gp24I2C0Sda"},
		{PWMA, 4, "Gp24Pwm4A"},
		{PIO0, 0, "Gp24Pio0"},
		{PIO1, 1, "Gp24Pio1"},
	}},
	{Index: 25, Alias: "a4", Note: "digital only, no ADC", Functions: []Function{
		{UARTRX, 1, "Gp25Uart1Rx"},
		{SPICSn, 1, "Gp25Spi1Csn"},
		{I2CSCL, 0, "Gp25I2C0Scl"},
		{PWMB, 4, "Gp25Pwm4B"},
		{PIO0, 0, "Gp25Pio0"},
		{PIO1, 1, "Gp25Pio1"},
	}},
	{Index: 26, Alias: "a0", Functions: []Function{
		{UARTCTS, 1, "Gp26Uart1Cts"},
		{SPISCK, 1, "Gp26Spi1Sck"},
		{I2CSDA, 1, "Gp26I2C1Sda"},
		{PWMA, 5, "Gp26Pwm5A"},
		{PIO0, 0, "Gp26Pio0"},
		{PIO1, 1, "Gp26Pio1"},
	}},
	{Index: 27, Alias: "a1", Functions: []Function{
		{UARTRTS, 1, "Gp27Uart1Rts"},
		{SPITX, 1, "Gp27Spi1Tx"},
		{I2CSCL, 1, "Gp27I2C1Scl"},
		{PWMB, 5, "Gp27Pwm5B"},
		{PIO0, 0, "Gp27Pio0"},
		{PIO1, 1, "Gp27Pio1"},
	}},
	{Index: 28, Alias: "a2", Functions: []Function{
		{UARTTX, 0, "Gp28Uart0Tx"},
		{SPIRX, 1, "Gp28Spi1Rx"},
		{I2CSDA, 0, "Gp28I2C0Sda"},
		{PWMA, 6, "Gp28Pwm6A"},
		{PIO0, 0, "Gp28Pio0"},
		{PIO1, 1, "Gp28Pio1"},
	}},
	{Index: 29, Alias: "a3", Functions: []Function{
		{UARTRX, 0, "Gp29Uart0Rx"},
		{SPICSn, 1, "Gp29Spi1Csn"},
		{I2CSCL, 0, "Gp29I2C0Scl"},
		{PWMB, 6, "Gp29Pwm6B"},
		{PIO0, 0, "Gp29Pio0"},
		{PIO1, 1, "Gp29Pio1"},
	}},
}
