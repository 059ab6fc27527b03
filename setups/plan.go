// Package setups turns a wiring plan (which controller goes on which
// silkscreen pins, at what rate) into configured pins and open controllers.
package setups

// Plan specifies wiring and operating parameters chosen for one build of the
// board. Pins are named by silkscreen alias; controllers by id ("i2c0",
// "uart1", "spi0"). Zero rates select the defaults below.
type Plan struct {
	I2C     []I2CPlan    `json:"i2c,omitempty"`
	SPI     []SPIPlan    `json:"spi,omitempty"`
	UART    []UARTPlan   `json:"uart,omitempty"`
	PWM     []PWMPlan    `json:"pwm,omitempty"`
	PIO     []PIOPlan    `json:"pio,omitempty"`
	Outputs []OutputPlan `json:"outputs,omitempty"`
	Inputs  []InputPlan  `json:"inputs,omitempty"`
}

type I2CPlan struct {
	ID  string `json:"id"`
	SDA string `json:"sda"`
	SCL string `json:"scl"`
	Hz  uint32 `json:"hz,omitempty"`
}

type SPIPlan struct {
	ID  string `json:"id"`
	SCK string `json:"sck"`
	SDO string `json:"sdo,omitempty"` // controller TX
	SDI string `json:"sdi,omitempty"` // controller RX
	CS  string `json:"cs,omitempty"`  // hardware chip select
	Hz  uint32 `json:"hz,omitempty"`
}

type UARTPlan struct {
	ID   string `json:"id"`
	TX   string `json:"tx"`
	RX   string `json:"rx"`
	CTS  string `json:"cts,omitempty"`
	RTS  string `json:"rts,omitempty"`
	Baud uint32 `json:"baud,omitempty"`
}

// PWMPlan routes one pin to its PWM slice channel. Pins sharing a slice must
// agree on Hz.
type PWMPlan struct {
	Pin string `json:"pin"`
	Hz  uint32 `json:"hz"`
}

type PIOPlan struct {
	Block uint8    `json:"block"`
	Pins  []string `json:"pins"`
}

type OutputPlan struct {
	Pin     string `json:"pin"`
	Initial bool   `json:"initial"`
}

type InputPlan struct {
	Pin  string `json:"pin"`
	Pull string `json:"pull,omitempty"` // "up", "down" or "" / "none"
}

const (
	DefaultI2CHz    uint32 = 100_000
	DefaultSPIHz    uint32 = 1_000_000
	DefaultUARTBaud uint32 = 115_200
	ModemBaud       uint32 = 115_200
)

// Default is the stock wiring: Qwiic/STEMMA I2C0 on sda/scl, the console
// UART0 on tx/rx, and the ESP8285 on UART1 with its reset released and boot
// mode set to run from flash.
func Default() Plan {
	return Plan{
		I2C: []I2CPlan{
			{ID: "i2c0", SDA: "sda", SCL: "scl", Hz: 400_000},
		},
		UART: []UARTPlan{
			{ID: "uart0", TX: "tx", RX: "rx", Baud: DefaultUARTBaud},
			{ID: "uart1", TX: "esp_tx", RX: "esp_rx", Baud: ModemBaud},
		},
		Outputs: []OutputPlan{
			{Pin: "esp_mode", Initial: true},
			{Pin: "esp_reset", Initial: true}, // active low
			{Pin: "led", Initial: false},
		},
	}
}
