//go:build !rp2040

package provider

import (
	"context"
	"strconv"
	"sync"

	"challenger-go/board"
	"challenger-go/errcode"
	"challenger-go/pins"
	"challenger-go/setups"

	"tinygo.org/x/drivers"
)

// PadState is what the simulator holds for one GPIO.
type PadState struct {
	Sel    uint8 // FUNCSEL
	Pull   pins.Pull
	Output bool // SIO output enable
	Level  bool // driven level when Output, sampled level otherwise
	Writes int  // Configure calls seen
}

// SimMux is an IO_BANK0 stand-in that records register-level effects.
type SimMux struct {
	mu   sync.Mutex
	pads [board.NumPins]PadState
	ext  [board.NumPins]*bool // externally driven input level
}

var _ pins.Mux = (*SimMux)(nil)

// NewMux returns the host multiplexer, with every pad at reset.
func NewMux() pins.Mux { return NewSimMux() }

func NewSimMux() *SimMux {
	m := &SimMux{}
	for i := range m.pads {
		m.pads[i].Sel = board.SelNull
	}
	return m
}

func inRange(n int) error {
	if n < 0 || n >= board.NumPins {
		return errcode.New(errcode.UnknownPin, "provider", "gpio"+strconv.Itoa(n))
	}
	return nil
}

func (m *SimMux) Configure(n int, cfg pins.Config) error {
	if err := inRange(n); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &m.pads[n]
	p.Sel = cfg.Sel()
	p.Pull = cfg.Pull
	p.Output = cfg.Mode == pins.ModeOutput
	if p.Output {
		p.Level = cfg.Initial
	}
	p.Writes++
	return nil
}

func (m *SimMux) Set(n int, level bool) {
	if inRange(n) != nil {
		return
	}
	m.mu.Lock()
	if m.pads[n].Output {
		m.pads[n].Level = level
	}
	m.mu.Unlock()
}

func (m *SimMux) Get(n int) bool {
	if inRange(n) != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pads[n]
	if p.Output {
		return p.Level
	}
	if v := m.ext[n]; v != nil {
		return *v
	}
	return p.Pull == pins.PullUp
}

// Drive sets the level an external circuit puts on pin n.
func (m *SimMux) Drive(n int, level bool) {
	if inRange(n) != nil {
		return
	}
	m.mu.Lock()
	m.ext[n] = &level
	m.mu.Unlock()
}

// Release stops driving pin n externally; pulls decide its level again.
func (m *SimMux) Release(n int) {
	if inRange(n) != nil {
		return
	}
	m.mu.Lock()
	m.ext[n] = nil
	m.mu.Unlock()
}

// Pad returns the recorded state of GPIO n; unknown pins read as reset pads.
func (m *SimMux) Pad(n int) PadState {
	if inRange(n) != nil {
		return PadState{Sel: board.SelNull}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pads[n]
}

// -----------------------------------------------------------------------------
// Buses
// -----------------------------------------------------------------------------

// I2CTx is one recorded transaction.
type I2CTx struct {
	Addr uint16
	W    []byte
	R    int // bytes read
}

// SimI2C answers reads from per-address register files and records traffic.
type SimI2C struct {
	Unit     uint8
	SDA, SCL int
	Hz       uint32

	mu   sync.Mutex
	devs map[uint16][]byte
	log  []I2CTx
}

var _ drivers.I2C = (*SimI2C)(nil)

// Attach puts a device at addr whose reads return regs from the register
// pointer set by the last write's first byte.
func (b *SimI2C) Attach(addr uint16, regs []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.devs == nil {
		b.devs = map[uint16][]byte{}
	}
	b.devs[addr] = regs
}

func (b *SimI2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	regs, ok := b.devs[addr]
	if !ok {
		return errcode.New(errcode.Error, "i2c"+strconv.Itoa(int(b.Unit)), "no ack from 0x"+strconv.FormatUint(uint64(addr), 16))
	}
	b.log = append(b.log, I2CTx{Addr: addr, W: append([]byte(nil), w...), R: len(r)})
	ptr := 0
	if len(w) > 0 {
		ptr = int(w[0])
	}
	for i := range r {
		if ptr+i < len(regs) {
			r[i] = regs[ptr+i]
		} else {
			r[i] = 0xff
		}
	}
	return nil
}

func (b *SimI2C) Log() []I2CTx {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]I2CTx(nil), b.log...)
}

// SimSPI loops SDO back to SDI when both are wired; a missing SDI reads 0xff.
type SimSPI struct {
	Unit          uint8
	SCK, SDO, SDI int
	Hz            uint32

	mu  sync.Mutex
	out []byte
}

var _ drivers.SPI = (*SimSPI)(nil)

func (s *SimSPI) Tx(w, r []byte) error {
	if w != nil && r != nil && len(w) != len(r) {
		return errcode.New(errcode.InvalidParams, "spi"+strconv.Itoa(int(s.Unit)), "length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SDO >= 0 {
		s.out = append(s.out, w...)
	}
	for i := range r {
		switch {
		case s.SDI < 0:
			r[i] = 0xff
		case i < len(w) && s.SDO >= 0:
			r[i] = w[i]
		default:
			r[i] = 0
		}
	}
	return nil
}

func (s *SimSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := s.Tx([]byte{b}, r[:])
	return r[0], err
}

// Sent returns every byte clocked out on SDO.
func (s *SimSPI) Sent() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.out...)
}

// SimUART records what is written and serves what Feed injects.
type SimUART struct {
	Unit   uint8
	TX, RX int

	mu    sync.Mutex
	baud  uint32
	tx    []byte
	rx    []byte
	ready chan struct{}
}

var _ setups.Serial = (*SimUART)(nil)

func newSimUART(unit uint8, tx, rx int, baud uint32) *SimUART {
	return &SimUART{Unit: unit, TX: tx, RX: rx, baud: baud, ready: make(chan struct{}, 1)}
}

func (u *SimUART) Write(p []byte) (int, error) {
	u.mu.Lock()
	u.tx = append(u.tx, p...)
	u.mu.Unlock()
	return len(p), nil
}

func (u *SimUART) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	for {
		u.mu.Lock()
		if len(u.rx) > 0 {
			n := copy(buf, u.rx)
			u.rx = u.rx[n:]
			u.mu.Unlock()
			return n, nil
		}
		u.mu.Unlock()
		select {
		case <-u.ready:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func (u *SimUART) SetBaudRate(br uint32) error {
	if br == 0 {
		return errcode.InvalidParams
	}
	u.mu.Lock()
	u.baud = br
	u.mu.Unlock()
	return nil
}

func (u *SimUART) Baud() uint32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.baud
}

// Feed makes b available to RecvSomeContext.
func (u *SimUART) Feed(b []byte) {
	u.mu.Lock()
	u.rx = append(u.rx, b...)
	u.mu.Unlock()
	select {
	case u.ready <- struct{}{}:
	default:
	}
}

// Written returns everything sent so far.
func (u *SimUART) Written() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]byte(nil), u.tx...)
}

// sysClockHz is the RP2040 system clock TinyGo configures from the 12 MHz
// crystal.
const sysClockHz = 125_000_000

// SimPWM models one slice with the period the hardware would pick.
type SimPWM struct {
	Slice uint8
	Hz    uint32

	mu  sync.Mutex
	top uint32
	cc  [2]uint32
}

var _ setups.PWM = (*SimPWM)(nil)

func newSimPWM(slice uint8, hz uint32) *SimPWM {
	if hz == 0 {
		hz = 1
	}
	top := uint32(sysClockHz / uint64(hz))
	// Past 16 bits the hardware divides the clock instead.
	for top > 0xffff {
		top >>= 1
	}
	if top > 0 {
		top--
	}
	return &SimPWM{Slice: slice, Hz: hz, top: top}
}

func (p *SimPWM) Top() uint32 { return p.top }

func (p *SimPWM) Set(channel uint8, value uint32) {
	p.mu.Lock()
	p.cc[channel&1] = value
	p.mu.Unlock()
}

// Level returns the compare value of channel 0 (A) or 1 (B).
func (p *SimPWM) Level(channel uint8) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cc[channel&1]
}

// -----------------------------------------------------------------------------
// Opener
// -----------------------------------------------------------------------------

// Sim opens simulated controllers and keeps them for inspection.
type Sim struct {
	mu   sync.Mutex
	I2C  [2]*SimI2C
	SPI  [2]*SimSPI
	UART [2]*SimUART
	PWM  [8]*SimPWM

	owners []*i2cOwner
}

var _ setups.Opener = (*Sim)(nil)

// NewOpener returns the host opener.
func NewOpener() setups.Opener { return NewSim() }

func NewSim() *Sim { return &Sim{} }

func busInUse(id string) error {
	return errcode.New(errcode.BusInUse, "provider", id)
}

func unknownBus(id string) error {
	return errcode.New(errcode.UnknownBus, "provider", id)
}

func (s *Sim) OpenI2C(unit uint8, sda, scl int, hz uint32) (drivers.I2C, error) {
	id := "i2c" + strconv.Itoa(int(unit))
	if unit > 1 {
		return nil, unknownBus(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.I2C[unit] != nil {
		return nil, busInUse(id)
	}
	b := &SimI2C{Unit: unit, SDA: sda, SCL: scl, Hz: hz}
	s.I2C[unit] = b
	o := newI2COwner(b)
	s.owners = append(s.owners, o)
	return &ownedI2C{o: o, timeout: i2cTimeout}, nil
}

func (s *Sim) OpenSPI(unit uint8, sck, sdo, sdi int, hz uint32) (drivers.SPI, error) {
	id := "spi" + strconv.Itoa(int(unit))
	if unit > 1 {
		return nil, unknownBus(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SPI[unit] != nil {
		return nil, busInUse(id)
	}
	b := &SimSPI{Unit: unit, SCK: sck, SDO: sdo, SDI: sdi, Hz: hz}
	s.SPI[unit] = b
	return b, nil
}

func (s *Sim) OpenUART(unit uint8, tx, rx int, baud uint32) (setups.Serial, error) {
	id := "uart" + strconv.Itoa(int(unit))
	if unit > 1 {
		return nil, unknownBus(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UART[unit] != nil {
		return nil, busInUse(id)
	}
	u := newSimUART(unit, tx, rx, baud)
	s.UART[unit] = u
	return u, nil
}

func (s *Sim) OpenPWM(slice uint8, hz uint32) (setups.PWM, error) {
	id := "pwm" + strconv.Itoa(int(slice))
	if slice > 7 {
		return nil, unknownBus(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PWM[slice] != nil {
		return nil, busInUse(id)
	}
	p := newSimPWM(slice, hz)
	s.PWM[slice] = p
	return p, nil
}

// Close stops the I2C workers.
func (s *Sim) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.owners {
		o.stop()
	}
	s.owners = nil
}
