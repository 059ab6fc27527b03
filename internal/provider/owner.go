// Package provider backs pins.Mux and setups.Opener: the machine package on
// rp2040, an in-memory simulator everywhere else.
package provider

import (
	"sync/atomic"
	"time"

	"challenger-go/errcode"

	"tinygo.org/x/drivers"
)

// i2cTimeout bounds one transaction, time spent queued included.
const i2cTimeout = 250 * time.Millisecond

// Request states. A caller that gives up moves a pending or running request
// to reqAbandoned; the worker then never touches its buffers again.
const (
	reqPending int32 = iota
	reqRunning
	reqDone
	reqAbandoned
)

type i2cReq struct {
	addr  uint16
	w, r  []byte
	state atomic.Int32
	done  chan error // buffered(1)
}

// i2cOwner serialises every transaction on one bus through a single
// goroutine so drivers in different tasks can share it.
type i2cOwner struct {
	hw   drivers.I2C
	reqs chan *i2cReq
	quit chan struct{}
}

func newI2COwner(hw drivers.I2C) *i2cOwner {
	o := &i2cOwner{
		hw:   hw,
		reqs: make(chan *i2cReq, 16),
		quit: make(chan struct{}),
	}
	go o.loop()
	return o
}

func (o *i2cOwner) loop() {
	for {
		select {
		case req := <-o.reqs:
			o.run(req)
		case <-o.quit:
			return
		}
	}
}

// run executes req unless its caller already gave up. Reads land in a
// scratch buffer and are copied out only if the caller is still waiting.
func (o *i2cOwner) run(req *i2cReq) {
	if !req.state.CompareAndSwap(reqPending, reqRunning) {
		return
	}
	buf := make([]byte, len(req.r))
	err := o.hw.Tx(req.addr, req.w, buf)
	if !req.state.CompareAndSwap(reqRunning, reqDone) {
		return
	}
	copy(req.r, buf)
	req.done <- err
}

func (o *i2cOwner) stop() { close(o.quit) }

// ownedI2C adapts an owner to drivers.I2C with a per-call deadline.
type ownedI2C struct {
	o       *i2cOwner
	timeout time.Duration // 0 => no deadline
}

var _ drivers.I2C = (*ownedI2C)(nil)

func (d *ownedI2C) Tx(addr uint16, w, r []byte) error {
	req := &i2cReq{addr: addr, w: w, r: r, done: make(chan error, 1)}

	if d.timeout <= 0 {
		d.o.reqs <- req
		return <-req.done
	}
	// The worker may still be reading w after we give up.
	req.w = append([]byte(nil), w...)

	t := time.NewTimer(d.timeout)
	defer t.Stop()
	select {
	case d.o.reqs <- req:
	case <-t.C:
		return errcode.Busy
	}
	select {
	case err := <-req.done:
		return err
	case <-t.C:
		if req.state.CompareAndSwap(reqPending, reqAbandoned) ||
			req.state.CompareAndSwap(reqRunning, reqAbandoned) {
			return errcode.Timeout
		}
		// Finished while the timer fired; r is already filled.
		return <-req.done
	}
}
