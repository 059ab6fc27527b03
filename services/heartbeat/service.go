// Package heartbeat blinks a status LED so a running board is visibly alive.
package heartbeat

import (
	"context"
	"sync/atomic"
	"time"

	"challenger-go/bus"
	"challenger-go/pins"
)

var TopicConfig = bus.T("config", "heartbeat")

// DefaultInterval is the time between LED toggles.
const DefaultInterval = 500 * time.Millisecond

// Config is accepted on TopicConfig. A map payload with a numeric
// "interval_ms" works too, which is what decoded JSON looks like.
type Config struct {
	IntervalMs int `json:"interval_ms"`
}

type Service struct {
	led      *pins.Pin
	interval time.Duration
	beats    atomic.Uint32
}

// New returns a service toggling led, which must be an output handle.
func New(led *pins.Pin) *Service {
	return &Service{led: led, interval: DefaultInterval}
}

// Beats counts toggles so far.
func (s *Service) Beats() uint32 { return s.beats.Load() }

func interval(payload any) (time.Duration, bool) {
	var ms float64
	switch v := payload.(type) {
	case Config:
		ms = float64(v.IntervalMs)
	case map[string]any:
		f, ok := v["interval_ms"].(float64)
		if !ok {
			return 0, false
		}
		ms = f
	default:
		return 0, false
	}
	if ms <= 0 {
		return 0, false
	}
	return time.Duration(ms * float64(time.Millisecond)), true
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case <-tick.C:
			if err := s.led.Toggle(); err != nil {
				println("Error: heartbeat:", err.Error())
				return
			}
			s.beats.Add(1)
		case msg := <-cfgSub.Channel():
			if d, ok := interval(msg.Payload); ok {
				s.interval = d
				tick.Reset(d)
				println("Info: heartbeat interval set to", d.String())
			}
		}
	}
}

// Start runs the service until ctx is cancelled or the LED handle goes stale.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
