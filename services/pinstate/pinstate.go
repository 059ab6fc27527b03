// Package pinstate mirrors every pin reconfiguration onto the bus as a
// retained board/pin/<alias> message.
package pinstate

import (
	"challenger-go/board"
	"challenger-go/bus"
	"challenger-go/pins"
	"challenger-go/x/timex"
)

var topicPins = bus.T("board", "pin")

// Topic is where the state of the pin with alias is retained.
func Topic(alias string) bus.Topic { return topicPins.Append(alias) }

// All matches every pin topic.
func All() bus.Topic { return topicPins.Append(bus.Single) }

// State is the payload published for one pin.
type State struct {
	Index int    `json:"index"`
	Alias string `json:"alias"`
	Mode  string `json:"mode"`
	Pull  string `json:"pull,omitempty"`
	Func  string `json:"func,omitempty"` // e.g. "UART1_TX"
	Sel   uint8  `json:"sel"`
	TSms  int64  `json:"ts_ms"`
}

type Service struct {
	conn *bus.Connection
}

func New(conn *bus.Connection) *Service { return &Service{conn: conn} }

// Option hooks the service into pins.Split.
func (s *Service) Option() pins.Option { return pins.WithObserver(s.Observe) }

// Observe publishes c. It never blocks: the bus drops the oldest queued
// message on a full subscriber.
func (s *Service) Observe(c pins.Change) {
	st := State{
		Index: c.Index,
		Alias: c.Alias,
		Mode:  c.To.Mode.String(),
		Sel:   c.To.Sel(),
		TSms:  timex.NowMs(),
	}
	switch c.To.Mode {
	case pins.ModeAlternate:
		st.Func = string(c.To.Function.Func())
	case pins.ModeInput:
		st.Pull = c.To.Pull.String()
	}
	s.conn.Publish(s.conn.NewMessage(Topic(c.Alias), st, true))
}

// Snapshot reads the retained state of every pin from b.
func Snapshot(b *bus.Bus) map[string]State {
	conn := b.NewConnection("pinstate-snapshot")
	defer conn.Close()
	sub := conn.Subscribe(All())
	out := make(map[string]State, board.NumPins)
	for {
		select {
		case m := <-sub.Channel():
			if st, ok := m.Payload.(State); ok {
				out[st.Alias] = st
			}
		default:
			return out
		}
	}
}
