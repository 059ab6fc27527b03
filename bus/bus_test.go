package bus

import (
	"sort"
	"testing"
	"time"
)

func pinTopic(alias string) Topic { return T("board", "pin", alias) }

func TestPublishSubscribe(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	sub := c.Subscribe(pinTopic("led"))

	c.Publish(c.NewMessage(pinTopic("led"), "output", false))
	expectPayload(t, sub, "output")

	c.Publish(c.NewMessage(pinTopic("sda"), "alternate", false))
	expectNothing(t, sub)
}

func TestRetainedReplayAndClear(t *testing.T) {
	b := NewBus(8)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(pinTopic("led"), "v1", true))
	c.Publish(c.NewMessage(pinTopic("led"), "v2", true))
	expectPayload(t, c.Subscribe(pinTopic("led")), "v2")

	c.Publish(c.NewMessage(pinTopic("led"), nil, true))
	expectNothing(t, c.Subscribe(pinTopic("led")))
}

func TestSingleLevelWildcard(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	anyPin := c.Subscribe(T("board", "pin", Single))
	anyLed := c.Subscribe(T("board", Single, "led"))
	tooShort := c.Subscribe(T("board", Single))

	c.Publish(c.NewMessage(pinTopic("led"), "m1", false))
	expectPayload(t, anyPin, "m1")
	expectPayload(t, anyLed, "m1")
	expectNothing(t, tooShort)

	c.Publish(c.NewMessage(pinTopic("sda"), "m2", false))
	expectPayload(t, anyPin, "m2")
	expectNothing(t, anyLed)

	c.Publish(c.NewMessage(T("board", "pin"), "m3", false))
	expectNothing(t, anyPin)
	expectPayload(t, tooShort, "m3")
}

func TestMultiLevelWildcard(t *testing.T) {
	b := NewBus(16)
	c := b.NewConnection("test")

	everything := c.Subscribe(T(Multi))
	board := c.Subscribe(T("board", Multi))
	config := c.Subscribe(T("config", Multi))

	c.Publish(c.NewMessage(T("board"), "p1", false))
	expectPayload(t, everything, "p1")
	expectPayload(t, board, "p1")

	c.Publish(c.NewMessage(pinTopic("a0"), "p2", false))
	expectPayload(t, everything, "p2")
	expectPayload(t, board, "p2")
	expectNothing(t, config)
}

func TestWildcardRetainedReplay(t *testing.T) {
	b := NewBus(32)
	c := b.NewConnection("test")

	c.Publish(c.NewMessage(T("board"), "r0", true))
	c.Publish(c.NewMessage(pinTopic("led"), "r1", true))
	c.Publish(c.NewMessage(pinTopic("sda"), "r2", true))
	c.Publish(c.NewMessage(T("config", "heartbeat"), "r3", true))

	assertSet(t, drain(t, c.Subscribe(T("board", Multi)), 3), "r0", "r1", "r2")
	assertSet(t, drain(t, c.Subscribe(T(Single, "pin", Single)), 2), "r1", "r2")
	assertSet(t, drain(t, c.Subscribe(T(Single, Multi)), 4), "r0", "r1", "r2", "r3")
}

func TestTopicParseMatch(t *testing.T) {
	tp := Parse("board/pin/led")
	if tp.String() != "board/pin/led" || len(tp) != 3 {
		t.Fatalf("parse: %v", tp)
	}
	cases := []struct {
		pattern string
		want    bool
	}{
		{"board/pin/led", true},
		{"board/pin/+", true},
		{"board/#", true},
		{"#", true},
		{"board/pin/led/#", true},
		{"board/+", false},
		{"board/pin/sda", false},
		{"board/pin/led/x", false},
	}
	for _, c := range cases {
		if got := Parse(c.pattern).Match(tp); got != c.want {
			t.Errorf("%s match %s = %v", c.pattern, tp, got)
		}
	}
	if Parse("") != nil {
		t.Fatal("empty topic should parse to nil")
	}
	if got := T("board").Append("pin", "sda").String(); got != "board/pin/sda" {
		t.Fatalf("append = %q", got)
	}
}

func TestQueueDropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("test")
	s := c.Subscribe(T("x"))
	for _, p := range []string{"1", "2", "3"} {
		c.Publish(c.NewMessage(T("x"), p, false))
	}
	expectPayload(t, s, "2")
	expectPayload(t, s, "3")
}

func TestUnsubscribeAndClose(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("test")
	s1 := c.Subscribe(T("a", "b"))
	s2 := c.Subscribe(T("a", Multi))

	s1.Unsubscribe()
	if _, ok := <-s1.Channel(); ok {
		t.Fatal("channel still open after Unsubscribe")
	}
	s1.Unsubscribe() // no-op

	c.Publish(c.NewMessage(T("a", "b"), "m", false))
	expectPayload(t, s2, "m")

	c.Close()
	if _, ok := <-s2.Channel(); ok {
		t.Fatal("channel still open after Close")
	}
	c.Publish(c.NewMessage(T("a", "b"), "late", false))
	if len(b.subs.children) != 0 {
		t.Fatal("subscription trie not pruned")
	}
}

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func expectPayload(t *testing.T, sub *Subscription, want string) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		if s, ok := got.Payload.(string); !ok || s != want {
			t.Fatalf("payload %v, want %q", got.Payload, want)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func expectNothing(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected message on %s: %#v", got.Topic, got.Payload)
	case <-time.After(30 * time.Millisecond):
	}
}

func drain(t *testing.T, sub *Subscription, n int) []string {
	t.Helper()
	var out []string
	deadline := time.After(300 * time.Millisecond)
	for len(out) < n {
		select {
		case m := <-sub.Channel():
			out = append(out, m.Payload.(string))
		case <-deadline:
			t.Fatalf("got %d of %d messages: %v", len(out), n, out)
		}
	}
	expectNothing(t, sub)
	return out
}

func assertSet(t *testing.T, got []string, want ...string) {
	t.Helper()
	sort.Strings(got)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
