package timex

import (
	"testing"
	"time"
)

func TestPeriodFromHz(t *testing.T) {
	cases := map[uint32]uint64{
		0:           1_000_000_000,
		1:           1_000_000_000,
		1000:        1_000_000,
		3:           333_333_333,
		6:           166_666_667,
		125_000_000: 8,
	}
	for hz, want := range cases {
		if got := PeriodFromHz(hz); got != want {
			t.Errorf("PeriodFromHz(%d) = %d, want %d", hz, got, want)
		}
	}
}

func TestNowMs(t *testing.T) {
	before := time.Now().UnixMilli()
	n := NowMs()
	if n < before || n > time.Now().UnixMilli() {
		t.Fatalf("NowMs %d outside [%d, now]", n, before)
	}
}
