package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":                   OK,
		"bank_taken":           BankTaken,
		"unknown_pin":          UnknownPin,
		"pin_in_use":           PinInUse,
		"unsupported_function": UnsupportedFunction,
		"stale_handle":         StaleHandle,
		"invalid_catalog":      InvalidCatalog,
		"invalid_plan":         InvalidPlan,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil should map to ok")
	}
	if Of(PinInUse) != PinInUse {
		t.Fatal("bare code not extracted")
	}
	e := New(StaleHandle, "pin.Into", "gpio3")
	if Of(e) != StaleHandle {
		t.Fatal("*E code not extracted")
	}
	wrapped := fmt.Errorf("setup: %w", e)
	if Of(wrapped) != StaleHandle {
		t.Fatal("wrapped *E code not extracted")
	}
	if Of(errors.New("boom")) != Error {
		t.Fatal("foreign error should map to generic code")
	}
}

func TestEIsCode(t *testing.T) {
	e := &E{C: UnsupportedFunction, Op: "pin.Into", Msg: "led: spi_rx"}
	if !errors.Is(e, UnsupportedFunction) {
		t.Fatal("errors.Is should match the code")
	}
	if errors.Is(e, PinInUse) {
		t.Fatal("errors.Is matched the wrong code")
	}
	if got, want := e.Error(), "pin.Into: unsupported_function: led: spi_rx"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
