package board

import (
	"strconv"

	"challenger-go/errcode"

	"go.uber.org/multierr"
)

// Validate checks a pin table against the board invariants and returns every
// violation found, combined:
//   - each GPIO 0..NumPins-1 appears exactly once
//   - aliases are non-empty and unique
//   - no pin declares the same Kind twice
//   - specialised aliases are unique and canonical
//   - every declared function is one the silicon can route to that pin
func Validate(pins []PinDef) error {
	var err error
	bad := func(msg string) {
		err = multierr.Append(err, errcode.New(errcode.InvalidCatalog, "board.Validate", msg))
	}

	if len(pins) != NumPins {
		bad("expected " + strconv.Itoa(NumPins) + " pins, got " + strconv.Itoa(len(pins)))
	}

	seenIdx := make(map[int]bool, len(pins))
	seenAlias := make(map[string]int, len(pins))
	seenFn := make(map[string]int)

	for _, d := range pins {
		gp := "gpio" + strconv.Itoa(d.Index)
		if d.Index < 0 || d.Index >= NumPins {
			bad(gp + ": index out of range")
			continue
		}
		if seenIdx[d.Index] {
			bad(gp + ": duplicate index")
		}
		seenIdx[d.Index] = true

		switch prev, dup := seenAlias[d.Alias]; {
		case d.Alias == "":
			bad(gp + ": empty alias")
		case dup:
			bad(gp + ": alias " + d.Alias + " already used by gpio" + strconv.Itoa(prev))
		default:
			seenAlias[d.Alias] = d.Index
		}

		silicon := SiliconFunctions(d.Index)
		var kinds [numKinds]bool
		for _, f := range d.Functions {
			if !f.Kind.valid() || f.Kind == KindNone {
				bad(gp + ": invalid function kind " + f.Kind.String())
				continue
			}
			if kinds[f.Kind] {
				bad(gp + ": duplicate function kind " + f.Kind.String())
			}
			kinds[f.Kind] = true

			if prev, dup := seenFn[f.Alias]; dup {
				bad(gp + ": function alias " + f.Alias + " already used by gpio" + strconv.Itoa(prev))
			}
			seenFn[f.Alias] = d.Index

			if want := SpecializedName(d.Index, f); f.Alias != want {
				bad(gp + ": function alias " + f.Alias + " should be " + want)
			}
			if !routable(silicon, f) {
				bad(gp + ": silicon cannot route " + string(f.Func()) + " here")
			}
		}
	}

	for n := 0; n < NumPins; n++ {
		if !seenIdx[n] {
			bad("gpio" + strconv.Itoa(n) + ": missing")
		}
	}
	return err
}

func routable(silicon []Function, f Function) bool {
	for _, s := range silicon {
		if s.Kind == f.Kind && s.Unit == f.Unit {
			return true
		}
	}
	return false
}
