package setups

import (
	"bytes"
	"encoding/json"

	"challenger-go/errcode"
)

// Decode reads a Plan from JSON bytes, a JSON string, a Plan, or any value
// that marshals to the same shape (e.g. a map from a config document).
// Unknown keys are rejected so a misspelt pin role does not vanish silently.
func Decode(src any) (Plan, error) {
	var raw []byte
	switch v := src.(type) {
	case Plan:
		return v, nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Plan{}, invalid(err)
		}
		raw = b
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var p Plan
	if err := dec.Decode(&p); err != nil {
		return Plan{}, invalid(err)
	}
	return p, nil
}

func invalid(err error) error {
	return &errcode.E{C: errcode.InvalidPlan, Op: "setups.Decode", Msg: err.Error(), Err: err}
}
