package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON string or number. null decodes to "".
// Backend IDs arrive as either.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flexstring: expected string or number, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexBool decodes true/false, 0/1 or null (false).
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1", `"true"`, `"1"`:
		*f = true
	case "false", "0", "null", `"false"`, `"0"`, `""`:
		*f = false
	default:
		return fmt.Errorf("flexbool: unexpected value %s", b)
	}
	return nil
}

// FlexStrings decodes either a JSON array of strings or a single string.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexStrings{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(b, &ss); err != nil {
		return err
	}
	*f = ss
	return nil
}
