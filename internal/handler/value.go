package handler

import (
	"bytes"
	"fmt"
	"strconv"
)

// intOrString decodes a JSON integer that browsers may send as a numeric
// string, as happens with ids taken from object keys.
type intOrString int

func (v *intOrString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	n, err := strconv.Atoi(string(bytes.Trim(data, `"`)))
	if err != nil {
		return fmt.Errorf("invalid integer %s", data)
	}
	*v = intOrString(n)
	return nil
}
