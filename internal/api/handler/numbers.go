package handler

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexInt decodes a JSON number or a numeric string ("50000") into an int.
// HTML form clients send numeric inputs as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		return nil
	}
	v, err := parseFlexNumber(b)
	if err != nil {
		return err
	}
	// float64(math.MaxInt64) rounds up to 2^63, which no longer fits.
	if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return fmt.Errorf("%s is not an integer", b)
	}
	*f = flexInt(v)
	return nil
}

// Int returns the decoded value, or 0 when the field was absent.
func (f *flexInt) Int() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// flexFloat is the float64 counterpart of flexInt.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		return nil
	}
	v, err := parseFlexNumber(b)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func parseFlexNumber(b []byte) (float64, error) {
	raw := bytes.TrimSpace(b)
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, fmt.Errorf("invalid number %s", b)
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %s", b)
	}
	return v, nil
}

func isJSONNull(b []byte) bool {
	return string(bytes.TrimSpace(b)) == "null"
}
