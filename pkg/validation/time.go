package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time accepts the date shapes mobile and web clients send: RFC 3339,
// date-only, local date-time, or epoch milliseconds.
type Time struct {
	time.Time
}

var timeType = reflect.TypeOf(Time{})

// TimeError reports an unparseable date outside a JSON body.
type TimeError struct {
	Value string
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// ParseTime parses s with the accepted layouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &TimeError{Value: s}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &TimeError{Value: s}
}

func (t *Time) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		raw = string(b)
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		// encoding/json fills Field with the JSON key of the failing value
		return &json.UnmarshalTypeError{Value: "date " + strconv.Quote(raw), Type: timeType}
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}
