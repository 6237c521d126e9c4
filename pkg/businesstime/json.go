package businesstime

import (
	"bytes"
	"encoding/json"
	"time"
)

// Time is a time.Time that marshals to and from the API timestamp format.
// The zero value marshals to null.
type Time struct {
	time.Time
}

func From(t time.Time) Time {
	return Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ToAPIFormat(t.Time))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseFromAPI(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
