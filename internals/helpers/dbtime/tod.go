package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const TodLayout = "15:04:05"

// Tod is a TIME column (time of day, no date, no zone).
type Tod struct{ time.Time }

// TodFrom keeps HH:mm:ss of t.
func TodFrom(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// ParseTod accepts "HH:mm", "HH:mm:ss" and "HH:mm:ss.ffffff".
func ParseTod(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = TodFrom(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	tt, err := time.Parse(TodLayout, s)
	if err != nil {
		return err
	}
	t.Time = tt
	return nil
}

func (t Tod) String() string { return t.Format(TodLayout) }

// Value sends "HH:MM:SS" for postgres TIME.
func (t Tod) Value() (driver.Value, error) {
	return t.Format(TodLayout), nil
}

func (t Tod) GormDataType() string { return "time" }

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TodLayout))
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}

func (Tod) InvalidMessage() string {
	return "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."
}
