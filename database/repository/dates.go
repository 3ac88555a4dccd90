package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DateLayout is the calendar-date format accepted on the wire.
const DateLayout = "2006-01-02"

// FlexibleDate decodes the date shapes that exist in stored documents:
// BSON datetimes, Mongo timestamps, "YYYY-MM-DD" or RFC 3339 strings, and
// exported {seconds, nanoseconds} objects. It always encodes as a BSON datetime.
type FlexibleDate struct {
	time.Time
}

// NewFlexibleDate wraps t.
func NewFlexibleDate(t time.Time) FlexibleDate {
	return FlexibleDate{Time: t}
}

// ParseDate parses a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	return t, nil
}

func (d FlexibleDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(d.Time.UTC())
}

func (d *FlexibleDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		d.Time = time.Time{}
	case bson.TypeDateTime:
		d.Time = rv.Time().UTC()
	case bson.TypeTimestamp:
		secs, _ := rv.Timestamp()
		d.Time = time.Unix(int64(secs), 0).UTC()
	case bson.TypeString:
		if rv.StringValue() == "" {
			d.Time = time.Time{}
			return nil
		}
		parsed, err := ParseDate(rv.StringValue())
		if err != nil {
			return err
		}
		d.Time = parsed
	case bson.TypeEmbeddedDocument:
		doc := rv.Document()
		secs, ok := lookupInt64(doc, "seconds", "_seconds")
		if !ok {
			return fmt.Errorf("date document has no seconds field")
		}
		nanos, _ := lookupInt64(doc, "nanoseconds", "_nanoseconds")
		d.Time = time.Unix(secs, nanos).UTC()
	default:
		return fmt.Errorf("cannot decode BSON %s as a date", t)
	}
	return nil
}

func lookupInt64(doc bson.Raw, keys ...string) (int64, bool) {
	for _, key := range keys {
		v, err := doc.LookupErr(key)
		if err != nil {
			continue
		}
		if n, ok := v.AsInt64OK(); ok {
			return n, true
		}
	}
	return 0, false
}

func (d FlexibleDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

func (d *FlexibleDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			d.Time = time.Time{}
			return nil
		}
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		d.Time = parsed
	case '{':
		var obj struct {
			Seconds        *int64 `json:"seconds"`
			AltSeconds     *int64 `json:"_seconds"`
			Nanoseconds    int64  `json:"nanoseconds"`
			AltNanoseconds int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		secs := obj.Seconds
		if secs == nil {
			secs = obj.AltSeconds
		}
		if secs == nil {
			return fmt.Errorf("date object has no seconds field")
		}
		d.Time = time.Unix(*secs, obj.Nanoseconds+obj.AltNanoseconds).UTC()
	default:
		var millis int64
		if err := json.Unmarshal(data, &millis); err != nil {
			return fmt.Errorf("cannot decode %s as a date", data)
		}
		d.Time = time.UnixMilli(millis).UTC()
	}
	return nil
}

// Ptr returns nil for a zero date.
func (d *FlexibleDate) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// FlexibleDatePtr wraps an optional time for storage.
func FlexibleDatePtr(t *time.Time) *FlexibleDate {
	if t == nil || t.IsZero() {
		return nil
	}
	return &FlexibleDate{Time: *t}
}

// FlexibleDates wraps a list for storage.
func FlexibleDates(times []time.Time) []FlexibleDate {
	out := make([]FlexibleDate, 0, len(times))
	for _, t := range times {
		out = append(out, FlexibleDate{Time: t})
	}
	return out
}

// CalendarDate returns the calendar day t names for a reader in loc, as UTC
// midnight. A value already at UTC midnight is a stored calendar date and keeps
// its day; any other instant is read as wall-clock time in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	if loc == nil || u.Equal(time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)) {
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDates unwraps a list as calendar days in loc, dropping zero entries.
func CalendarDates(dates []FlexibleDate, loc *time.Location) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if !d.IsZero() {
			out = append(out, CalendarDate(d.Time, loc))
		}
	}
	return out
}

// CalendarPtr is Ptr read as a calendar day in loc.
func (d *FlexibleDate) CalendarPtr(loc *time.Location) *time.Time {
	t := d.Ptr()
	if t == nil {
		return nil
	}
	day := CalendarDate(*t, loc)
	return &day
}
