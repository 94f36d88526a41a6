package extract

import (
	"strings"
	"testing"

	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
)

func transformChain(t *testing.T) *Chain {
	t.Helper()
	c, err := NewChain([]string{"transform timestamp iso8601"}, recache.New(0), FirstWins)
	if err != nil {
		t.Fatalf("NewChain error = %v", err)
	}
	return c
}

func TestTransformTimestampFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already rfc3339", "2024-01-01T12:30:45Z", "2024-01-01T12:30:45Z"},
		{"space separated utc", "2024-01-01 12:30:45", "2024-01-01T12:30:45Z"},
		{"t separated utc", "2024-01-01T12:30:45", "2024-01-01T12:30:45Z"},
		{"nginx with offset", "02/Jan/2024:12:30:45 +0100", "2024-01-02T12:30:45+01:00"},
	}
	c := transformChain(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record.New("line")
			rec.Set("timestamp", tt.in)
			c.Run(rec.Original, rec)
			if got, _ := rec.Get("timestamp"); got != tt.want {
				t.Errorf("timestamp = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransformSyslogBorrowsCurrentYear(t *testing.T) {
	c := transformChain(t)
	rec := record.New("line")
	rec.Set("timestamp", "Jan  2 12:30:45")
	c.Run(rec.Original, rec)
	got, _ := rec.Get("timestamp")
	if !strings.Contains(got, "-01-02T12:30:45") {
		t.Errorf("timestamp = %q, want month/day/time preserved", got)
	}
}

func TestTransformLeavesUnparseableAlone(t *testing.T) {
	c := transformChain(t)
	rec := record.New("line")
	rec.Set("timestamp", "half past never")
	c.Run(rec.Original, rec)
	if got, _ := rec.Get("timestamp"); got != "half past never" {
		t.Errorf("timestamp = %q, want original preserved", got)
	}
}

func TestTransformMissingFieldIsNoop(t *testing.T) {
	c := transformChain(t)
	rec := record.New("line")
	rec.Set("other", "value")
	c.Run(rec.Original, rec)
	if _, ok := rec.Get("timestamp"); ok {
		t.Error("transform invented a timestamp field")
	}
	if got, _ := rec.Get("other"); got != "value" {
		t.Errorf("other = %q, want untouched", got)
	}
}

func TestTransformRFC3339Alias(t *testing.T) {
	if _, err := NewChain([]string{"transform timestamp rfc3339"}, recache.New(0), FirstWins); err != nil {
		t.Errorf("rfc3339 alias rejected: %v", err)
	}
}
