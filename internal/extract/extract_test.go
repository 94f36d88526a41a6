package extract

import (
	"strings"
	"testing"

	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/record"
)

func runChain(t *testing.T, specs []string, policy MergePolicy, line string) *record.Record {
	t.Helper()
	c, err := NewChain(specs, recache.New(0), policy)
	if err != nil {
		t.Fatalf("NewChain(%v) error = %v", specs, err)
	}
	rec := record.New(line)
	c.Run(line, rec)
	return rec
}

func wantField(t *testing.T, rec *record.Record, key, want string) {
	t.Helper()
	got, ok := rec.Get(key)
	if !ok {
		t.Errorf("field %q missing", key)
		return
	}
	if got != want {
		t.Errorf("field %q = %q, want %q", key, got, want)
	}
}

func TestNewChainBadSpecs(t *testing.T) {
	bad := []string{
		"",
		"regex",
		"regex (",
		"pattern",
		"pattern <open",
		"transform",
		"transform timestamp epoch",
		"xml",
		"unknown_extractor",
	}
	for _, spec := range bad {
		if _, err := NewChain([]string{spec}, recache.New(0), FirstWins); err == nil {
			t.Errorf("NewChain(%q) error = nil, want config error", spec)
		}
	}
}

func TestLogfmt(t *testing.T) {
	rec := runChain(t, []string{"logfmt"}, FirstWins,
		`level=INFO msg="user logged in" user_id=568 | ignored`)
	wantField(t, rec, "level", "INFO")
	wantField(t, rec, "msg", "user logged in")
	wantField(t, rec, "user_id", "568")
	if _, ok := rec.Get("|"); ok {
		t.Error("bare token without = produced a field")
	}
}

func TestLogfmtEmptyQuotedValue(t *testing.T) {
	rec := runChain(t, []string{"logfmt"}, FirstWins, `key=""`)
	wantField(t, rec, "key", "")
}

func TestRegexNamedGroups(t *testing.T) {
	rec := runChain(t, []string{`regex (?P<method>\w+) (?P<path>/\S+)`}, FirstWins, "GET /api/users")
	wantField(t, rec, "method", "GET")
	wantField(t, rec, "path", "/api/users")

	miss := runChain(t, []string{`regex (?P<method>\w+) (?P<path>/\S+)`}, FirstWins, "no request here")
	if miss.Len() != 0 {
		t.Errorf("non-matching regex produced %d fields", miss.Len())
	}
}

func TestRegexUnderscoreGroupsSkipped(t *testing.T) {
	rec := runChain(t, []string{`regex (?P<_drop>\w+) (?P<keep>\w+)`}, FirstWins, "skipped kept")
	if _, ok := rec.Get("_drop"); ok {
		t.Error("underscore-prefixed group emitted")
	}
	wantField(t, rec, "keep", "kept")
}

func TestCSVHeadersThenRows(t *testing.T) {
	c, err := NewChain([]string{"csv"}, recache.New(0), FirstWins)
	if err != nil {
		t.Fatalf("NewChain error = %v", err)
	}

	header := record.New("name,age,city")
	c.Run(header.Original, header)
	if header.Len() != 0 {
		t.Errorf("header row produced %d fields, want 0", header.Len())
	}

	row := record.New(`John,25,"New York, NY"`)
	c.Run(row.Original, row)
	wantField(t, row, "name", "John")
	wantField(t, row, "age", "25")
	wantField(t, row, "city", "New York, NY")

	wide := record.New("a,b,c,extra")
	c.Run(wide.Original, wide)
	wantField(t, wide, "header_3", "extra")
}

func TestCSVSemicolonDelimiter(t *testing.T) {
	c, err := NewChain([]string{"csv"}, recache.New(0), FirstWins)
	if err != nil {
		t.Fatalf("NewChain error = %v", err)
	}
	hdr := record.New("name;age")
	c.Run(hdr.Original, hdr)
	row := record.New("Jane;30")
	c.Run(row.Original, row)
	wantField(t, row, "name", "Jane")
	wantField(t, row, "age", "30")
}

func TestJSONObjectLine(t *testing.T) {
	rec := runChain(t, []string{"json"}, FirstWins,
		`{"level":"warn","status":404,"ratio":0.5,"ok":true,"ctx":{"a":1}}`)
	wantField(t, rec, "level", "warn")
	wantField(t, rec, "status", "404")
	wantField(t, rec, "ratio", "0.5")
	wantField(t, rec, "ok", "true")
	if ctx, _ := rec.Get("ctx"); !strings.Contains(ctx, `"a":1`) {
		t.Errorf("nested object = %q, want raw JSON", ctx)
	}
}

func TestJSONMalformedContributesNothing(t *testing.T) {
	for _, line := range []string{`{"unterminated`, `[1,2,3]`, `not json`} {
		rec := runChain(t, []string{"json"}, FirstWins, line)
		if rec.Len() != 0 {
			t.Errorf("line %q produced %d fields, want 0", line, rec.Len())
		}
	}
}

func TestJournalLine(t *testing.T) {
	rec := runChain(t, []string{"journal"}, FirstWins,
		"Aug 31 06:15:02 web01 sshd[4312]: Accepted publickey for deploy")
	wantField(t, rec, "timestamp", "Aug 31 06:15:02")
	wantField(t, rec, "hostname", "web01")
	wantField(t, rec, "unit", "sshd")
	wantField(t, rec, "pid", "4312")
	wantField(t, rec, "message", "Accepted publickey for deploy")
}

func TestJournalKernelLineWithoutPid(t *testing.T) {
	rec := runChain(t, []string{"journal"}, FirstWins,
		"Aug  3 06:15:03 web01 kernel: oom-killer invoked")
	wantField(t, rec, "unit", "kernel")
	wantField(t, rec, "message", "oom-killer invoked")
	if _, ok := rec.Get("pid"); ok {
		t.Error("pid field present for kernel line")
	}
}

func TestAutoDatetime(t *testing.T) {
	rec := runChain(t, []string{"autodatetime"}, FirstWins,
		"worker started at 2024-03-05T09:30:00Z on node 7")
	wantField(t, rec, "timestamp", "2024-03-05T09:30:00Z")

	none := runChain(t, []string{"autodatetime"}, FirstWins, "no dates in sight")
	if _, ok := none.Get("timestamp"); ok {
		t.Error("timestamp found in line without one")
	}
}

func TestAutoDatetimeKeepsExistingTimestamp(t *testing.T) {
	rec := runChain(t,
		[]string{`regex ts=(?P<timestamp>\S+)`, "autodatetime"},
		FirstWins,
		"ts=first 2024-03-05 09:30:00")
	wantField(t, rec, "timestamp", "first")
}

func TestFirstWinsFallbackChain(t *testing.T) {
	specs := []string{
		`regex \[(?P<timestamp>[^\]]+)\]`,
		`regex ^(?P<timestamp>\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`,
	}
	// Only the second regex matches; the fallback fills the field.
	rec := runChain(t, specs, FirstWins, "2024-01-01 10:00:00 start")
	wantField(t, rec, "timestamp", "2024-01-01 10:00:00")

	// Both match; the first listed wins.
	both := runChain(t, specs, FirstWins, "2024-01-01 10:00:00 [bracketed]")
	wantField(t, both, "timestamp", "bracketed")
}

func TestLastWinsPolicy(t *testing.T) {
	specs := []string{
		`regex a=(?P<v>\w+)`,
		`regex b=(?P<v>\w+)`,
	}
	rec := runChain(t, specs, LastWins, "a=one b=two")
	wantField(t, rec, "v", "two")
}
