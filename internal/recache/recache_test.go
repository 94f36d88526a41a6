package recache

import "testing"

func TestGetCompilesOnce(t *testing.T) {
	c := New(10)
	re1, err := c.Get(`^\d{4}-\d{2}-\d{2}`)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	re2, err := c.Get(`^\d{4}-\d{2}-\d{2}`)
	if err != nil {
		t.Fatalf("Get() error on second call = %v", err)
	}
	if re1 != re2 {
		t.Error("Get() returned different instances for the same pattern")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestGetInvalidPattern(t *testing.T) {
	c := New(10)
	_, first := c.Get("(")
	if first == nil {
		t.Fatal("Get(\"(\") error = nil, want compile error")
	}
	// The failure is cached, error included; a second lookup reports it too.
	re, err := c.Get("(")
	if re != nil {
		t.Errorf("cached invalid pattern = %v, want nil", re)
	}
	if err == nil || err.Error() != first.Error() {
		t.Errorf("cached error = %v, want %v", err, first)
	}
}

func TestMatches(t *testing.T) {
	c := New(10)
	tests := []struct {
		name    string
		pattern string
		text    string
		want    bool
	}{
		{"timestamp match", `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`, "2021-07-01 12:34:56 boot", true},
		{"timestamp miss", `^\d{4}-\d{2}-\d{2}`, "no date here", false},
		{"invalid pattern never matches", "(", "(", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Matches(tt.pattern, tt.text); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
			}
		})
	}
}

func TestEviction(t *testing.T) {
	c := New(4)
	patterns := []string{"a", "b", "c", "d", "e", "f"}
	for _, p := range patterns {
		if _, err := c.Get(p); err != nil {
			t.Fatalf("Get(%q) error = %v", p, err)
		}
	}
	if c.Len() > 4 {
		t.Errorf("Len() = %d after eviction, want <= 4", c.Len())
	}
}
