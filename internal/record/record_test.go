package record

import "testing"

func TestSetPreservesOrder(t *testing.T) {
	r := New("a=1 b=2 c=3")
	r.Set("a", "1")
	r.Set("b", "2")
	r.Set("c", "3")

	// Replacing an existing key must not move it.
	r.Set("b", "20")

	want := []Field{{"a", "1"}, {"b", "20"}, {"c", "3"}}
	got := r.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSetIfAbsent(t *testing.T) {
	r := New("")
	if !r.SetIfAbsent("timestamp", "2024-01-01T00:00:00Z") {
		t.Error("SetIfAbsent on missing key = false, want true")
	}
	if r.SetIfAbsent("timestamp", "1999-01-01T00:00:00Z") {
		t.Error("SetIfAbsent on existing key = true, want false")
	}
	if v, _ := r.Get("timestamp"); v != "2024-01-01T00:00:00Z" {
		t.Errorf("timestamp = %q, want first value preserved", v)
	}
}

func TestUnset(t *testing.T) {
	r := New("")
	r.Set("a", "1")
	r.Set("b", "2")
	r.Set("c", "3")
	r.Unset("b")

	if _, ok := r.Get("b"); ok {
		t.Error("Get(b) found after Unset")
	}
	if v, ok := r.Get("c"); !ok || v != "3" {
		t.Errorf("Get(c) = %q, %v after Unset(b), want 3, true", v, ok)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	// Unset of an absent key is a no-op.
	r.Unset("nope")
	if r.Len() != 2 {
		t.Errorf("Len() = %d after no-op Unset, want 2", r.Len())
	}
}

func TestGetOnEmptyRecord(t *testing.T) {
	r := New("bare line")
	if _, ok := r.Get("anything"); ok {
		t.Error("Get on empty record reported a field")
	}
}
