package dbtypes

import "testing"

func TestStringMapScanValueRoundTrip(t *testing.T) {
	in := StringMap{"color": "red", "size": "m"}

	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var out StringMap
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if !in.Equal(out) {
		t.Fatalf("round trip mismatch: %v vs %v", in, out)
	}
}

func TestStringMapNilHandling(t *testing.T) {
	var m StringMap
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil driver value, got %v", v)
	}

	var out StringMap
	if err := out.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil map, got %v", out)
	}
}

func TestStringMapEqual(t *testing.T) {
	a := StringMap{"color": "red"}
	b := StringMap{"color": "red"}
	if !a.Equal(b) {
		t.Fatal("identical maps should be equal")
	}
	if a.Equal(StringMap{"color": "blue"}) {
		t.Fatal("different values should not be equal")
	}
	if a.Equal(StringMap{"color": "red", "size": "m"}) {
		t.Fatal("different key sets should not be equal")
	}

	var nilMap StringMap
	if !nilMap.Equal(StringMap{}) {
		t.Fatal("nil and empty should compare equal")
	}
}

func TestStringMapClone(t *testing.T) {
	a := StringMap{"color": "red"}
	b := a.Clone()
	b["color"] = "blue"
	if a["color"] != "red" {
		t.Fatal("Clone should be independent of the source")
	}

	var nilMap StringMap
	if nilMap.Clone() != nil {
		t.Fatal("Clone of nil should stay nil")
	}
}
