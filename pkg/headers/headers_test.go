package headers

import "testing"

func TestOrderPreservesDistinctNames(t *testing.T) {
	m := New()
	m.Set("Content-Type", "text/plain")
	m.Add("X-Foo", "1")
	m.Add("X-Foo", "2")
	m.Set("Accept", "*/*")

	var order []string
	m.Range(func(name, value string) {
		if len(order) == 0 || order[len(order)-1] != name {
			order = append(order, name)
		}
	})
	want := []string{"content-type", "x-foo", "accept"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestAddAppendsUnderSameName(t *testing.T) {
	m := New()
	m.Add("X-Foo", "a")
	m.Add("X-Foo", "b")
	vals := m.Values("X-Foo")
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Fatalf("got %v", vals)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	m := New()
	m.Set("Content-Type", "text/plain")
	if v, ok := m.Get("content-TYPE"); !ok || v != "text/plain" {
		t.Fatalf("got %q, %v", v, ok)
	}
}

func TestSetIfMissing(t *testing.T) {
	m := New()
	m.Set("Accept", "a")
	m.SetIfMissing("Accept", "b")
	if v, _ := m.Get("Accept"); v != "a" {
		t.Fatalf("SetIfMissing overwrote existing value: %q", v)
	}
	m.SetIfMissing("User-Agent", "ua")
	if v, _ := m.Get("User-Agent"); v != "ua" {
		t.Fatalf("SetIfMissing did not set missing header: %q", v)
	}
}

func TestIsValidName(t *testing.T) {
	cases := map[string]bool{
		"Content-Type": true,
		"X-Foo_Bar.9":  true,
		"":             false,
		"Bad Name":     false,
		"Bad:Name":     false,
	}
	for name, want := range cases {
		if got := IsValidName(name); got != want {
			t.Errorf("IsValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsValidValueRejectsBareCRLF(t *testing.T) {
	if IsValidValue([]byte("clean value")) != true {
		t.Fatal("expected clean value to be valid")
	}
	if IsValidValue([]byte("evil\r\nSet: x")) != false {
		t.Fatal("expected CRLF-bearing value to be invalid")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New()
	m.Set("X-Foo", "1")
	c := m.Clone()
	c.Set("X-Foo", "2")
	if v, _ := m.Get("X-Foo"); v != "1" {
		t.Fatalf("mutating clone affected original: %q", v)
	}
}
