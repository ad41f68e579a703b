package types

import "testing"

func TestParseDottedName(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
		want    string
	}{
		{"a.b.c", false, "a.b.c"},
		{"_private", false, "_private"},
		{"a", false, "a"},
		{"", true, ""},
		{"a..b", true, ""},
		{"1bad", true, ""},
	}
	for _, c := range cases {
		got, err := ParseDottedName(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDottedName(%q): expected error, got none", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDottedName(%q): unexpected error: %v", c.in, err)
		}
		if got.String() != c.want {
			t.Errorf("ParseDottedName(%q).String() = %q, want %q", c.in, got.String(), c.want)
		}
	}
}

func TestDottedNamePrefixesAndStartsWith(t *testing.T) {
	d := MustDottedName("a.b.c")
	prefixes := d.Prefixes()
	want := []string{"a", "a.b", "a.b.c"}
	if len(prefixes) != len(want) {
		t.Fatalf("Prefixes() len = %d, want %d", len(prefixes), len(want))
	}
	for i, p := range prefixes {
		if p.String() != want[i] {
			t.Errorf("Prefixes()[%d] = %q, want %q", i, p.String(), want[i])
		}
	}

	if !d.StartsWith(MustDottedName("a.b")) {
		t.Error("expected a.b.c to start with a.b")
	}
	if d.StartsWith(MustDottedName("a.b.c.d")) {
		t.Error("did not expect a.b.c to start with a.b.c.d")
	}
}

func TestDottedNameWithPrefixReplaced(t *testing.T) {
	d := MustDottedName("numpy.random.rand")
	out, ok := d.WithPrefixReplaced(MustDottedName("numpy"), MustDottedName("numpy2"))
	if !ok {
		t.Fatal("expected prefix replacement to apply")
	}
	if out.String() != "numpy2.random.rand" {
		t.Errorf("got %q, want numpy2.random.rand", out.String())
	}

	_, ok = d.WithPrefixReplaced(MustDottedName("scipy"), MustDottedName("scipy2"))
	if ok {
		t.Error("expected no match for unrelated prefix")
	}
}

func TestDottedNameDropLastAndJoin(t *testing.T) {
	d := MustDottedName("a.b.c")
	if got := d.DropLast().String(); got != "a.b" {
		t.Errorf("DropLast() = %q, want a.b", got)
	}
	single := MustDottedName("a")
	if !single.DropLast().IsZero() {
		t.Error("DropLast() of a single-atom name should be zero")
	}

	joined := MustDottedName("a.b").Join(MustDottedName("c.d"))
	if got := joined.String(); got != "a.b.c.d" {
		t.Errorf("Join() = %q, want a.b.c.d", got)
	}
}
