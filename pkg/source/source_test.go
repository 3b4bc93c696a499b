package source

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		kind     Kind
		location string
	}{
		{raw: "config/fields.yaml", kind: KindFile, location: "config/fields.yaml"},
		{raw: "  ./types/../fields.json ", kind: KindFile, location: "fields.json"},
		{raw: "https://cms.example.com/api/fields", kind: KindURL, location: "https://cms.example.com/api/fields"},
	}

	for _, tc := range tests {
		src, err := Parse(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.location {
			t.Fatalf("parse %q: got %s %q", tc.raw, src.Kind(), src.Location())
		}
	}

	src, err := Parse("   ")
	if err != nil || src != nil {
		t.Fatalf("expected nil source for blank input, got %v (%v)", src, err)
	}
	if _, err := FromURL("http//broken"); err == nil {
		t.Fatalf("expected invalid URL error")
	}
	if got := FromFS("fields.json"); got.Kind() != KindFS {
		t.Fatalf("expected fs kind, got %s", got.Kind())
	}
}
