package xdi2

import "testing"

func TestLDIFWriterReaderRoundtrip(t *testing.T) {
	g := NewMemoryGraph()
	g.CreateLiteral(MustParseXri("=alice+email"), "alice@example.com")
	g.CreateRelation(MustParseXri("=alice"), MustParseXri("+friend"), MustParseXri("=carol"))

	w := NewLDIFWriter()
	entries := w.WriteEntries(g)
	if len(entries) == 0 {
		t.Fatal("expected at least one LDIF entry")
	}

	g2 := NewMemoryGraph()
	r := NewLDIFReader()
	if err := r.ReadEntries(entries, g2); err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}

	if data, ok := g2.Literal(MustParseXri("=alice+email")); !ok || data != "alice@example.com" {
		t.Errorf("roundtripped literal = %q, %v, want %q, true", data, ok, "alice@example.com")
	}
	if !g2.ContainsRelation(MustParseXri("=alice"), MustParseXri("+friend"), MustParseXri("=carol")) {
		t.Error("expected the relation to survive the LDIF roundtrip")
	}
}
