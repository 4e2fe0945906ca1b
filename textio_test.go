package xdi2

import (
	"bytes"
	"testing"
)

func TestTextWriterReaderRoundtrip(t *testing.T) {
	g := NewMemoryGraph()
	g.CreateLiteral(MustParseXri("=alice+email"), "alice@example.com")
	g.CreateRelation(MustParseXri("=alice"), MustParseXri("+friend"), MustParseXri("=carol"))

	var buf bytes.Buffer
	if err := (TextWriter{}).Write(&buf, g); err != nil {
		t.Fatalf("Write: %v", err)
	}

	g2 := NewMemoryGraph()
	if err := (TextReader{}).Read(&buf, g2); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !g.Equal(g2) {
		t.Error("expected the text roundtrip to preserve statement-set equality")
	}
}

func TestTextReaderSkipsBlankLines(t *testing.T) {
	input := "=alice+email/!/(data:,alice@example.com)\n\n   \n"
	g := NewMemoryGraph()
	if err := (TextReader{}).Read(bytes.NewBufferString(input), g); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if data, ok := g.Literal(MustParseXri("=alice+email")); !ok || data != "alice@example.com" {
		t.Errorf("Literal = %q, %v, want %q, true", data, ok, "alice@example.com")
	}
}
