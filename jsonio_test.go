package xdi2

import (
	"bytes"
	"testing"
)

func TestJSONStatementWriterReaderRoundtrip(t *testing.T) {
	g := NewMemoryGraph()
	g.CreateLiteral(MustParseXri("=alice+email"), "alice@example.com")
	g.CreateRelation(MustParseXri("=alice"), MustParseXri("+friend"), MustParseXri("=carol"))

	var buf bytes.Buffer
	if err := (JSONStatementWriter{}).Write(&buf, g); err != nil {
		t.Fatalf("Write: %v", err)
	}

	g2 := NewMemoryGraph()
	if err := (JSONStatementReader{}).Read(&buf, g2); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !g.Equal(g2) {
		t.Error("expected the JSON statement roundtrip to preserve statement-set equality")
	}
}

func TestJSONObjectWriterNestsChildren(t *testing.T) {
	g := NewMemoryGraph()
	g.CreateLiteral(MustParseXri("=alice+email"), "alice@example.com")

	var buf bytes.Buffer
	if err := (JSONObjectWriter{}).Write(&buf, g); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty JSON object output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("alice@example.com")) {
		t.Error("expected the literal value to appear in the rendered object")
	}
}

func TestJSONObjectWriterReaderRoundtrip(t *testing.T) {
	g := NewMemoryGraph()
	g.CreateLiteral(MustParseXri("=alice+email"), "alice@example.com")
	g.CreateRelation(MustParseXri("=alice"), MustParseXri("+friend"), MustParseXri("=carol"))

	var buf bytes.Buffer
	if err := (JSONObjectWriter{}).Write(&buf, g); err != nil {
		t.Fatalf("Write: %v", err)
	}

	g2 := NewMemoryGraph()
	if err := (JSONObjectReader{}).Read(&buf, g2); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !g.Equal(g2) {
		t.Error("expected the JSON object-form roundtrip to preserve statement-set equality")
	}
}

func TestJSONObjectReaderRejectsMalformed(t *testing.T) {
	bad := bytes.NewBufferString(`["not", "an", "object"]`)
	if err := (JSONObjectReader{}).Read(bad, NewMemoryGraph()); err == nil {
		t.Error("expected a ParseError for malformed JSON input")
	}
}

func TestJSONStatementReaderRejectsMalformed(t *testing.T) {
	bad := bytes.NewBufferString(`{"not":"an array"}`)
	if err := (JSONStatementReader{}).Read(bad, NewMemoryGraph()); err == nil {
		t.Error("expected a ParseError for malformed JSON input")
	}
}
