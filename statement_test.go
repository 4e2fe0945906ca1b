package xdi2

import "testing"

func TestParseStatementStrictRelation(t *testing.T) {
	s, err := ParseStatementStrict("=alice/+friend/=carol")
	if err != nil {
		t.Fatalf("ParseStatementStrict: %v", err)
	}
	if s.Kind != StatementRelation {
		t.Errorf("Kind = %v, want StatementRelation", s.Kind)
	}
	if !s.Subject.Equal(MustParseXri("=alice")) || !s.Predicate.Equal(MustParseXri("+friend")) || !s.Object.Equal(MustParseXri("=carol")) {
		t.Errorf("got subject=%q predicate=%q object=%q", s.Subject.String(), s.Predicate.String(), s.Object.String())
	}
}

func TestParseStatementStrictLiteral(t *testing.T) {
	s, err := ParseStatementStrict("=alice+email/!/(data:,alice@example.com)")
	if err != nil {
		t.Fatalf("ParseStatementStrict: %v", err)
	}
	if s.Kind != StatementLiteral {
		t.Fatalf("Kind = %v, want StatementLiteral", s.Kind)
	}
	if s.Data != "alice@example.com" {
		t.Errorf("Data = %q, want %q", s.Data, "alice@example.com")
	}
}

func TestParseStatementNotAStatement(t *testing.T) {
	if _, ok := ParseStatement(MustParseXri("=alice+email")); ok {
		t.Error("a plain address (no slash-delimited parts) should not parse as a statement")
	}
}

func TestStatementRoundtripsThroughString(t *testing.T) {
	orig, err := ParseStatementStrict("=alice/+friend/=carol")
	if err != nil {
		t.Fatalf("ParseStatementStrict: %v", err)
	}
	reparsed, err := ParseStatementStrict(orig.String())
	if err != nil {
		t.Fatalf("ParseStatementStrict(roundtrip): %v", err)
	}
	if !orig.Equal(reparsed) {
		t.Errorf("roundtrip mismatch: %q vs %q", orig.String(), reparsed.String())
	}
}

func TestParseStatementStrictMalformed(t *testing.T) {
	if _, err := ParseStatementStrict("=alice+email"); err == nil {
		t.Error("expected an error for an address with no slash-delimited parts")
	}
	if _, err := ParseStatementStrict("=alice/!/notliteralform"); err == nil {
		t.Error("expected an error for a malformed literal object form")
	}
}
