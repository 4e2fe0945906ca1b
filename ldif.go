package xdi2

import (
	"github.com/go-ldap/ldap/v3"
)

/*
ldif.go implements an LDIF-compatible graph serialization: entries
compatible with go-ldap/v3's Entry.Unmarshal without the core package
itself depending on an LDAP network connection. Each context node that
carries a literal or at least one relation is rendered as one
ldap.Entry, keyed by its address's canonical string as the entry
DN-equivalent.
*/

// LDIFWriter renders a graph's statements as a sequence of
// *ldap.Entry values, one per context node that has a literal or one
// or more outgoing relations.
type LDIFWriter struct{}

// NewLDIFWriter returns an LDIFWriter.
func NewLDIFWriter() *LDIFWriter { return &LDIFWriter{} }

// WriteEntries groups g's statements by subject context node and
// returns one ldap.Entry per subject that has attributes to carry.
func (w *LDIFWriter) WriteEntries(g Graph) []*ldap.Entry {
	type accum struct {
		attrs map[string][]string
	}
	bySubject := make(map[string]*accum)
	order := make([]string, 0)

	ensure := func(key string) *accum {
		a, ok := bySubject[key]
		if !ok {
			a = &accum{attrs: make(map[string][]string)}
			bySubject[key] = a
			order = append(order, key)
		}
		return a
	}

	for _, s := range g.Statements() {
		switch s.Kind {
		case StatementLiteral:
			a := ensure(s.Subject.String())
			a.attrs["literal"] = append(a.attrs["literal"], s.Data)
		case StatementRelation:
			a := ensure(s.Subject.String())
			a.attrs[s.Predicate.String()] = append(a.attrs[s.Predicate.String()], s.Object.String())
		case StatementContextNode:
			// Context-node edges establish the DN hierarchy implicitly
			// through the subject string; no attribute is carried.
			ensure(s.Object.String())
		}
	}

	entries := make([]*ldap.Entry, 0, len(order))
	for _, key := range order {
		a := bySubject[key]
		if len(a.attrs) == 0 {
			continue
		}
		entries = append(entries, ldap.NewEntry(key, a.attrs))
	}
	return entries
}

/*
LDIFReader populates a Graph from a sequence of *ldap.Entry values
produced by LDIFWriter (or any source following the same "literal"/
arc-label attribute convention).
*/
type LDIFReader struct{}

// NewLDIFReader returns an LDIFReader.
func NewLDIFReader() *LDIFReader { return &LDIFReader{} }

// ReadEntries inserts one statement per attribute value found on each
// entry into g.
func (r *LDIFReader) ReadEntries(entries []*ldap.Entry, g Graph) error {
	for _, e := range entries {
		subject, err := ParseXri(e.DN)
		if err != nil {
			return &ParseError{Input: e.DN, Err: err}
		}
		for _, at := range e.Attributes {
			if at.Name == "literal" {
				for _, v := range at.Values {
					if err := g.AddStatement(Statement{Kind: StatementLiteral, Subject: subject, Data: v}); err != nil {
						return err
					}
				}
				continue
			}
			predicate, err := ParseXri(at.Name)
			if err != nil {
				return &ParseError{Input: at.Name, Err: err}
			}
			for _, v := range at.Values {
				object, err := ParseXri(v)
				if err != nil {
					return &ParseError{Input: v, Err: err}
				}
				if err := g.AddStatement(Statement{Kind: StatementRelation, Subject: subject, Predicate: predicate, Object: object}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
