package xdi2

import (
	"encoding/json"
	"io"
)

/*
jsonio.go implements the two XDI/JSON serialization variants from
spec §6: an "object form" (one JSON object per context node, keyed by
arc label/literal) and an explicit "context-statements" form (a flat
array of canonical subject/predicate/object triples). The statement
writer and both readers work through the Graph's statement
iteration/insertion API; JSONObjectWriter instead walks a
*MemoryGraph's context nodes directly.
*/

// jsonStatement is the wire shape of one context-statement entry.
type jsonStatement struct {
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Predicate string `json:"predicate,omitempty"`
	Object    string `json:"object,omitempty"`
	Data      string `json:"data,omitempty"`
}

func kindString(k StatementKind) string {
	switch k {
	case StatementContextNode:
		return "contextNode"
	case StatementRelation:
		return "relation"
	default:
		return "literal"
	}
}

func kindFromString(s string) StatementKind {
	switch s {
	case "contextNode":
		return StatementContextNode
	case "relation":
		return StatementRelation
	default:
		return StatementLiteral
	}
}

// JSONStatementWriter emits the explicit context-statement form: a
// flat JSON array, one element per statement, order matching the
// graph's own statement iteration order.
type JSONStatementWriter struct{}

func (JSONStatementWriter) Write(w io.Writer, g Graph) error {
	stmts := g.Statements()
	out := make([]jsonStatement, len(stmts))
	for i, s := range stmts {
		out[i] = jsonStatement{
			Kind:      kindString(s.Kind),
			Subject:   s.Subject.String(),
			Predicate: s.Predicate.String(),
			Object:    s.Object.String(),
			Data:      s.Data,
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// JSONStatementReader parses the explicit context-statement form
// back into a Graph.
type JSONStatementReader struct{}

func (JSONStatementReader) Read(r io.Reader, g Graph) error {
	var in []jsonStatement
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return &ParseError{Input: "<json>", Err: err}
	}
	for _, js := range in {
		subject, err := ParseXri(js.Subject)
		if err != nil {
			return &ParseError{Input: js.Subject, Err: err}
		}
		s := Statement{Kind: kindFromString(js.Kind), Subject: subject, Data: js.Data}
		if s.Kind != StatementLiteral {
			predicate, err := ParseXri(js.Predicate)
			if err != nil {
				return &ParseError{Input: js.Predicate, Err: err}
			}
			object, err := ParseXri(js.Object)
			if err != nil {
				return &ParseError{Input: js.Object, Err: err}
			}
			s.Predicate, s.Object = predicate, object
		}
		if err := g.AddStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// jsonObjectNode is the wire shape of the "object form": a map from
// arc label (or the reserved key "!") to either a literal string or a
// nested object.
type jsonObjectNode map[string]json.RawMessage

// JSONObjectWriter emits the "object form": one nested JSON object
// per context node, literal values keyed by "!", relation targets by
// their arc label's canonical string (rendered as the target
// address, not inlined as a nested object -- relations may point
// anywhere in the graph, not only to descendants).
type JSONObjectWriter struct{}

func (JSONObjectWriter) Write(w io.Writer, g *MemoryGraph) error {
	obj, err := buildObject(g.Root())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	return enc.Encode(obj)
}

func buildObject(n *ContextNode) (map[string]any, error) {
	out := make(map[string]any)
	n.mu.RLock()
	if n.literal != nil {
		out["!"] = *n.literal
	}
	for _, key := range n.arcOrder {
		a := n.arcs[key]
		out[key] = a.target.Address().String()
	}
	children := make([]string, len(n.order))
	copy(children, n.order)
	childNodes := make(map[string]*ContextNode, len(children))
	for _, key := range children {
		childNodes[key] = n.children[key]
	}
	n.mu.RUnlock()

	for key, child := range childNodes {
		nested, err := buildObject(child)
		if err != nil {
			return nil, err
		}
		out[key] = nested
	}
	return out, nil
}

/*
JSONObjectReader parses the "object form" back into a Graph: the
reserved "!" key becomes a literal statement on the current path, a
string-valued key is an arc label whose value is the target address,
and an object-valued key is a child context node reached by descending
one sub-segment.
*/
type JSONObjectReader struct{}

func (JSONObjectReader) Read(r io.Reader, g Graph) error {
	var root jsonObjectNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return &ParseError{Input: "<json>", Err: err}
	}
	return populateObject(g, Root, root)
}

func populateObject(g Graph, path Segment, node jsonObjectNode) error {
	for key, raw := range node {
		if key == "!" {
			var data string
			if err := json.Unmarshal(raw, &data); err != nil {
				return &ParseError{Input: string(raw), Err: err}
			}
			if err := g.AddStatement(Statement{Kind: StatementLiteral, Subject: path, Data: data}); err != nil {
				return err
			}
			continue
		}

		label, err := ParseXri(key)
		if err != nil {
			return &ParseError{Input: key, Err: err}
		}

		if isJSONString(raw) {
			var target string
			if err := json.Unmarshal(raw, &target); err != nil {
				return &ParseError{Input: string(raw), Err: err}
			}
			object, err := ParseXri(target)
			if err != nil {
				return &ParseError{Input: target, Err: err}
			}
			if err := g.AddStatement(Statement{Kind: StatementRelation, Subject: path, Predicate: label, Object: object}); err != nil {
				return err
			}
			continue
		}

		var child jsonObjectNode
		if err := json.Unmarshal(raw, &child); err != nil {
			return &ParseError{Input: string(raw), Err: err}
		}
		childPath := path.Concat(label)
		if err := g.AddStatement(Statement{Kind: StatementContextNode, Subject: path, Predicate: contextMarker, Object: childPath}); err != nil {
			return err
		}
		if err := populateObject(g, childPath, child); err != nil {
			return err
		}
	}
	return nil
}

func isJSONString(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return true
		default:
			return false
		}
	}
	return false
}
