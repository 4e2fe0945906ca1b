package xdi2

import (
	"strings"
)

/*
xri.go implements the Identifier (XRI) model: a Segment is an ordered,
non-empty list of SubSegments, each carrying a class-symbol and a
literal body. The reserved root Segment, Root, represents the empty
identifier; concatenation with it is identity.
*/

// classSymbols enumerates the recognized XRI sub-segment class
// symbols. Any other leading rune is treated as a "bare" class (no
// symbol), which is permitted but not preferred.
const classSymbols = `=@+$!*`

/*
SubSegment is the atomic unit of a Segment: a class symbol (one of
`=`, `@`, `+`, `$`, `!`, `*`, or empty for a bare sub-segment) plus a
literal body.
*/
type SubSegment struct {
	Class string
	Body  string
}

// String renders the sub-segment in its canonical textual form.
func (s SubSegment) String() string {
	return s.Class + s.Body
}

// Equal reports structural equality between two sub-segments.
func (s SubSegment) Equal(o SubSegment) bool {
	return s.Class == o.Class && s.Body == o.Body
}

// IsVariable reports whether this sub-segment is the reserved
// single-sub-segment wildcard `*` used in variable-mode matching.
func (s SubSegment) IsVariable() bool {
	return s.Class == "*" && s.Body == ""
}

/*
Segment is an ordered, non-empty list of SubSegments. The Root
Segment (no sub-segments) is the identity element of concatenation.
*/
type Segment struct {
	subs []SubSegment
}

// Root is the reserved identifier denoting the empty identifier `()`.
var Root = Segment{}

// NewSegment builds a Segment from explicit sub-segments.
func NewSegment(subs ...SubSegment) Segment {
	if len(subs) == 0 {
		return Root
	}
	cp := make([]SubSegment, len(subs))
	copy(cp, subs)
	return Segment{subs: cp}
}

/*
ParseXri parses the textual form of an identifier into a Segment.
Sub-segments are delimited by their leading class symbol; a run of
characters preceding the first recognized class symbol is treated as
a single bare sub-segment. A zero-length input, or input consisting
only of whitespace, yields the Root segment with no error -- callers
that must distinguish "explicitly empty" from "absent" should check
the input before calling.
*/
func ParseXri(s string) (Segment, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s == "()" {
		return Root, nil
	}

	var subs []SubSegment
	i := 0
	for i < len(s) {
		class := ""
		if strings.ContainsRune(classSymbols, rune(s[i])) {
			class = string(s[i])
			i++
		}
		start := i
		for i < len(s) && !strings.ContainsRune(classSymbols, rune(s[i])) {
			i++
		}
		body := s[start:i]
		if len(class) == 0 && len(body) == 0 {
			return Root, &ParseError{Input: s, Err: ErrEmptyIdentifier}
		}
		subs = append(subs, SubSegment{Class: class, Body: body})
	}
	if len(subs) == 0 {
		return Root, &ParseError{Input: s, Err: ErrEmptyIdentifier}
	}
	return Segment{subs: subs}, nil
}

// MustParseXri is a convenience wrapper that panics on a parse error;
// it exists for constructing test fixtures and package-level
// constants, never for handling caller-supplied input.
func MustParseXri(s string) Segment {
	seg, err := ParseXri(s)
	if err != nil {
		panic(err)
	}
	return seg
}

// NewXri is an alias of MustParseXri used at call sites that are
// constructing a known-good literal address.
func NewXri(s string) Segment { return MustParseXri(s) }

// IsRoot reports whether the segment is the reserved empty identifier.
func (x Segment) IsRoot() bool { return len(x.subs) == 0 }

// Len returns the number of sub-segments in x.
func (x Segment) Len() int { return len(x.subs) }

// SubSegmentAt returns the i'th sub-segment (0-indexed). A negative or
// out-of-range i returns the zero SubSegment.
func (x Segment) SubSegmentAt(i int) SubSegment {
	if i < 0 || i >= len(x.subs) {
		return SubSegment{}
	}
	return x.subs[i]
}

// String renders the identifier in its canonical textual form.
func (x Segment) String() string {
	if x.IsRoot() {
		return "()"
	}
	var b strings.Builder
	for _, s := range x.subs {
		b.WriteString(s.String())
	}
	return b.String()
}

// Equal reports structural equality between two identifiers.
func (x Segment) Equal(o Segment) bool {
	if len(x.subs) != len(o.subs) {
		return false
	}
	for i := range x.subs {
		if !x.subs[i].Equal(o.subs[i]) {
			return false
		}
	}
	return true
}

// Concat appends o's sub-segments to x. Concatenation with Root on
// either side is identity.
func (x Segment) Concat(o Segment) Segment {
	if x.IsRoot() {
		return o
	}
	if o.IsRoot() {
		return x
	}
	subs := make([]SubSegment, 0, len(x.subs)+len(o.subs))
	subs = append(subs, x.subs...)
	subs = append(subs, o.subs...)
	return Segment{subs: subs}
}

/*
ParentXri returns the prefix of x of length n. A negative n counts
sub-segments from the tail (ParentXri(-1) drops the last sub-segment).
n == 0 returns x unchanged. A result that would consume the whole
identifier, or more, returns x; a result that would be empty returns
Root.
*/
func (x Segment) ParentXri(n int) Segment {
	if n == 0 {
		return x
	}
	total := len(x.subs)
	var k int
	if n > 0 {
		k = n
	} else {
		k = total + n
	}
	if k <= 0 {
		return Root
	}
	if k >= total {
		return x
	}
	return Segment{subs: append([]SubSegment(nil), x.subs[:k]...)}
}

/*
LocalXri returns the suffix of x of length n, symmetric with
ParentXri: a negative n counts from the head.
*/
func (x Segment) LocalXri(n int) Segment {
	if n == 0 {
		return x
	}
	total := len(x.subs)
	var k int
	if n > 0 {
		k = n
	} else {
		k = total + n
	}
	if k <= 0 {
		return Root
	}
	if k >= total {
		return x
	}
	return Segment{subs: append([]SubSegment(nil), x.subs[total-k:]...)}
}

/*
matchSubSegment compares a and b under the variable-mode rules: if
varA (resp. varB) is enabled and a (resp. b) is the `*` wildcard, it
matches any single sub-segment on the other side. Structural equality
is required otherwise.
*/
func matchSubSegment(a, b SubSegment, varA, varB bool) bool {
	if varA && a.IsVariable() {
		return true
	}
	if varB && b.IsVariable() {
		return true
	}
	return a.Equal(b)
}

/*
StartsWith reports whether prefix is a prefix of x, returning the
consumed prefix (as actually present in x -- relevant when variable
mode substitutes wildcards) and true on a match, or the zero Segment
and false otherwise. varsInXri/varsInPrefix enable wildcard matching
of `*` sub-segments found in x or prefix respectively.
*/
func StartsWith(x, prefix Segment, varsInXri, varsInPrefix bool) (Segment, bool) {
	if prefix.IsRoot() {
		return Root, true
	}
	if len(prefix.subs) > len(x.subs) {
		return Segment{}, false
	}
	for i, ps := range prefix.subs {
		if !matchSubSegment(x.subs[i], ps, varsInXri, varsInPrefix) {
			return Segment{}, false
		}
	}
	return Segment{subs: append([]SubSegment(nil), x.subs[:len(prefix.subs)]...)}, true
}

/*
EndsWith is the suffix-side symmetric counterpart of StartsWith.
*/
func EndsWith(x, suffix Segment, varsInXri, varsInSuffix bool) (Segment, bool) {
	if suffix.IsRoot() {
		return Root, true
	}
	if len(suffix.subs) > len(x.subs) {
		return Segment{}, false
	}
	offset := len(x.subs) - len(suffix.subs)
	for i, ss := range suffix.subs {
		if !matchSubSegment(x.subs[offset+i], ss, varsInXri, varsInSuffix) {
			return Segment{}, false
		}
	}
	return Segment{subs: append([]SubSegment(nil), x.subs[offset:]...)}, true
}

/*
RemoveStartXri subtracts a matching prefix from x and returns the
remainder -- Root if prefix consumed the whole identifier, or the zero
Segment and false if prefix does not match the start of x at all.
*/
func RemoveStartXri(x, prefix Segment, varsInXri, varsInPrefix bool) (Segment, bool) {
	matched, ok := StartsWith(x, prefix, varsInXri, varsInPrefix)
	if !ok {
		return Segment{}, false
	}
	return x.LocalXri(-matched.Len()), true
}

/*
RemoveEndXri subtracts a matching suffix from x and returns the
remainder, symmetric with RemoveStartXri.
*/
func RemoveEndXri(x, suffix Segment, varsInXri, varsInSuffix bool) (Segment, bool) {
	matched, ok := EndsWith(x, suffix, varsInXri, varsInSuffix)
	if !ok {
		return Segment{}, false
	}
	return x.ParentXri(-matched.Len()), true
}

/*
CompareAscending orders two identifiers by ascending length, with
ties broken lexicographically by their canonical string form.
*/
func CompareAscending(a, b Segment) int {
	if a.Len() != b.Len() {
		if a.Len() < b.Len() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

/*
CompareDescending orders two identifiers by descending length, with
ties broken in ascending lexicographic order (same-length keys do not
reverse their tie-break direction). This is the ordering key used by
the contributor map so that iteration visits longer (more specific)
prefixes first.
*/
func CompareDescending(a, b Segment) int {
	if a.Len() != b.Len() {
		if a.Len() > b.Len() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}
