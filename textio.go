package xdi2

import (
	"bufio"
	"io"
	"strings"
)

/*
textio.go implements the XDI/text serialization variant from spec §6:
one canonical subject/predicate/object statement per line.
*/

// TextWriter emits one canonical statement string per line, in the
// graph's own statement iteration order.
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, g Graph) error {
	bw := bufio.NewWriter(w)
	for _, s := range g.Statements() {
		if _, err := bw.WriteString(s.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TextReader parses one canonical statement per line back into a
// Graph, skipping blank lines.
type TextReader struct{}

func (TextReader) Read(r io.Reader, g Graph) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 {
			continue
		}
		stmt, err := ParseStatementStrict(line)
		if err != nil {
			return err
		}
		if err := g.AddStatement(stmt); err != nil {
			return err
		}
	}
	return sc.Err()
}
