package scfg

import (
	"io"
	"strings"

	"github.com/chazu/scfg/pkg/shellwords"
)

// Write serializes the document to w as scfg text. Directives are
// emitted in the document's name iteration order, indented one tab per
// nesting depth, with names and parameters re-quoted as needed. Comments
// present in parsed input are never written back. If efficiency matters
// it may be best to hand Write a buffered writer.
func (d *Document) Write(w io.Writer) error {
	return d.writeIndent(w, 0)
}

func (d *Document) writeIndent(w io.Writer, indent int) error {
	// A blank line separates a closed block from whatever follows it.
	prefix := ""
	for _, name := range d.names {
		for _, dir := range d.buckets[name] {
			if _, err := io.WriteString(w, prefix); err != nil {
				return err
			}
			prefix = ""
			if _, err := io.WriteString(w, strings.Repeat("\t", indent)); err != nil {
				return err
			}
			if _, err := io.WriteString(w, shellwords.Quote(name)); err != nil {
				return err
			}
			for _, param := range dir.params {
				if _, err := io.WriteString(w, " "+shellwords.Quote(param)); err != nil {
					return err
				}
			}

			if dir.child != nil {
				if _, err := io.WriteString(w, " {\n"); err != nil {
					return err
				}
				if err := dir.child.writeIndent(w, indent+1); err != nil {
					return err
				}
				if _, err := io.WriteString(w, strings.Repeat("\t", indent)+"}"); err != nil {
					return err
				}
				prefix = "\n"
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
