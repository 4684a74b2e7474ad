// Package span turns an editor (line, character) position into a backend
// Span by scanning the VFS-provided line text for the identifier under the
// caret (spec §4.3).
package span

import (
	"fmt"
	"strings"

	"rlscore/protocol"
)

// LineSource is the narrow VFS surface the resolver needs.
type LineSource interface {
	// GetLine returns the text of a given zero-based line in path, or
	// ok=false if the line (or file) is not present in the overlay.
	GetLine(path string, line int) (text string, ok bool)
}

// isIdentChar matches the source language's identifier character set:
// alphanumeric or underscore.
func isIdentChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// StripFileURI removes the file:// prefix from uri verbatim — no
// percent-decoding, no authority parsing (spec §6, §9).
func StripFileURI(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// Resolve produces the Span delimiting the identifier under the caret at
// pos on the document identified by uri. Returns an error if the VFS has no
// text for that line.
func Resolve(lines LineSource, uri string, pos protocol.Position) (protocol.Span, error) {
	path := StripFileURI(uri)

	line, ok := lines.GetLine(path, pos.Line)
	if !ok {
		return protocol.Span{}, fmt.Errorf("span: no line %d in %s", pos.Line, path)
	}

	runes := []rune(line)

	pastEOL := pos.Character >= len(runes)
	onIdent := !pastEOL && isIdentChar(runes[pos.Character])

	// Start column: one past the most recent non-identifier character
	// strictly before the caret, scanning left-to-right; defaults to
	// column 1 if none is found.
	startColumn := 1
	for i, c := range runes {
		if i == pos.Character {
			break
		}
		if !isIdentChar(c) {
			startColumn = i + 2
		}
	}

	// End column: one past the last identifier character in the
	// contiguous run starting at the caret.
	endColumn := pos.Character + 1
	for i := pos.Character; i < len(runes); i++ {
		if !isIdentChar(runes[i]) {
			break
		}
		endColumn = i + 2
	}

	switch {
	case pastEOL:
		// Caret past end-of-line: end column equals character.
		endColumn = pos.Character
	case !onIdent:
		// Caret sits on a non-identifier character: start and end
		// collapse to the caret's zero-based character index.
		startColumn = pos.Character
		endColumn = pos.Character
	}

	return protocol.Span{
		FileName:    path,
		LineStart:   pos.Line,
		ColumnStart: startColumn,
		LineEnd:     pos.Line,
		ColumnEnd:   endColumn,
	}, nil
}

// RangeToSpan converts an editor Range directly into a one-based Span
// without identifier scanning — the coordinate mapping a didChange edit
// needs, as opposed to Resolve's "find the identifier under the caret"
// mapping for hover/definition/references.
func RangeToSpan(path string, r protocol.Range) protocol.Span {
	return protocol.Span{
		FileName:    path,
		LineStart:   r.Start.Line,
		ColumnStart: r.Start.Character + 1,
		LineEnd:     r.End.Line,
		ColumnEnd:   r.End.Character + 1,
	}
}

// ToLocation converts a one-based backend Span back into the zero-based
// Location the wire protocol uses, the inverse of the column half of
// RangeToSpan/Resolve.
func ToLocation(s protocol.Span) protocol.Location {
	return protocol.Location{
		URI: "file://" + s.FileName,
		Range: protocol.Range{
			Start: protocol.Position{Line: s.LineStart, Character: s.ColumnStart - 1},
			End:   protocol.Position{Line: s.LineEnd, Character: s.ColumnEnd - 1},
		},
	}
}
