// Package model defines the data structures shared by the patch engine.
package model

import "strings"

// Path represents a file system path.
type Path string

// Listing is the full disassembly of one class, addressed by line.
type Listing struct {
	Path  Path
	Lines []string
	// TrailingNewline records whether the file ended with a newline so the
	// listing is written back byte-for-byte when nothing changed.
	TrailingNewline bool
	// CRLF is set when the first line ends with "\r\n". Lines are stored
	// without the "\r" and every line, inserted ones included, is written
	// back with "\r\n".
	CRLF bool
}

// ParseListing splits raw file content into a Listing.
func ParseListing(path Path, content []byte) *Listing {
	text := string(content)
	listing := &Listing{Path: path}

	if text == "" {
		return listing
	}

	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		listing.CRLF = true
	}

	if strings.HasSuffix(text, "\n") {
		listing.TrailingNewline = true
		text = strings.TrimSuffix(text, "\n")
	}

	listing.Lines = strings.Split(text, "\n")

	if listing.CRLF {
		for i, line := range listing.Lines {
			listing.Lines[i] = strings.TrimSuffix(line, "\r")
		}
	}

	return listing
}

// LineEnding returns the separator used when writing the listing.
func (l *Listing) LineEnding() string {
	if l.CRLF {
		return "\r\n"
	}

	return "\n"
}

// Bytes renders the listing back to file content.
func (l *Listing) Bytes() []byte {
	if len(l.Lines) == 0 {
		return nil
	}

	eol := l.LineEnding()

	text := strings.Join(l.Lines, eol)
	if l.TrailingNewline {
		text += eol
	}

	return []byte(text)
}

// Contains reports whether any line contains literal.
func (l *Listing) Contains(literal string) bool {
	for _, line := range l.Lines {
		if strings.Contains(line, literal) {
			return true
		}
	}

	return false
}

// MethodBoundary is the closed line interval [Start, End] of one method:
// Start is the .method declaration and End its .end method marker.
type MethodBoundary struct {
	Name      string
	Signature string
	Start     int
	End       int
}

// Len returns the number of lines spanned by the boundary.
func (b MethodBoundary) Len() int {
	return b.End - b.Start + 1
}
