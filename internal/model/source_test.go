package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListing(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lines    []string
		trailing bool
		crlf     bool
	}{
		{"empty", "", nil, false, false},
		{"lf", ".class LFoo;\n.super LBar;\n", []string{".class LFoo;", ".super LBar;"}, true, false},
		{"lf without final newline", ".class LFoo;\n.super LBar;", []string{".class LFoo;", ".super LBar;"}, false, false},
		{"crlf", ".class LFoo;\r\n\r\n.super LBar;\r\n", []string{".class LFoo;", "", ".super LBar;"}, true, true},
		{"crlf without final newline", ".class LFoo;\r\n.super LBar;", []string{".class LFoo;", ".super LBar;"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := ParseListing("Foo.smali", []byte(tt.content))

			assert.Equal(t, tt.lines, listing.Lines)
			assert.Equal(t, tt.trailing, listing.TrailingNewline)
			assert.Equal(t, tt.crlf, listing.CRLF)
			assert.Equal(t, tt.content, string(listing.Bytes()))
		})
	}
}

func TestListing_BytesKeepsCRLFForNewLines(t *testing.T) {
	listing := ParseListing("Foo.smali", []byte(".method foo()V\r\n    return-void\r\n.end method\r\n"))

	listing.Lines = append(listing.Lines[:1], append([]string{"    nop"}, listing.Lines[1:]...)...)

	assert.Equal(t, ".method foo()V\r\n    nop\r\n    return-void\r\n.end method\r\n", string(listing.Bytes()))
	assert.Equal(t, "\r\n", listing.LineEnding())
}

func TestMethodBoundary_Len(t *testing.T) {
	assert.Equal(t, 5, MethodBoundary{Start: 3, End: 7}.Len())
}
