package domain

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

const diffContext = 3

// UnifiedDiff renders the change of one listing as a classic unified patch
// with a/ and b/ prefixed headers. It returns "" when nothing changed.
func UnifiedDiff(path m.Path, before, after []string) string {
	name := strings.TrimPrefix(string(path), "/")

	u := difflib.UnifiedDiff{
		A:        withNewlines(before),
		B:        withNewlines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContext,
	}

	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return ""
	}

	return s
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}

	return out
}
