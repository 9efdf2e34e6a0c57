package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// writeListing writes lines under root/rel and returns the absolute path.
func writeListing(t *testing.T, root, rel string, lines ...string) m.Path {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	return m.Path(path)
}

func readLines(t *testing.T, path m.Path) []string {
	t.Helper()

	buf, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return strings.Split(strings.TrimSuffix(string(buf), "\n"), "\n")
}

func readFile(t *testing.T, path m.Path) string {
	t.Helper()

	buf, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return string(buf)
}

func fooBarListing() []string {
	return []string{
		".class public Lcom/example/Sample;",
		".super Ljava/lang/Object;",
		"",
		".method public foo()Z",
		"    .registers 3",
		"",
		"    invoke-static {}, Lcom/example/Check;->run()Z",
		"    move-result v0",
		"",
		"    return v0",
		".end method",
		"",
		".method public bar()V",
		"    .registers 1",
		"",
		"    return-void",
		".end method",
	}
}

func overloadListing() []string {
	return []string{
		".class public Lcom/example/Over;",
		".super Ljava/lang/Object;",
		"",
		".method public check()Z",
		"    .registers 4",
		"    const/4 v0, 0x0",
		"    return v0",
		".end method",
		"",
		".method public other()V",
		"    .locals 0",
		"    return-void",
		".end method",
		"",
		".method public check(I)Z",
		"    .registers 2",
		"    return v1",
		".end method",
		"",
		".method public static check(Ljava/lang/String;[B)Z",
		"    .registers 6",
		"    const/4 v0, 0x0",
		"    const/4 v1, 0x1",
		"    if-eqz v0, :cond_0",
		"    return v1",
		"    :cond_0",
		"    return v0",
		".end method",
		"",
		".method public tail()V",
		"    .locals 0",
		"    return-void",
		".end method",
	}
}
