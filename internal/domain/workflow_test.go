package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	adaptermocks "smalipatch.dev/pkg/smalipatch/internal/adapter/mocks"
	controllermocks "smalipatch.dev/pkg/smalipatch/internal/controller/mocks"
	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

const sampleListing = `.class public Lcom/example/Sample;
.super Ljava/lang/Object;

.method public foo()Z
    .registers 3
    invoke-static {}, Lcom/example/Check;->run()Z
    move-result v0
    return v0
.end method

.method public bar()V
    .registers 1
    return-void
.end method
`

const samplePatchSet = `version: 1
name: sample
operations:
  - name: force-foo
    class: com.example.Sample
    method: foo
    transform:
      force_return: "true"
  - name: missing
    class: com.example.Missing
    method: foo
    transform:
      force_return: "false"
`

type workflowFixture struct {
	root      string
	listing   m.Path
	patchSet  m.Path
	ui        *controllermocks.MockUI
	toolchain *adaptermocks.MockToolchainAdapter
	workflow  domain.Workflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	root := t.TempDir()
	listing := filepath.Join(root, "classes", "com", "example", "Sample.smali")
	require.NoError(t, os.MkdirAll(filepath.Dir(listing), 0o755))
	require.NoError(t, os.WriteFile(listing, []byte(sampleListing), 0o644))

	patchSet := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(patchSet, []byte(samplePatchSet), 0o644))

	ui := controllermocks.NewMockUI(t)
	toolchain := adaptermocks.NewMockToolchainAdapter(t)

	return &workflowFixture{
		root:      root,
		listing:   m.Path(listing),
		patchSet:  m.Path(patchSet),
		ui:        ui,
		toolchain: toolchain,
		workflow: domain.NewWorkflow(
			adapter.NewLocalListingFSAdapter(),
			adapter.NewYAMLPatchSetLoader(),
			adapter.NewReportStore(),
			toolchain,
			ui,
		),
	}
}

func (f *workflowFixture) expectResults(t *testing.T) {
	t.Helper()

	f.ui.EXPECT().DisplayOperationResult(mock.Anything, mock.MatchedBy(func(r m.OperationResult) bool {
		return r.Name == "force-foo" && r.Status == m.Applied
	})).Return().Once()
	f.ui.EXPECT().DisplayOperationResult(mock.Anything, mock.MatchedBy(func(r m.OperationResult) bool {
		return r.Name == "missing" && r.Status == m.NotFound
	})).Return().Once()
	f.ui.EXPECT().DisplaySummary(mock.Anything, mock.MatchedBy(func(rs []m.OperationResult) bool {
		return len(rs) == 2
	})).Return(nil).Once()
}

func TestWorkflow_Apply(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectResults(t)

	report := m.Path(filepath.Join(t.TempDir(), "out", "report.yaml"))

	err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
		Root:      m.Path(f.root),
		PatchSets: []m.Path{f.patchSet},
		Report:    report,
	})
	require.NoError(t, err)

	buf, err := os.ReadFile(string(f.listing))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "    const/4 v0, 0x1\n    return v0\n")
	assert.NotContains(t, string(buf), "move-result v0")

	saved, err := adapter.NewReportStore().LoadReport(context.Background(), report)
	require.NoError(t, err)
	require.Len(t, saved.Results, 2)
	assert.Equal(t, m.Applied, saved.Results[0].Status)
	assert.Equal(t, m.NotFound, saved.Results[1].Status)
	assert.Contains(t, saved.Results[1].Err.Error(), "class not found")
}

func TestWorkflow_Apply_DryRun(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectResults(t)

	err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
		Root:      m.Path(f.root),
		PatchSets: []m.Path{f.patchSet},
		DryRun:    true,
		Diff:      true,
	})
	require.NoError(t, err)

	buf, err := os.ReadFile(string(f.listing))
	require.NoError(t, err)
	assert.Equal(t, sampleListing, string(buf))
}

func TestWorkflow_Apply_Strict(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectResults(t)

	err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
		Root:      m.Path(f.root),
		PatchSets: []m.Path{f.patchSet},
		Strict:    true,
	})
	require.ErrorIs(t, err, domain.ErrStrict)
	assert.Contains(t, err.Error(), "1 not found")
}

func TestWorkflow_Apply_WithSanitize(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectResults(t)
	f.ui.EXPECT().DisplaySanitizeResult(mock.Anything, mock.MatchedBy(func(r m.SanitizeResult) bool {
		return r.Scanned == 1 && r.Triggered == 0
	})).Return(nil).Once()

	err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
		Root:      m.Path(f.root),
		PatchSets: []m.Path{f.patchSet},
		Sanitize:  true,
	})
	require.NoError(t, err)
}

func TestWorkflow_Apply_LoadErrors(t *testing.T) {
	f := newWorkflowFixture(t)

	t.Run("missing file", func(t *testing.T) {
		err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
			Root:      m.Path(f.root),
			PatchSets: []m.Path{m.Path(filepath.Join(t.TempDir(), "nope.yaml"))},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load patch set")
	})

	t.Run("invalid operation", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte(strings.ReplaceAll(samplePatchSet, "method: foo\n    transform", "transform")), 0o644))

		err := f.workflow.Apply(context.Background(), domain.ApplyArgs{
			Root:      m.Path(f.root),
			PatchSets: []m.Path{m.Path(bad)},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a method")
	})

	t.Run("no patch set", func(t *testing.T) {
		err := f.workflow.Apply(context.Background(), domain.ApplyArgs{Root: m.Path(f.root)})
		require.Error(t, err)
	})
}

func TestWorkflow_Sanitize(t *testing.T) {
	f := newWorkflowFixture(t)
	f.ui.EXPECT().DisplaySanitizeResult(mock.Anything, mock.MatchedBy(func(r m.SanitizeResult) bool {
		return r.Scanned == 1
	})).Return(nil).Once()

	err := f.workflow.Sanitize(context.Background(), domain.SanitizeArgs{Roots: []m.Path{m.Path(f.root)}})
	require.NoError(t, err)
}

func TestWorkflow_Locate(t *testing.T) {
	f := newWorkflowFixture(t)

	t.Run("all methods", func(t *testing.T) {
		f.ui.EXPECT().DisplayMethods(mock.Anything, f.listing, mock.MatchedBy(func(bs []m.MethodBoundary) bool {
			return len(bs) == 2 && bs[0].Signature == "foo()Z" && bs[1].Start == 10
		})).Return(nil).Once()

		err := f.workflow.Locate(context.Background(), domain.LocateArgs{Root: m.Path(f.root), Class: "Lcom/example/Sample;"})
		require.NoError(t, err)
	})

	t.Run("one method", func(t *testing.T) {
		f.ui.EXPECT().DisplayMethods(mock.Anything, f.listing, mock.MatchedBy(func(bs []m.MethodBoundary) bool {
			return len(bs) == 1 && bs[0].Name == "bar"
		})).Return(nil).Once()

		err := f.workflow.Locate(context.Background(), domain.LocateArgs{Root: m.Path(f.root), Class: "com.example.Sample", Method: "bar"})
		require.NoError(t, err)
	})

	t.Run("unknown class", func(t *testing.T) {
		err := f.workflow.Locate(context.Background(), domain.LocateArgs{Root: m.Path(f.root), Class: "com.example.Unknown"})
		require.ErrorIs(t, err, m.ErrClassNotFound)
	})
}

func TestWorkflow_Build(t *testing.T) {
	f := newWorkflowFixture(t)
	f.expectResults(t)

	dexDir := t.TempDir()
	for _, name := range []string{"classes.dex", "classes2.dex", "resources.arsc"} {
		require.NoError(t, os.WriteFile(filepath.Join(dexDir, name), []byte("dex"), 0o644))
	}

	out := t.TempDir()

	var workDirs []string

	f.toolchain.EXPECT().Disassemble(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, dex, outDir m.Path) (string, error) {
			workDirs = append(workDirs, string(outDir))
			if filepath.Base(string(dex)) != "classes.dex" {
				return "", os.MkdirAll(string(outDir), 0o755)
			}

			listing := filepath.Join(string(outDir), "com", "example", "Sample.smali")
			if err := os.MkdirAll(filepath.Dir(listing), 0o755); err != nil {
				return "", err
			}

			return "", os.WriteFile(listing, []byte(sampleListing), 0o644)
		}).Times(2)

	f.ui.EXPECT().DisplayBuildStep(mock.Anything, "disassemble", mock.Anything).Return().Times(2)
	f.ui.EXPECT().DisplayBuildStep(mock.Anything, "assemble", mock.Anything).Return().Times(2)

	f.toolchain.EXPECT().Assemble(mock.Anything, mock.Anything, m.Path(filepath.Join(out, "classes.dex"))).
		RunAndReturn(func(_ context.Context, dir, _ m.Path) (string, error) {
			buf, err := os.ReadFile(filepath.Join(string(dir), "com", "example", "Sample.smali"))
			if err != nil {
				return "", err
			}

			if !strings.Contains(string(buf), "const/4 v0, 0x1") {
				return "", errors.New("listing was not patched before assembly")
			}

			return "", nil
		}).Once()
	f.toolchain.EXPECT().Assemble(mock.Anything, mock.Anything, m.Path(filepath.Join(out, "classes2.dex"))).
		Return("", nil).Once()

	err := f.workflow.Build(context.Background(), domain.BuildArgs{
		DexDir:    m.Path(dexDir),
		Output:    m.Path(out),
		PatchSets: []m.Path{f.patchSet},
	})
	require.NoError(t, err)

	require.Len(t, workDirs, 2)
	assert.Equal(t, "classes", filepath.Base(workDirs[0]))
	assert.Equal(t, "classes2", filepath.Base(workDirs[1]))

	_, statErr := os.Stat(filepath.Dir(workDirs[0]))
	assert.True(t, os.IsNotExist(statErr), "work directory must be removed")
}

func TestWorkflow_Build_DisassembleFails(t *testing.T) {
	f := newWorkflowFixture(t)

	dexDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dexDir, "classes.dex"), []byte("dex"), 0o644))

	f.ui.EXPECT().DisplayBuildStep(mock.Anything, "disassemble", mock.Anything).Return().Once()
	f.toolchain.EXPECT().Disassemble(mock.Anything, mock.Anything, mock.Anything).
		Return("bad dex", errors.New("exit status 2")).Once()

	err := f.workflow.Build(context.Background(), domain.BuildArgs{DexDir: m.Path(dexDir), PatchSets: []m.Path{f.patchSet}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disassemble")
}

func TestWorkflow_Build_NoDex(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.workflow.Build(context.Background(), domain.BuildArgs{DexDir: m.Path(t.TempDir()), PatchSets: []m.Path{f.patchSet}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no classes*.dex")
}

func TestWorkflow_View(t *testing.T) {
	f := newWorkflowFixture(t)

	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))
	require.NoError(t, adapter.NewReportStore().SaveReport(context.Background(), path, m.RunReport{
		Results: []m.OperationResult{{Name: "force-foo", Status: m.Applied, Modified: 1}},
		Sanitize: &m.SanitizeResult{Scanned: 3},
	}))

	f.ui.EXPECT().DisplaySanitizeResult(mock.Anything, mock.MatchedBy(func(r m.SanitizeResult) bool {
		return r.Scanned == 3
	})).Return(nil).Once()
	f.ui.EXPECT().DisplayOperationResult(mock.Anything, mock.MatchedBy(func(r m.OperationResult) bool {
		return r.Name == "force-foo" && r.Modified == 1
	})).Return().Once()
	f.ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, f.workflow.View(context.Background(), domain.ViewArgs{Report: path}))
}
