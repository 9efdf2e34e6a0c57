package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// PatchSetLoader reads declarative patch sets.
type PatchSetLoader interface {
	LoadPatchSet(ctx context.Context, path m.Path) (m.PatchSetSpec, error)
}

// YAMLPatchSetLoader decodes patch sets from YAML files.
type YAMLPatchSetLoader struct{}

// NewYAMLPatchSetLoader constructs a YAMLPatchSetLoader.
func NewYAMLPatchSetLoader() *YAMLPatchSetLoader {
	return &YAMLPatchSetLoader{}
}

// LoadPatchSet reads and decodes the patch set at path.
func (l *YAMLPatchSetLoader) LoadPatchSet(_ context.Context, path m.Path) (m.PatchSetSpec, error) {
	// #nosec G304 - patch set paths are given on the command line
	buf, err := os.ReadFile(string(path))
	if err != nil {
		return m.PatchSetSpec{}, fmt.Errorf("read patch set: %w", err)
	}

	set, err := ParsePatchSet(path, buf)
	if err != nil {
		return m.PatchSetSpec{}, fmt.Errorf("%s: %w", path, err)
	}

	return set, nil
}

// ParsePatchSet decodes a patch set document. Unknown keys are rejected.
// Each operation is stamped with source and the line it starts on.
func ParsePatchSet(source m.Path, buf []byte) (m.PatchSetSpec, error) {
	var set m.PatchSetSpec

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	if err := dec.Decode(&set); err != nil {
		if errors.Is(err, io.EOF) {
			return set, errors.New("empty patch set")
		}

		return set, fmt.Errorf("decode patch set: %w", err)
	}

	// second pass for the line numbers
	var raw struct {
		Operations []yaml.Node `yaml:"operations"`
	}

	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return set, fmt.Errorf("decode patch set: %w", err)
	}

	if len(raw.Operations) != len(set.Operations) {
		return set, fmt.Errorf("decode patch set: expected %d operations, got %d line numbers",
			len(set.Operations), len(raw.Operations))
	}

	for i := range set.Operations {
		set.Operations[i].Source = source
		set.Operations[i].Line = raw.Operations[i].Line
	}

	if set.Version != 0 && set.Version != m.PatchSetVersion {
		return set, fmt.Errorf("unsupported patch set version %d", set.Version)
	}

	if len(set.Operations) == 0 {
		return set, errors.New("patch set has no operations")
	}

	return set, nil
}
