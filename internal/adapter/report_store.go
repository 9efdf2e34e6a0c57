package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.RunReport) error
	LoadReport(ctx context.Context, path m.Path) (m.RunReport, error)
}

// YAMLReportStore stores reports as YAML documents.
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

type reportDocument struct {
	PatchSets []string          `yaml:"patch_sets"`
	DryRun    bool              `yaml:"dry_run"`
	Summary   summaryDocument   `yaml:"summary"`
	Results   []resultDocument  `yaml:"results"`
	Sanitize  *sanitizeDocument `yaml:"sanitize,omitempty"`
}

type summaryDocument struct {
	Applied   int `yaml:"applied"`
	Unchanged int `yaml:"unchanged"`
	NotFound  int `yaml:"not_found"`
	Failed    int `yaml:"failed"`
}

type resultDocument struct {
	Name      string `yaml:"name"`
	Class     string `yaml:"class"`
	Method    string `yaml:"method,omitempty"`
	Scope     string `yaml:"scope"`
	Transform string `yaml:"transform"`
	Path      string `yaml:"path,omitempty"`
	Status    string `yaml:"status"`
	Modified  int    `yaml:"modified"`
	Error     string `yaml:"error,omitempty"`
	Diff      string `yaml:"diff,omitempty"`
}

type sanitizeDocument struct {
	Scanned   int               `yaml:"scanned"`
	Triggered int               `yaml:"triggered"`
	Rewritten int               `yaml:"rewritten"`
	Methods   int               `yaml:"methods"`
	Errors    map[string]string `yaml:"errors,omitempty"`
}

// SaveReport writes report to path, creating parent directories.
func (s *YAMLReportStore) SaveReport(_ context.Context, path m.Path, report m.RunReport) error {
	buf, err := yaml.Marshal(toReportDocument(report))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	if err := os.WriteFile(string(path), buf, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads a report written by SaveReport. Errors come back as
// plain messages.
func (s *YAMLReportStore) LoadReport(_ context.Context, path m.Path) (m.RunReport, error) {
	// #nosec G304 - report path is given on the command line
	buf, err := os.ReadFile(string(path))
	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var doc reportDocument
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report: %w", err)
	}

	return fromReportDocument(doc)
}

func toReportDocument(report m.RunReport) reportDocument {
	tally := m.NewTally(report.Results)

	doc := reportDocument{
		DryRun: report.DryRun,
		Summary: summaryDocument{
			Applied:   tally.Applied,
			Unchanged: tally.Unchanged,
			NotFound:  tally.NotFound,
			Failed:    tally.Failed,
		},
		Results: make([]resultDocument, 0, len(report.Results)),
	}

	for _, p := range report.PatchSets {
		doc.PatchSets = append(doc.PatchSets, string(p))
	}

	for _, r := range report.Results {
		rd := resultDocument{
			Name:      r.Name,
			Class:     r.Class,
			Method:    r.Method,
			Scope:     string(r.Scope),
			Transform: r.Transform,
			Path:      string(r.Path),
			Status:    r.Status.String(),
			Modified:  r.Modified,
			Diff:      r.Diff,
		}
		if r.Err != nil {
			rd.Error = r.Err.Error()
		}

		doc.Results = append(doc.Results, rd)
	}

	if s := report.Sanitize; s != nil {
		sd := &sanitizeDocument{
			Scanned:   s.Scanned,
			Triggered: s.Triggered,
			Rewritten: s.Rewritten,
			Methods:   s.Methods,
		}

		if len(s.Errors) > 0 {
			sd.Errors = make(map[string]string, len(s.Errors))
			for p, err := range s.Errors {
				sd.Errors[string(p)] = err.Error()
			}
		}

		doc.Sanitize = sd
	}

	return doc
}

func fromReportDocument(doc reportDocument) (m.RunReport, error) {
	report := m.RunReport{DryRun: doc.DryRun}

	for _, p := range doc.PatchSets {
		report.PatchSets = append(report.PatchSets, m.Path(p))
	}

	for i, rd := range doc.Results {
		status, err := m.ParseOperationStatus(rd.Status)
		if err != nil {
			return m.RunReport{}, fmt.Errorf("result %d: %w", i+1, err)
		}

		r := m.OperationResult{
			Name:      rd.Name,
			Class:     rd.Class,
			Method:    rd.Method,
			Scope:     m.Scope(rd.Scope),
			Transform: rd.Transform,
			Path:      m.Path(rd.Path),
			Status:    status,
			Modified:  rd.Modified,
			Diff:      rd.Diff,
		}
		if rd.Error != "" {
			r.Err = errors.New(rd.Error)
		}

		report.Results = append(report.Results, r)
	}

	if sd := doc.Sanitize; sd != nil {
		s := &m.SanitizeResult{
			Scanned:   sd.Scanned,
			Triggered: sd.Triggered,
			Rewritten: sd.Rewritten,
			Methods:   sd.Methods,
			Errors:    make(map[m.Path]error, len(sd.Errors)),
		}

		for p, msg := range sd.Errors {
			s.Errors[m.Path(p)] = errors.New(msg)
		}

		report.Sanitize = s
	}

	return report, nil
}
