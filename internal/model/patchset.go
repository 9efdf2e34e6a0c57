package model

// PatchSetVersion is the patch set file format understood by this build.
const PatchSetVersion = 1

// PatchSetSpec is the declarative form of an ordered list of patch
// operations, as read from a patch set file.
type PatchSetSpec struct {
	Version    int             `yaml:"version"`
	Name       string          `yaml:"name"`
	Operations []OperationSpec `yaml:"operations"`
}

// OperationSpec names one target and the transform to run on it.
type OperationSpec struct {
	Name      string        `yaml:"name"`
	Class     string        `yaml:"class"`
	Method    string        `yaml:"method,omitempty"`
	Params    []string      `yaml:"params,omitempty"`
	Scope     Scope         `yaml:"scope,omitempty"`
	Contains  string        `yaml:"contains,omitempty"`
	Transform TransformSpec `yaml:"transform"`

	// Source and Line locate the operation in its patch set file.
	Source Path `yaml:"-"`
	Line   int  `yaml:"-"`
}

// TransformSpec holds exactly one transform definition.
type TransformSpec struct {
	ForceReturn            string            `yaml:"force_return,omitempty"`
	InsertBefore           *AnchorSpec       `yaml:"insert_before,omitempty"`
	InsertAfter            *AnchorSpec       `yaml:"insert_after,omitempty"`
	InsertBeforeBranch     *BranchInsertSpec `yaml:"insert_before_branch,omitempty"`
	ReplaceResultAfterCall *CallResultSpec   `yaml:"replace_result_after_call,omitempty"`
	RemoveBranchAndLabel   *BranchRemoveSpec `yaml:"remove_branch_and_label,omitempty"`
}

// AnchorSpec parametrizes insert_before and insert_after.
type AnchorSpec struct {
	Anchor string `yaml:"anchor"`
	Line   string `yaml:"line"`
}

// BranchInsertSpec parametrizes insert_before_branch.
type BranchInsertSpec struct {
	Marker string `yaml:"marker"`
	Branch string `yaml:"branch,omitempty"`
	Line   string `yaml:"line"`
}

// CallResultSpec parametrizes replace_result_after_call.
type CallResultSpec struct {
	Call string `yaml:"call"`
	Line string `yaml:"line"`
}

// BranchRemoveSpec parametrizes remove_branch_and_label.
type BranchRemoveSpec struct {
	Call   string `yaml:"call"`
	Branch string `yaml:"branch,omitempty"`
}

// RunReport is what an apply run persists for later inspection.
type RunReport struct {
	PatchSets []Path
	DryRun    bool
	Results   []OperationResult
	Sanitize  *SanitizeResult
}
