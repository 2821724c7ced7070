package models

// BranchStyle selects how branch filters are written into a workflow.
type BranchStyle string

const (
	// BranchStyleJoined writes all branch names as a single space separated sequence item.
	// This is the legacy workflow format and the default.
	BranchStyleJoined BranchStyle = "joined"
	// BranchStyleList writes one sequence item per branch name.
	BranchStyleList BranchStyle = "list"
)

func (s BranchStyle) String() string {
	return string(s)
}

func (s BranchStyle) Valid() bool {
	return s == BranchStyleJoined || s == BranchStyleList
}

// Workflow is a GitHub Actions workflow document.
type Workflow struct {
	Name string           `yaml:"name"`
	On   WorkflowTriggers `yaml:"on"`
	Jobs WorkflowJobs     `yaml:"jobs"`
}

type WorkflowTriggers struct {
	Push        BranchFilter `yaml:"push"`
	PullRequest BranchFilter `yaml:"pull_request"`
}

type BranchFilter struct {
	Branches []string `yaml:"branches"`
}

type WorkflowJobs struct {
	Build WorkflowJob `yaml:"build"`
}

type WorkflowJob struct {
	RunsOn string         `yaml:"runs-on"`
	Steps  []WorkflowStep `yaml:"steps"`
}

type WorkflowStep struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}
