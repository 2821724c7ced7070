package models

// JobConfigFileSuffix is appended to a job name to form the name of the file holding its config.xml.
const JobConfigFileSuffix = "_config.xml"

// JobConfig is the subset of a Jenkins job's config.xml that is carried over into a workflow.
// Nothing here is validated; elements missing from the document are left nil or empty.
type JobConfig struct {
	JobName string
	// GitURL is the SCM remote, or nil if the job has no scm/url element.
	GitURL           *string
	BranchNames      []string
	BuildSteps       []string
	Triggers         []string
	PostBuildActions []string
}

// HasSCM returns true if the job has a git remote configured.
func (c *JobConfig) HasSCM() bool {
	return c.GitURL != nil
}
