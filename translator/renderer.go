package translator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/models"
)

const (
	runnerImage     = "ubuntu-latest"
	checkoutAction  = "actions/checkout@v2"
	setupJavaAction = "actions/setup-java@v1"
	javaVersion     = "11"
)

// Renderer turns a JobConfig into the text of a GitHub Actions workflow. Rendering is a pure function
// of the JobConfig and the branch style.
type Renderer struct {
	branchStyle models.BranchStyle
}

func NewRenderer(branchStyle models.BranchStyle) (*Renderer, error) {
	if !branchStyle.Valid() {
		return nil, gerror.NewErrValidationFailed(
			fmt.Sprintf("unsupported branch style %q; expected %q or %q",
				branchStyle, models.BranchStyleJoined, models.BranchStyleList))
	}
	return &Renderer{branchStyle: branchStyle}, nil
}

// Render returns the workflow document for job. Triggers and post-build actions are recorded as
// comments only; they have no workflow equivalent here.
func (r *Renderer) Render(job *models.JobConfig) ([]byte, error) {
	switch r.branchStyle {
	case models.BranchStyleList:
		return r.renderList(job)
	default:
		return r.renderJoined(job)
	}
}

func (r *Renderer) renderJoined(job *models.JobConfig) ([]byte, error) {
	data := &workflowTemplateData{
		JobName:          job.JobName,
		Branches:         strings.Join(job.BranchNames, " "),
		BuildSteps:       strings.Join(job.BuildSteps, buildStepSeparator),
		Triggers:         strings.Join(job.Triggers, " "),
		PostBuildActions: strings.Join(job.PostBuildActions, " "),
	}
	buf := &bytes.Buffer{}
	err := joinedWorkflowTemplate.Execute(buf, structs.Map(data))
	if err != nil {
		return nil, errors.Wrap(err, "error executing workflow template")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderList(job *models.JobConfig) ([]byte, error) {
	branches := append([]string{}, job.BranchNames...)
	workflow := &models.Workflow{
		Name: job.JobName,
		On: models.WorkflowTriggers{
			Push:        models.BranchFilter{Branches: branches},
			PullRequest: models.BranchFilter{Branches: branches},
		},
		Jobs: models.WorkflowJobs{
			Build: models.WorkflowJob{
				RunsOn: runnerImage,
				Steps: []models.WorkflowStep{
					{Name: "Checkout repository", Uses: checkoutAction},
					{Name: "Set up JDK 11", Uses: setupJavaAction, With: map[string]string{"java-version": javaVersion}},
					{Name: "Run build steps", Run: strings.Join(job.BuildSteps, "\n")},
				},
			},
		},
	}
	out, err := yaml.Marshal(workflow)
	if err != nil {
		return nil, errors.Wrap(err, "error marshalling workflow to YAML")
	}
	buf := bytes.NewBuffer(out)
	writeCommentBlock(buf, "Triggers", job.Triggers)
	writeCommentBlock(buf, "Post-build actions", job.PostBuildActions)
	return buf.Bytes(), nil
}

func writeCommentBlock(buf *bytes.Buffer, title string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(buf, "# %s:\n", title)
	for _, value := range values {
		fmt.Fprintf(buf, "# %s\n", strings.ReplaceAll(value, "\n", "\n# "))
	}
}
