package translator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/models"
)

// expectedJoinedWorkflow is built line by line so that significant trailing whitespace stays visible.
var expectedJoinedWorkflow = strings.Join([]string{
	"",
	"name: hello",
	"",
	"on:",
	"  push:",
	"    branches:",
	"      - main",
	"  pull_request:",
	"    branches:",
	"      - main",
	"",
	"jobs:",
	"  build:",
	"    runs-on: ubuntu-latest",
	"",
	"    steps:",
	"    - name: Checkout repository",
	"      uses: actions/checkout@v2",
	"",
	"    - name: Set up JDK 11",
	"      uses: actions/setup-java@v1",
	"      with:",
	"        java-version: '11'",
	"",
	"    - name: Run build steps",
	"      run: |",
	"        echo hi",
	"    ",
}, "\n")

func newTestRenderer(t *testing.T, style models.BranchStyle) *Renderer {
	renderer, err := NewRenderer(style)
	require.NoError(t, err)
	return renderer
}

func TestRenderJoined(t *testing.T) {
	renderer := newTestRenderer(t, models.BranchStyleJoined)
	job, err := ParseJobConfig("hello_config.xml", []byte(`<project>
  <scm><url>https://x.git</url><branches><branch><name>main</name></branch></branches></scm>
  <builders><hudson.tasks.Shell><command>echo hi</command></hudson.tasks.Shell></builders>
</project>`))
	require.NoError(t, err)
	// The branch name is also the first name element, so name the job explicitly
	job.JobName = "hello"

	out, err := renderer.Render(job)
	require.NoError(t, err)
	require.Equal(t, expectedJoinedWorkflow, string(out))
	require.Contains(t, string(out), "branches:\n      - main")
}

func TestRenderJoinedBranchesAndSteps(t *testing.T) {
	renderer := newTestRenderer(t, models.BranchStyleJoined)
	job := &models.JobConfig{
		JobName:          "app",
		BranchNames:      []string{"main", "develop"},
		BuildSteps:       []string{"make", "make test"},
		Triggers:         []string{"H 2 * * *", "@weekly"},
		PostBuildActions: []string{"hudson.tasks.Mailer"},
	}
	out, err := renderer.Render(job)
	require.NoError(t, err)
	doc := string(out)
	require.Equal(t, 2, strings.Count(doc, "      - main develop\n"))
	require.Contains(t, doc, "      run: |\n        make\n        make test\n")
	require.True(t, strings.HasSuffix(doc,
		"    \n    # Triggers:\n    # H 2 * * * @weekly\n        "+
			"\n    # Post-build actions:\n    # hudson.tasks.Mailer\n        "))
}

func TestRenderOmitsEmptyCommentBlocks(t *testing.T) {
	for _, style := range []models.BranchStyle{models.BranchStyleJoined, models.BranchStyleList} {
		out, err := newTestRenderer(t, style).Render(&models.JobConfig{JobName: "quiet"})
		require.NoError(t, err)
		require.NotContains(t, string(out), "Triggers")
		require.NotContains(t, string(out), "Post-build actions")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	job, err := ParseJobConfig("app_config.xml", []byte(freestyleJob))
	require.NoError(t, err)
	for _, style := range []models.BranchStyle{models.BranchStyleJoined, models.BranchStyleList} {
		renderer := newTestRenderer(t, style)
		first, err := renderer.Render(job)
		require.NoError(t, err)
		second, err := renderer.Render(job)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestRenderList(t *testing.T) {
	renderer := newTestRenderer(t, models.BranchStyleList)
	job := &models.JobConfig{
		JobName:          "app",
		BranchNames:      []string{"main", "develop"},
		BuildSteps:       []string{"make", "make test"},
		Triggers:         []string{"H 2 * * *"},
		PostBuildActions: []string{"hudson.tasks.Mailer", "hudson.tasks.junit.JUnitResultArchiver"},
	}
	out, err := renderer.Render(job)
	require.NoError(t, err)

	workflow := &models.Workflow{}
	require.NoError(t, yaml.Unmarshal(out, workflow))
	require.Equal(t, "app", workflow.Name)
	require.Equal(t, []string{"main", "develop"}, workflow.On.Push.Branches)
	require.Equal(t, []string{"main", "develop"}, workflow.On.PullRequest.Branches)
	require.Equal(t, "ubuntu-latest", workflow.Jobs.Build.RunsOn)
	require.Len(t, workflow.Jobs.Build.Steps, 3)
	require.Equal(t, "actions/checkout@v2", workflow.Jobs.Build.Steps[0].Uses)
	require.Equal(t, "11", workflow.Jobs.Build.Steps[1].With["java-version"])
	require.Equal(t, "make\nmake test", workflow.Jobs.Build.Steps[2].Run)

	require.True(t, strings.HasSuffix(string(out),
		"# Triggers:\n# H 2 * * *\n# Post-build actions:\n# hudson.tasks.Mailer\n# hudson.tasks.junit.JUnitResultArchiver\n"))
}

func TestNewRendererRejectsUnknownStyle(t *testing.T) {
	_, err := NewRenderer("sequence")
	require.Error(t, err)
	require.True(t, gerror.IsValidationFailed(err))
}
