package translator

import (
	"text/template"
)

// workflowTemplateData is the data available to joinedWorkflowTemplate. Sequences are pre-joined
// because the template writes them out verbatim.
type workflowTemplateData struct {
	JobName          string `structs:"job_name"`
	Branches         string `structs:"branches"`
	BuildSteps       string `structs:"build_steps"`
	Triggers         string `structs:"triggers"`
	PostBuildActions string `structs:"post_build_actions"`
}

// buildStepSeparator joins build step commands so that each starts at the indentation of the run block.
const buildStepSeparator = "\n        "

// joinedWorkflowTemplate renders the legacy workflow layout byte for byte, including the leading
// newline and trailing indentation.
var joinedWorkflowTemplate = template.Must(template.New("workflow").Parse(`
name: {{ .job_name }}

on:
  push:
    branches:
      - {{ .branches }}
  pull_request:
    branches:
      - {{ .branches }}

jobs:
  build:
    runs-on: ubuntu-latest

    steps:
    - name: Checkout repository
      uses: actions/checkout@v2

    - name: Set up JDK 11
      uses: actions/setup-java@v1
      with:
        java-version: '11'

    - name: Run build steps
      run: |
        {{ .build_steps }}
` + "    " + `{{ if .triggers }}
    # Triggers:
    # {{ .triggers }}
` + "        " + `{{ end }}{{ if .post_build_actions }}
    # Post-build actions:
    # {{ .post_build_actions }}
` + "        " + `{{ end }}`))
