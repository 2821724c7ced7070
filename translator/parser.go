package translator

import (
	"path"
	"strings"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/common/util"
)

// Jenkins element tags read from config.xml.
const (
	nameTag         = "name"
	scmTag          = "scm"
	urlTag          = "url"
	branchesTag     = "branches"
	buildersTag     = "builders"
	shellBuilderTag = "hudson.tasks.Shell"
	commandTag      = "command"
	triggersTag     = "triggers"
	timerTriggerTag = "hudson.triggers.TimerTrigger"
	specTag         = "spec"
	publishersTag   = "publishers"
)

// JobNameFromFileName returns the job name implied by a config file name, i.e. the base name with the
// config file suffix removed.
func JobNameFromFileName(fileName string) string {
	return strings.TrimSuffix(path.Base(fileName), models.JobConfigFileSuffix)
}

// ParseJobConfig parses one Jenkins config.xml document. fileName is only used to name the job when
// the document has no name element.
func ParseJobConfig(fileName string, data []byte) (*models.JobConfig, error) {
	doc, err := util.ReadXMLDocument(data)
	if err != nil {
		return nil, gerror.NewErrParseFailed("error parsing job config", err).Detail(gerror.DetailFile, fileName)
	}
	root := doc.Root()
	if root == nil {
		return nil, gerror.NewErrParseFailed("error parsing job config: no root element", nil).Detail(gerror.DetailFile, fileName)
	}

	config := &models.JobConfig{
		JobName:          JobNameFromFileName(fileName),
		BranchNames:      []string{},
		BuildSteps:       []string{},
		Triggers:         []string{},
		PostBuildActions: []string{},
	}

	if name := util.FirstDescendant(root, nameTag); name != nil && name.Text() != "" {
		config.JobName = name.Text()
	}

	if scm := util.FirstDescendant(root, scmTag); scm != nil {
		if url := util.FirstDescendant(scm, urlTag); url != nil {
			gitURL := url.Text()
			config.GitURL = &gitURL
		}
		for _, branch := range util.NestedDescendants(scm, branchesTag, nameTag) {
			if branch.Text() != "" {
				config.BranchNames = append(config.BranchNames, branch.Text())
			}
		}
	}

	for _, builder := range util.NestedDescendants(root, buildersTag, shellBuilderTag) {
		command, ok := util.ChildText(builder, commandTag)
		if !ok {
			return nil, gerror.NewErrMissingElement(shellBuilderTag, commandTag).Detail(gerror.DetailFile, fileName)
		}
		config.BuildSteps = append(config.BuildSteps, command)
	}

	for _, trigger := range util.NestedDescendants(root, triggersTag, timerTriggerTag) {
		spec, ok := util.ChildText(trigger, specTag)
		if !ok {
			return nil, gerror.NewErrMissingElement(timerTriggerTag, specTag).Detail(gerror.DetailFile, fileName)
		}
		config.Triggers = append(config.Triggers, spec)
	}

	for _, publishers := range util.Descendants(root, publishersTag) {
		for _, action := range publishers.ChildElements() {
			config.PostBuildActions = append(config.PostBuildActions, action.FullTag())
		}
	}

	return config, nil
}
