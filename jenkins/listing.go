package jenkins

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/common/util"
)

// DefaultListingFile is the jobs listing read by the fetch command when none is specified.
const DefaultListingFile = "all_jobs.xml"

// ReadListingFile reads a jobs listing saved from the Jenkins API. Files ending in .json are read as
// JSON API output, anything else as XML API output.
func ReadListingFile(path string) (*models.JobListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading job listing %q", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSONListing(data)
	}
	return ParseXMLListing(data)
}

// ParseXMLListing reads a jobs listing in the format served by /api/xml: every job element below the
// root, named by its name child. Jobs with no name child are returned with an empty name.
func ParseXMLListing(data []byte) (*models.JobListing, error) {
	doc, err := util.ReadXMLDocument(data)
	if err != nil {
		return nil, gerror.NewErrParseFailed("error parsing job listing", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, gerror.NewErrParseFailed("error parsing job listing: no root element", nil)
	}
	listing := &models.JobListing{}
	for _, job := range util.Descendants(root, "job") {
		name, _ := util.ChildText(job, "name")
		jobURL, _ := util.ChildText(job, "url")
		listing.Jobs = append(listing.Jobs, models.JobDescriptor{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(jobURL),
		})
	}
	return listing, nil
}

// ParseJSONListing reads a jobs listing in the format served by /api/json. Folders (entries with a
// jobs array of their own) are descended into, and their jobs named "folder/job".
func ParseJSONListing(data []byte) (*models.JobListing, error) {
	if !gjson.ValidBytes(data) {
		return nil, gerror.NewErrParseFailed("error parsing job listing: invalid JSON", nil)
	}
	listing := &models.JobListing{}
	appendJSONJobs(listing, gjson.GetBytes(data, "jobs"), "")
	return listing, nil
}

func appendJSONJobs(listing *models.JobListing, jobs gjson.Result, folder string) {
	jobs.ForEach(func(_, job gjson.Result) bool {
		name := folder + job.Get("name").String()
		if children := job.Get("jobs"); children.IsArray() {
			appendJSONJobs(listing, children, name+"/")
			return true
		}
		listing.Jobs = append(listing.Jobs, models.JobDescriptor{
			Name: name,
			URL:  job.Get("url").String(),
		})
		return true
	})
}
