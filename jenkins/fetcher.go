package jenkins

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/common/util"
)

// DefaultOutputDir is where job configs are saved when no output directory is specified.
const DefaultOutputDir = ".github/workflows/"

// FetchSummary describes the outcome of fetching the configs for a listing.
type FetchSummary struct {
	Downloaded []string
	Failed     []string
	// Skipped counts listing entries with no job name.
	Skipped int
}

// Fetcher saves the config.xml of every job in a listing to a local directory.
type Fetcher struct {
	client     *Client
	downloader Downloader
	out        io.Writer
	log        logger.Log
}

// NewFetcher makes a Fetcher. Job URLs are built by client; progress lines are written to out.
func NewFetcher(client *Client, downloader Downloader, out io.Writer, logFactory logger.LogFactory) *Fetcher {
	return &Fetcher{
		client:     client,
		downloader: downloader,
		out:        out,
		log:        logFactory("Fetcher"),
	}
}

// ConfigFilePath returns the path in outputDir that the named job's config is saved to.
func ConfigFilePath(outputDir string, jobName string) string {
	return filepath.Join(outputDir, util.EscapeFileName(jobName)+models.JobConfigFileSuffix)
}

// FetchAll downloads the config of every job in listing into outputDir, creating it if necessary.
// A job whose download fails is reported and skipped; only a problem with outputDir or cancellation
// of ctx stops the run.
func (f *Fetcher) FetchAll(ctx context.Context, listing *models.JobListing, outputDir string) (*FetchSummary, error) {
	summary := &FetchSummary{}
	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return summary, errors.Wrapf(err, "error creating output directory %q", outputDir)
	}

	for _, job := range listing.Jobs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if job.Name == "" {
			f.log.Warn("Skipping job with no name in listing")
			summary.Skipped++
			continue
		}

		jobURL := f.client.JobConfigURL(job.Name)
		destPath := ConfigFilePath(outputDir, job.Name)
		fmt.Fprintf(f.out, "Downloading config for job: %s from %s\n", job.Name, jobURL)

		err := f.fetchJob(ctx, jobURL, destPath)
		if err != nil {
			f.log.WithField("job", job.Name).Errorf("Error downloading job config: %v", err)
			fmt.Fprintf(f.out, "Error downloading config for job: %s\n", job.Name)
			summary.Failed = append(summary.Failed, job.Name)
			continue
		}
		fmt.Fprintf(f.out, "Successfully downloaded %s\n", destPath)
		summary.Downloaded = append(summary.Downloaded, job.Name)
	}

	f.log.WithFields(logger.Fields{
		"downloaded": len(summary.Downloaded),
		"failed":     len(summary.Failed),
		"skipped":    summary.Skipped,
	}).Info("Finished fetching job configs")
	return summary, nil
}

func (f *Fetcher) fetchJob(ctx context.Context, jobURL string, destPath string) error {
	// Jobs inside folders are saved in matching subdirectories
	err := os.MkdirAll(filepath.Dir(destPath), 0755)
	if err != nil {
		return errors.Wrapf(err, "error creating directory for %q", destPath)
	}
	return f.downloader.Download(ctx, jobURL, destPath)
}
