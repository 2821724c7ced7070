package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/jenkins"
	"github.com/buildbeaver/jenkins2gha/translator"
)

// NewLogFactory makes the log factory shared by every component of a command. Logs go to stderr.
func NewLogFactory(config LogConfig) (logger.LogFactory, error) {
	registry, err := logger.NewLogRegistry(config.LogLevels)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing log levels")
	}
	if config.Debug {
		registry.SetDefaultLogLevel(logrus.DebugLevel)
	}
	return logger.MakeLogrusLogFactoryStdErr(registry, config.JSON), nil
}

// FetchApp downloads job configs from a Jenkins server.
type FetchApp struct {
	Config     *FetchConfig
	LogFactory logger.LogFactory
	Client     *jenkins.Client
	Fetcher    *jenkins.Fetcher
	log        logger.Log
}

// NewFetchApp wires up the components of the fetch command. Progress lines are written to out.
func NewFetchApp(config *FetchConfig, out io.Writer, logFactory logger.LogFactory) (*FetchApp, error) {
	client, err := jenkins.NewClient(config.ClientConfig, logFactory)
	if err != nil {
		return nil, err
	}
	var downloader jenkins.Downloader
	switch config.DownloaderType {
	case jenkins.DownloaderTypeHTTP:
		downloader = jenkins.NewHTTPDownloader(client, logFactory)
	case jenkins.DownloaderTypeCurl:
		downloader = jenkins.NewCurlDownloader(config.CurlPath, config.Credentials, logFactory)
	default:
		return nil, gerror.NewErrValidationFailed(fmt.Sprintf("unknown downloader %q (expected %q or %q)",
			config.DownloaderType, jenkins.DownloaderTypeHTTP, jenkins.DownloaderTypeCurl))
	}
	return &FetchApp{
		Config:     config,
		LogFactory: logFactory,
		Client:     client,
		Fetcher:    jenkins.NewFetcher(client, downloader, out, logFactory),
		log:        logFactory("FetchApp"),
	}, nil
}

// Run reads the jobs listing and downloads the config of every job in it.
func (a *FetchApp) Run(ctx context.Context) (*jenkins.FetchSummary, error) {
	listing, err := a.readListing(ctx)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("Listing contains %d jobs", len(listing.Jobs))
	return a.Fetcher.FetchAll(ctx, listing, a.Config.OutputDir)
}

func (a *FetchApp) readListing(ctx context.Context) (*models.JobListing, error) {
	if a.Config.ListingFile == "" {
		a.log.Infof("Reading job listing from %s", a.Client.ServerURL())
		return a.Client.GetJobListing(ctx)
	}
	a.log.Infof("Reading job listing from %s", a.Config.ListingFile)
	return jenkins.ReadListingFile(a.Config.ListingFile)
}

// ConvertApp converts a directory of job configs into GitHub Actions workflows.
type ConvertApp struct {
	Config     *ConvertConfig
	LogFactory logger.LogFactory
	Converter  *translator.Converter
}

// NewConvertApp wires up the components of the convert command. Progress lines are written to out.
func NewConvertApp(config *ConvertConfig, out io.Writer, logFactory logger.LogFactory) (*ConvertApp, error) {
	renderer, err := translator.NewRenderer(config.BranchStyle)
	if err != nil {
		return nil, err
	}
	return &ConvertApp{
		Config:     config,
		LogFactory: logFactory,
		Converter:  translator.NewConverter(config.ConverterConfig, renderer, clock.New(), out, logFactory),
	}, nil
}

// Run converts every matching file in the input directory, writing workflows into the output directory.
func (a *ConvertApp) Run(ctx context.Context) (*translator.ConvertSummary, error) {
	info, err := os.Stat(a.Config.InputDir)
	if err != nil {
		return nil, errors.Wrap(err, "error reading input directory")
	}
	if !info.IsDir() {
		return nil, gerror.NewErrValidationFailed(fmt.Sprintf("input %q is not a directory", a.Config.InputDir))
	}
	output, err := translator.NewDirFS(a.Config.OutputDir)
	if err != nil {
		return nil, err
	}
	return a.Converter.ConvertAll(ctx, os.DirFS(a.Config.InputDir), output)
}
