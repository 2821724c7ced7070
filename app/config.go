package app

import (
	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/jenkins"
	"github.com/buildbeaver/jenkins2gha/translator"
)

const (
	DefaultConvertInputDir  = "./.github/workflows"
	DefaultConvertOutputDir = "./generated_workflows"
)

// LogConfig controls where and how diagnostics are logged. Progress output is not affected.
type LogConfig struct {
	LogLevels logger.LogLevelConfig
	Debug     bool
	JSON      bool
}

type FetchConfig struct {
	Log LogConfig
	jenkins.ClientConfig
	// ListingFile is the jobs listing to read. When empty the listing is read from the server.
	ListingFile    string
	OutputDir      string
	DownloaderType jenkins.DownloaderType
	// CurlPath is the curl binary used by the curl downloader; empty means curl on the PATH.
	CurlPath string
}

func NewFetchConfig() *FetchConfig {
	return &FetchConfig{
		ClientConfig: jenkins.ClientConfig{
			ServerURL: jenkins.DefaultServerURL,
			RetryMax:  jenkins.DefaultRetryMax,
		},
		ListingFile:    jenkins.DefaultListingFile,
		OutputDir:      jenkins.DefaultOutputDir,
		DownloaderType: jenkins.DownloaderTypeHTTP,
	}
}

type ConvertConfig struct {
	Log LogConfig
	translator.ConverterConfig
	InputDir    string
	OutputDir   string
	BranchStyle models.BranchStyle
}

func NewConvertConfig() *ConvertConfig {
	return &ConvertConfig{
		ConverterConfig: translator.ConverterConfig{Pattern: translator.DefaultPattern},
		InputDir:        DefaultConvertInputDir,
		OutputDir:       DefaultConvertOutputDir,
		BranchStyle:     models.BranchStyleJoined,
	}
}
