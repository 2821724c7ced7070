package fetch

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildbeaver/jenkins2gha/app"
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/commands"
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/utils"
	"github.com/buildbeaver/jenkins2gha/jenkins"
)

const (
	keyListing    = "fetch.listing"
	keyOutputDir  = "fetch.output_dir"
	keyDownloader = "fetch.downloader"
	keyTimeout    = "fetch.timeout"
	keyRetries    = "fetch.retries"
)

func init() {
	flags := fetchRootCmd.Flags()
	flags.String(
		"server",
		jenkins.DefaultServerURL,
		"The base URL of the Jenkins server")
	flags.String(
		"user",
		"",
		"The Jenkins user to authenticate as (or set JENKINS_USER)")
	flags.String(
		"token",
		"",
		"The Jenkins API token to authenticate with (or set JENKINS_API_TOKEN)")
	flags.String(
		"listing",
		jenkins.DefaultListingFile,
		"The jobs listing file (XML, or JSON if it ends in .json); set to \"\" to read the listing from the server")
	flags.String(
		"output-dir",
		jenkins.DefaultOutputDir,
		"The directory to save job configs into")
	flags.String(
		"downloader",
		string(jenkins.DownloaderTypeHTTP),
		"How to download job configs: \"http\" or \"curl\"")
	flags.Duration(
		"timeout",
		0,
		"Timeout for each HTTP request; 0 means no timeout")
	flags.Int(
		"retries",
		jenkins.DefaultRetryMax,
		"The number of times to retry a failed HTTP request")

	bindFlag(commands.KeyJenkinsURL, "server")
	bindFlag(commands.KeyJenkinsUser, "user")
	bindFlag(commands.KeyJenkinsAPIToken, "token")
	bindFlag(keyListing, "listing")
	bindFlag(keyOutputDir, "output-dir")
	bindFlag(keyDownloader, "downloader")
	bindFlag(keyTimeout, "timeout")
	bindFlag(keyRetries, "retries")

	commands.RootCmd.AddCommand(fetchRootCmd)
}

func bindFlag(key string, flagName string) {
	err := viper.BindPFlag(key, fetchRootCmd.Flags().Lookup(flagName))
	if err != nil {
		panic(err)
	}
}

func newFetchConfig() (*app.FetchConfig, error) {
	config := app.NewFetchConfig()
	config.Log = commands.LogConfig()
	config.ServerURL = viper.GetString(commands.KeyJenkinsURL)
	config.Credentials = jenkins.Credentials{
		User:     viper.GetString(commands.KeyJenkinsUser),
		APIToken: viper.GetString(commands.KeyJenkinsAPIToken),
	}
	config.Timeout = viper.GetDuration(keyTimeout)
	config.RetryMax = viper.GetInt(keyRetries)
	config.DownloaderType = jenkins.DownloaderType(viper.GetString(keyDownloader))

	var err error
	config.ListingFile = viper.GetString(keyListing)
	if config.ListingFile != "" {
		config.ListingFile, err = utils.HomeifyPath(config.ListingFile)
		if err != nil {
			return nil, err
		}
	}
	config.OutputDir, err = utils.HomeifyPath(viper.GetString(keyOutputDir))
	if err != nil {
		return nil, err
	}
	return config, nil
}

var fetchRootCmd = &cobra.Command{
	Use:           "fetch",
	Short:         "Download the config.xml of every job in a listing from Jenkins",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.SignalContext()
		defer cancel()

		config, err := newFetchConfig()
		if err != nil {
			return err
		}
		logFactory, err := app.NewLogFactory(config.Log)
		if err != nil {
			return err
		}
		commands.LogCommandLine(logFactory("Fetch"))

		unlock, err := utils.LockOutputDir(config.OutputDir)
		if err != nil {
			return err
		}
		defer unlock()

		fetchApp, err := app.NewFetchApp(config, os.Stdout, logFactory)
		if err != nil {
			return errors.Wrap(err, "error initializing app")
		}
		// Individual download failures are reported as they happen and don't fail the command
		_, err = fetchApp.Run(ctx)
		return err
	},
}
