package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/buildbeaver/jenkins2gha/app"
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/cli"
	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/util"
	"github.com/buildbeaver/jenkins2gha/common/version"
)

const (
	DefaultConfigDir = "~/"
	ConfigFileName   = ".jenkins2gha"
	EnvPrefix        = "JENKINS2GHA"
	DotEnvFile       = ".env"
)

// Configuration keys shared by more than one command.
const (
	KeyJenkinsURL      = "jenkins_url"
	KeyJenkinsUser     = "jenkins_user"
	KeyJenkinsAPIToken = "jenkins_api_token"
)

var (
	defaultConfigFilePath = fmt.Sprintf("%s%s.yml", DefaultConfigDir, ConfigFileName)

	// loggableFlags are the flags whose values are safe to write to the debug log.
	loggableFlags = []string{
		"config", "debug", "json", "log-levels",
		"server", "user", "listing", "output-dir", "downloader", "timeout", "retries",
		"input-dir", "pattern", "branch-style", "continue-on-error",
	}
)

type GlobalConfig struct {
	Debug          bool
	JSON           bool
	LogLevels      string
	ConfigFilePath string
}

var Global = &GlobalConfig{}

func init() {
	cobra.OnInitialize(initEnv)
	cobra.OnInitialize(initConfig)

	// Accept --output_dir as well as --output-dir, matching the config file key names
	RootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	RootCmd.PersistentFlags().StringVarP(
		&Global.ConfigFilePath,
		"config",
		"c",
		defaultConfigFilePath,
		"The config file to use when executing commands.")

	RootCmd.PersistentFlags().BoolVarP(
		&Global.Debug,
		"debug",
		"d",
		false,
		"Enable verbose debug output.")

	RootCmd.PersistentFlags().BoolVarP(
		&Global.JSON,
		"json",
		"j",
		false,
		"Enable structured JSON log output.")

	RootCmd.PersistentFlags().StringVar(
		&Global.LogLevels,
		"log-levels",
		"",
		fmt.Sprintf("Comma separated subsystem=level pairs; use *=level to set the default. Levels: %s", logger.ListLogLevels()))
}

// initEnv loads variables from a .env file in the working directory, if there is one. Variables
// already set in the environment take precedence.
func initEnv() {
	err := godotenv.Load(DotEnvFile)
	if err != nil && !os.IsNotExist(err) {
		cli.Exit(fmt.Errorf("error loading %s file: %s", DotEnvFile, err))
	}
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cli.Exit(RootCmd.Execute())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {

	if Global.ConfigFilePath != "" && Global.ConfigFilePath != defaultConfigFilePath {
		viper.SetConfigFile(Global.ConfigFilePath)
	} else {
		viper.SetConfigName(ConfigFileName)
		viper.AddConfigPath(DefaultConfigDir)
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// Jenkins connection settings use the variable names Jenkins tooling conventionally reads
	viper.BindEnv(KeyJenkinsURL, "JENKINS_URL")
	viper.BindEnv(KeyJenkinsUser, "JENKINS_USER")
	viper.BindEnv(KeyJenkinsAPIToken, "JENKINS_API_TOKEN")

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	if err == nil {
		Global.ConfigFilePath = viper.ConfigFileUsed()
		cli.Stderr.Printf("Using config file: %s", viper.ConfigFileUsed())
	} else {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
		default:
			cli.Exit(fmt.Errorf("error loading config file (%s): %s", viper.ConfigFileUsed(), err))
		}
	}
}

// LogConfig returns the logging configuration selected by the global flags.
func LogConfig() app.LogConfig {
	return app.LogConfig{
		LogLevels: logger.LogLevelConfig(Global.LogLevels),
		Debug:     Global.Debug,
		JSON:      Global.JSON,
	}
}

// LogCommandLine writes the command line to log at debug level, masking the values of any flags
// that could carry secrets.
func LogCommandLine(log logger.Log) {
	log.Debugf("Command line: %s", strings.Join(util.FilterOSArgs(os.Args, loggableFlags), " "))
}

var RootCmd = &cobra.Command{
	Use:     "jenkins2gha",
	Short:   "Convert Jenkins jobs to GitHub Actions workflows",
	Long:    `Fetch Jenkins job configurations and convert them into GitHub Actions workflow files.`,
	Version: version.VersionToString(),
}
