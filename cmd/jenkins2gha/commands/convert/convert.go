package convert

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildbeaver/jenkins2gha/app"
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/commands"
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/utils"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/translator"
)

const (
	keyInputDir        = "convert.input_dir"
	keyOutputDir       = "convert.output_dir"
	keyPattern         = "convert.pattern"
	keyBranchStyle     = "convert.branch_style"
	keyContinueOnError = "convert.continue_on_error"
)

func init() {
	flags := convertRootCmd.Flags()
	flags.String(
		"input-dir",
		app.DefaultConvertInputDir,
		"The directory containing Jenkins job configs")
	flags.String(
		"output-dir",
		app.DefaultConvertOutputDir,
		"The directory to write GitHub Actions workflows into")
	flags.String(
		"pattern",
		translator.DefaultPattern,
		"Glob selecting the job config files to convert; use **/ to descend into subdirectories")
	flags.String(
		"branch-style",
		string(models.BranchStyleJoined),
		fmt.Sprintf("How branch filters are written: %q (all branches in one entry) or %q (one entry per branch)",
			models.BranchStyleJoined, models.BranchStyleList))
	flags.Bool(
		"continue-on-error",
		false,
		"Keep converting after a file fails, and report all failures at the end")

	bindFlag(keyInputDir, "input-dir")
	bindFlag(keyOutputDir, "output-dir")
	bindFlag(keyPattern, "pattern")
	bindFlag(keyBranchStyle, "branch-style")
	bindFlag(keyContinueOnError, "continue-on-error")

	commands.RootCmd.AddCommand(convertRootCmd)
}

func bindFlag(key string, flagName string) {
	err := viper.BindPFlag(key, convertRootCmd.Flags().Lookup(flagName))
	if err != nil {
		panic(err)
	}
}

func newConvertConfig() (*app.ConvertConfig, error) {
	config := app.NewConvertConfig()
	config.Log = commands.LogConfig()
	config.Pattern = viper.GetString(keyPattern)
	config.ContinueOnError = viper.GetBool(keyContinueOnError)
	config.BranchStyle = models.BranchStyle(viper.GetString(keyBranchStyle))

	var err error
	config.InputDir, err = utils.HomeifyPath(viper.GetString(keyInputDir))
	if err != nil {
		return nil, err
	}
	config.OutputDir, err = utils.HomeifyPath(viper.GetString(keyOutputDir))
	if err != nil {
		return nil, err
	}
	return config, nil
}

var convertRootCmd = &cobra.Command{
	Use:           "convert",
	Short:         "Convert Jenkins job configs into GitHub Actions workflows",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := utils.SignalContext()
		defer cancel()

		config, err := newConvertConfig()
		if err != nil {
			return err
		}
		logFactory, err := app.NewLogFactory(config.Log)
		if err != nil {
			return err
		}
		log := logFactory("Convert")
		commands.LogCommandLine(log)

		convertApp, err := app.NewConvertApp(config, os.Stdout, logFactory)
		if err != nil {
			return errors.Wrap(err, "error initializing app")
		}

		unlock, err := utils.LockOutputDir(config.OutputDir)
		if err != nil {
			return err
		}
		defer unlock()

		summary, err := convertApp.Run(ctx)
		if summary != nil && len(summary.Failed) > 0 {
			log.Warnf("%d of %d job configs failed to convert", len(summary.Failed), len(summary.Failed)+len(summary.Converted))
		}
		return err
	},
}
