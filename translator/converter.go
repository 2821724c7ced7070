package translator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bmatcuk/doublestar/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
)

// DefaultPattern matches the config files written by the fetcher in the top level of a directory.
const DefaultPattern = "*" + models.JobConfigFileSuffix

const workflowFileExtension = ".yml"

type ConverterConfig struct {
	// Pattern selects the input files to convert, using doublestar glob syntax against slash
	// separated paths relative to the input root.
	Pattern string
	// ContinueOnError keeps converting the remaining files after a file fails, and reports every
	// failure at the end. By default the first failure stops the batch.
	ContinueOnError bool
}

// ConvertSummary describes the outcome of a batch conversion.
type ConvertSummary struct {
	// Converted lists the input stems (file paths without the config suffix) that were written.
	Converted []string
	Failed    []string
	Elapsed   time.Duration
}

// Converter converts a directory of Jenkins job configs into GitHub Actions workflows, one file at a time.
type Converter struct {
	config   ConverterConfig
	renderer *Renderer
	clock    clock.Clock
	out      io.Writer
	log      logger.Log
}

// NewConverter makes a Converter. A progress line is written to out for every workflow generated.
func NewConverter(config ConverterConfig, renderer *Renderer, clk clock.Clock, out io.Writer, logFactory logger.LogFactory) *Converter {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	return &Converter{
		config:   config,
		renderer: renderer,
		clock:    clk,
		out:      out,
		log:      logFactory("Converter"),
	}
}

// ConvertAll converts every file in input matching the configured pattern, writing one workflow per
// file into output. Files are processed in lexical order.
func (c *Converter) ConvertAll(ctx context.Context, input fs.FS, output OutputFS) (*ConvertSummary, error) {
	var (
		start   = c.clock.Now()
		summary = &ConvertSummary{}
		results *multierror.Error
	)
	defer func() { summary.Elapsed = c.clock.Since(start) }()

	files, err := c.findConfigFiles(input)
	if err != nil {
		return summary, err
	}
	c.log.Debugf("Found %d job config file(s) matching %q", len(files), c.config.Pattern)

	for _, file := range files {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		stem := configStem(file)
		err := c.convertFile(input, output, file, stem)
		if err != nil {
			err = errors.Wrapf(err, "error converting %s", file)
			if !c.config.ContinueOnError {
				return summary, err
			}
			c.log.WithField("file", file).Errorf("Skipping job: %v", err)
			summary.Failed = append(summary.Failed, stem)
			results = multierror.Append(results, err)
			continue
		}
		summary.Converted = append(summary.Converted, stem)
		fmt.Fprintf(c.out, "Generated GitHub Actions YAML for job: %s\n", stem)
	}

	return summary, results.ErrorOrNil()
}

func (c *Converter) convertFile(input fs.FS, output OutputFS, file string, stem string) error {
	data, err := fs.ReadFile(input, file)
	if err != nil {
		return errors.Wrap(err, "error reading job config")
	}
	job, err := ParseJobConfig(file, data)
	if err != nil {
		return err
	}
	c.log.WithFields(logger.Fields{
		"file":        file,
		"job":         job.JobName,
		"branches":    len(job.BranchNames),
		"build_steps": len(job.BuildSteps),
	}).Debug("Parsed job config")

	workflow, err := c.renderer.Render(job)
	if err != nil {
		return err
	}

	outPath := stem + workflowFileExtension
	if dir := path.Dir(outPath); dir != "." {
		err = output.MkdirAll(dir, 0755)
		if err != nil {
			return errors.Wrapf(err, "error creating output directory %q", dir)
		}
	}
	err = output.WriteFile(outPath, workflow, 0644)
	if err != nil {
		return errors.Wrapf(err, "error writing workflow %q", outPath)
	}
	return nil
}

// findConfigFiles returns the slash separated paths of every regular file in input matching the
// configured pattern.
func (c *Converter) findConfigFiles(input fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(input, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := doublestar.Match(c.config.Pattern, p)
		if err != nil {
			return errors.Wrapf(err, "error matching pattern %q", c.config.Pattern)
		}
		if matched {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "error listing job config files")
	}
	return files, nil
}

// configStem strips the config suffix from a file path, or failing that its extension.
func configStem(file string) string {
	if strings.HasSuffix(file, models.JobConfigFileSuffix) {
		return strings.TrimSuffix(file, models.JobConfigFileSuffix)
	}
	return strings.TrimSuffix(file, path.Ext(file))
}
