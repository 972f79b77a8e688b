package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/NicabarNimble/git-minus/internal/config"
	gmerrors "github.com/NicabarNimble/git-minus/internal/errors"
	"github.com/NicabarNimble/git-minus/internal/git"
	"github.com/NicabarNimble/git-minus/internal/gitignore"
	"github.com/NicabarNimble/git-minus/internal/logging"
	"github.com/NicabarNimble/git-minus/internal/progress"
	"github.com/NicabarNimble/git-minus/internal/urlutils"
)

var (
	// cloneFunc allows for mocking in tests
	cloneFunc = git.Clone

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// errCloneFailed is returned when the repository could not be cloned and
// the ignore file was therefore not generated.
var errCloneFailed = errors.New("repository was not cloned, .gitignore not generated")

type rootOptions struct {
	configPath string
	backend    string
	stripLines int
	logDir     string
	apiURL     string
	strict     bool
	saveConfig bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "git-- <url> [tags...]",
		Short: "Clone a repository and generate its .gitignore",
		Long: `The superior single purpose version of git: git--.

Clones the repository at <url> into the current directory, then writes a
.gitignore at its root built from the toptal gitignore service using the
given tags.`,
		Example: `  git-- https://github.com/example/repo python macos
  git-- https://github.com/example/repo go --backend go-git
  git-- git@github.com:example/repo.git node
  git-- https://github.com/example/repo python --strict --save-config`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default <user config dir>/git--/config.toml)")
	cmd.Flags().StringVar(&opts.backend, "backend", config.BackendExec, "Clone backend: exec or go-git")
	cmd.Flags().IntVar(&opts.stripLines, "strip-lines", config.DefaultStripLines, "Banner lines to drop from the template response")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Directory for git--.log (default logs/ beside the executable)")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", config.DefaultAPIURL, "Template service endpoint")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail instead of writing the body of an error answer (e.g. unknown tag)")
	cmd.Flags().BoolVar(&opts.saveConfig, "save-config", false, "Write the effective settings back to the config file")

	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	opts.configPath = path

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("strip-lines") {
		cfg.StripLines = opts.stripLines
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = opts.logDir
	}
	if flags.Changed("api-url") {
		cfg.APIURL = opts.apiURL
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *rootOptions, url string, tags []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(logging.Options{
		Dir:     cfg.LogDir,
		File:    cfg.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("logger initialized", slog.String("log_file", logger.Path))
	logger.Debug("received args",
		slog.String("url", urlutils.Redact(url)),
		slog.Any("tags", tags),
		slog.String("backend", cfg.Backend))

	if opts.saveConfig {
		if err := config.SaveConfig(cfg, opts.configPath); err != nil {
			return err
		}
		logger.Info("config saved", slog.String("path", opts.configPath))
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	tracker := progress.NewConsoleTracker(out)

	res := cloneFunc(git.CloneOptions{
		URL:      url,
		Backend:  git.Backend(cfg.Backend),
		Context:  ctx,
		Logger:   logger.Logger,
		Progress: tracker,
		Stdout:   out,
		Stderr:   cmd.ErrOrStderr(),
	})
	if !res.OK() {
		if res.InvalidRepository() {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s not valid repository", url)))
		}
		logger.Error("skipping .gitignore generation",
			slog.Int("exit_code", res.ExitCode),
			slog.Any("error", res.Err))
		return fmt.Errorf("%w: %w", errCloneFailed, res.Err)
	}

	client := gitignore.NewClient(cfg.APIURL, logger.Logger)
	client.Strict = cfg.Strict

	gen := &gitignore.Generator{
		Client:       client,
		StripLines:   cfg.StripLines,
		GeneratorURL: cfg.GeneratorURL,
		Logger:       logger.Logger,
		Progress:     tracker,
	}

	path, err := gen.Generate(ctx, res.Dir, tags)
	if err != nil {
		if gmerrors.IsNotFound(err) {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("unknown tag in %q, see %s for valid tags",
				strings.Join(tags, ","), strings.TrimRight(cfg.APIURL, "/")+"/list")))
		}
		return err
	}

	fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("Wrote %s", path)))
	return nil
}
