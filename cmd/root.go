package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/lnr/internal/batch"
	"github.com/joescharf/lnr/internal/config"
	"github.com/joescharf/lnr/internal/editor"
	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/output"
	"github.com/joescharf/lnr/internal/prompt"
	"github.com/joescharf/lnr/internal/resolve"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool
	dryRun  bool
)

// Replaceable in tests.
var (
	apiEndpoint = ""
	newPrompter = terminalPrompter
	openBrowser = browser.OpenURL
	openEditor  = editor.Open
	now         = time.Now
)

var errNoConfig = errors.New("No configuration found\nPlease run lnr auth login")

var rootCmd = &cobra.Command{
	Use:   "lnr",
	Short: "Linear from the command line",
	Long: `lnr lists, creates and edits Linear issues, projects and milestones.

Run 'lnr auth login' once to store a personal API key.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/lnr/config.json)")
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.Set("config_file", cfgFile)
	}

	viper.SetEnvPrefix("LNR")
	viper.AutomaticEnv()

	viper.SetDefault("format", string(output.FormatTable))
	viper.SetDefault("endpoint", linear.DefaultEndpoint)
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun
}

// configPath is --config when given, else the default location.
func configPath() (string, error) {
	if p := viper.GetString("config_file"); p != "" {
		return p, nil
	}
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// app carries what a command needs once configuration is loaded.
type app struct {
	cfg         *config.Config
	client      *linear.Client
	ui          *output.UI
	prompter    prompt.Prompter
	interactive bool
}

func terminalPrompter() (prompt.Prompter, bool) {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return prompt.NewTerminal(), true
	}
	return prompt.Disabled{}, false
}

// loadApp reads the config record and builds the client. It is the first
// thing every command but auth login does.
func loadApp() (*app, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		return nil, errNoConfig
	}
	if err != nil {
		return nil, err
	}
	ui.VerboseLog("config loaded from %s", path)

	p, interactive := newPrompter()
	return &app{
		cfg:         cfg,
		client:      newClient(cfg.APIKey),
		ui:          ui,
		prompter:    p,
		interactive: interactive,
	}, nil
}

func newClient(apiKey string) *linear.Client {
	endpoint := apiEndpoint
	if endpoint == "" {
		endpoint = viper.GetString("endpoint")
	}
	return linear.NewClient(apiKey, linear.WithEndpoint(endpoint), linear.WithLogger(ui))
}

// withApp adapts a handler that needs a loaded app to cobra's RunE.
func withApp(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return finish(run(cmd.Context(), a, args))
	}
}

// finish turns a declined confirmation into a clean exit.
func finish(err error) error {
	if errors.Is(err, batch.ErrDeclined) {
		ui.Info("Cancelled")
		return nil
	}
	return err
}

// chooser returns the answering strategy for one lookup.
func (a *app) chooser(req resolve.Request) resolve.Chooser {
	if a.interactive {
		return a.prompter
	}
	return resolve.Strict{What: req.What, Query: req.Query}
}

func (a *app) multiChooser(what, query string) resolve.MultiChooser {
	if a.interactive {
		return a.prompter
	}
	return resolve.Strict{What: what, Query: query}
}
