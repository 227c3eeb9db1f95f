package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joescharf/lnr/internal/batch"
	"github.com/joescharf/lnr/internal/config"
	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/prompt"
)

const apiKeySettingsURL = "https://linear.app/settings/account/security"

var (
	errInvalidAPIKey = errors.New("Invalid API key")
	errEmptyAPIKey   = errors.New("No API key provided")
)

var authAPIKey string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API key",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a personal API key",
	Long: `Store a personal Linear API key in the config file.

The key is checked against the API before it is saved. Without --api-key
your browser opens the page where keys are created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _ := newPrompter()
		return finish(authLoginRun(cmd.Context(), p))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who the stored key belongs to",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
		return authStatusRun(ctx, a)
	}),
}

func init() {
	authLoginCmd.Flags().StringVar(&authAPIKey, "api-key", "", "API key to store, skipping the prompts")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func authLoginRun(ctx context.Context, p prompt.Prompter) error {
	key := strings.TrimSpace(authAPIKey)
	if key == "" {
		var err error
		key, err = askAPIKey(p)
		if err != nil {
			return err
		}
	}
	if key == "" {
		return errEmptyAPIKey
	}

	viewer, err := newClient(key).Viewer(ctx)
	if errors.Is(err, linear.ErrUnauthorized) {
		return errInvalidAPIKey
	}
	if err != nil {
		return fmt.Errorf("check api key: %w", err)
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	if dryRun {
		ui.DryRunMsg("Would save API key for %s to %s", viewer.DisplayName, path)
		return nil
	}

	editor := os.Getenv("EDITOR")
	cfg := &config.Config{
		SchemaVersion: config.SchemaVersion,
		APIKey:        key,
		Editor:        config.ResolveEditor(&editor),
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	ui.Success("Logged in as %s (%s)", viewer.DisplayName, viewer.Organization.Name)
	ui.Success("Config saved successfully")
	ui.VerboseLog("config written to %s", path)
	return nil
}

// askAPIKey walks the user through creating a key in the browser.
func askAPIKey(p prompt.Prompter) (string, error) {
	answer, err := p.Input("Press enter to open your browser and create a personal API key")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) != "" {
		return "", batch.ErrDeclined
	}

	if err := openBrowser(apiKeySettingsURL); err != nil {
		ui.Warning("Could not open browser, visit %s", apiKeySettingsURL)
	}

	key, err := p.Password("Paste in your personal API key:")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func authStatusRun(ctx context.Context, a *app) error {
	viewer, err := a.client.Viewer(ctx)
	if err != nil {
		return err
	}
	ui.Field("User", viewer.Name)
	ui.Field("Display name", viewer.DisplayName)
	ui.Field("Organization", viewer.Organization.Name)
	ui.Field("API key", config.MaskKey(a.cfg.APIKey))
	return nil
}
