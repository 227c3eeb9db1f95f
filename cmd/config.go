package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joescharf/lnr/internal/config"
)

var errNoEditor = errors.New("no editor configured: set editor in the config file or export EDITOR")

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = config.DefaultDir

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage lnr configuration.

Running bare 'lnr config' is the same as 'lnr config show'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := configPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(ui.Out, p)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeyInfo describes a config key for display purposes.
type configKeyInfo struct {
	Key    string
	EnvVar string
	Secret bool
}

var configKeys = []configKeyInfo{
	{Key: "schemaVersion"},
	{Key: "apiKey", EnvVar: config.EnvAPIKey, Secret: true},
	{Key: "editor", EnvVar: config.EnvEditor},
}

func configShowRun() error {
	cfgPath, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	cfg, err := config.Load(cfgPath)
	if errors.Is(err, config.ErrNotFound) {
		ui.Warning("Not logged in. Run lnr auth login")
		return nil
	}
	if err != nil {
		return err
	}

	fileValues := readConfigFileValues(cfgPath)
	values := map[string]string{
		"schemaVersion": fmt.Sprint(cfg.SchemaVersion),
		"apiKey":        cfg.APIKey,
		"editor":        cfg.EditorCommand(),
	}

	for _, k := range configKeys {
		val := values[k.Key]
		if k.Secret {
			val = config.MaskKey(val)
		}
		if val == "" {
			val = "(unset)"
		}
		source := detectSource(k.Key, k.EnvVar, fileValues)
		fmt.Fprintf(ui.Out, "  %-16s %v  %s\n", k.Key, val, source)
	}

	return nil
}

// readConfigFileValues reads the raw file and returns a flat map of keys present in it.
// JSON is a subset of YAML, so the yaml decoder reads the record as is.
func readConfigFileValues(path string) map[string]bool {
	result := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return result
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return result
	}

	flattenKeys("", parsed, result)
	return result
}

// flattenKeys recursively flattens a nested map to dot-notation keys.
func flattenKeys(prefix string, m map[string]any, result map[string]bool) {
	for key, val := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenKeys(fullKey, nested, result)
		} else {
			result[fullKey] = true
		}
	}
}

// detectSource determines where a config value is coming from.
func detectSource(key, envVar string, fileValues map[string]bool) string {
	if envVar != "" {
		if _, ok := os.LookupEnv(envVar); ok {
			return fmt.Sprintf("(env: %s)", envVar)
		}
	}
	if fileValues[key] {
		return "(file)"
	}
	return "(default)"
}

// configEditor picks the configured editor, then $VISUAL and $EDITOR.
func configEditor(cfgPath string) string {
	if cfg, err := config.Load(cfgPath); err == nil && cfg.EditorCommand() != "" {
		return cfg.EditorCommand()
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return ""
}

func configEditRun() error {
	cfgPath, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'lnr auth login' first)", cfgPath)
	}

	editor := configEditor(cfgPath)
	if editor == "" {
		return errNoEditor
	}

	if dryRun {
		ui.DryRunMsg("Would open %s in %s", cfgPath, editor)
		return nil
	}

	parts := strings.Fields(editor)
	editCmd := exec.Command(parts[0], append(parts[1:], cfgPath)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
