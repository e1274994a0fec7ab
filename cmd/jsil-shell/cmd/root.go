package cmd

import (
	"fmt"
	"os"

	"github.com/jsil-dev/host-sdk/go/application/config"
	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/jsil-dev/host-sdk/go/host"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	assigns    []string
	logLevel   string
	strictVars bool
)

var rootCmd = &cobra.Command{
	Use:   "jsil-shell",
	Short: "Headless host for JSIL-compiled programs",
	Long: `jsil-shell runs a JSIL-compiled script with the host services wired
to headless providers: default time and output services, an in-memory canvas,
scriptable input devices, a frame loop and storage volumes.

The shell is configured with a YAML document rendered as a template; values
passed with --set are available as {{.config.<key>}}.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("jsil-shell", err)
	}
	return err
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Shell config file (YAML)")
	rootCmd.PersistentFlags().StringArrayVar(&assigns, "set", nil, "Template value for the config file (key=value, repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&strictVars, "strict", true, "Fail when the config references an unset template value")
}

// loadConfig returns the shell config from --config, or the defaults when no
// file is given, with --log-level applied on top.
func loadConfig() (entities.ShellConfig, error) {
	cfg := entities.DefaultShellConfig()
	if cfgFile != "" {
		values, err := config.ParseAssignments(assigns)
		if err != nil {
			return cfg, err
		}
		loader := host.NewLoader(host.WithStrictTemplates(strictVars))
		loaded, err := loader.LoadConfigFile(cfgFile, values)
		if err != nil {
			return cfg, err
		}
		cfg = *loaded
	} else if len(assigns) > 0 {
		return cfg, fmt.Errorf("--set requires --config")
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
