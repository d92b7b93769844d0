package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bookquiz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bookquiz",
	Short: "Adaptive quiz with book recommendations",
	Long: "BookQuiz asks a short adaptive quiz in the terminal, then recommends " +
		"books that match the skill level your score shows.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/bookquiz/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().String("base-url", "", "Base URL of the quiz server")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagOverride maps a command-line flag to a config key.
type flagOverride struct {
	flag string
	key  string
}

// loadConfig loads and validates the configuration. Flags that were set
// explicitly take precedence over file and environment values.
func loadConfig(cmd *cobra.Command, flags ...flagOverride) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	flags = append(flags, flagOverride{flag: "log-level", key: "log.level"})
	overrides := make(map[string]any)
	for _, f := range flags {
		fl := cmd.Flags().Lookup(f.flag)
		if fl == nil || !fl.Changed {
			continue
		}
		overrides[f.key] = fl.Value.String()
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("check config: %w", err)
	}
	return cfg, nil
}
