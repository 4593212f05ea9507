package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long:  "Parses the file given with --config, applies defaults and prints the effective settings.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if f.ConfigPath == "" {
			return fmt.Errorf("config file not specified (use --config)")
		}
		cfg, err := f.LoadServerConfig()
		if err != nil {
			log.Error().Err(err).Msgf("%s Configuration is invalid.", redCross)
			return BeQuietError{}
		}
		log.Info().Msgf("%s Configuration is valid.", greenCheck)

		fmt.Println(bold("\n── Effective Configuration ──"))
		printField("Address ", cfg.Server.Addr)
		printField("Verifier", fmt.Sprintf("%s (timeout %s)", cfg.Verifier.Type, cfg.Verifier.Timeout))
		printField("Store   ", cfg.Store.Type)
		printField("Audit   ", cfg.Audit.Type)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
