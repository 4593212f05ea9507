package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/busebalkan99/design-checklist-vercel/internal/cliconfig"
	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/internal/verifier"
)

var (
	loginUserInfoURL string
	loginSkipVerify  bool
)

var loginCmd = &cobra.Command{
	Use:   "login <google-access-token>",
	Short: "Save a Google access token for a checklist server",
	Long: `Resolves the account behind the token via Google's userinfo endpoint and
saves token, user ID and email locally. Later load and save commands use the
saved credential for that server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]
		if token == "" {
			return fmt.Errorf("token cannot be empty")
		}

		server, err := f.serverAddr()
		if err != nil {
			return err
		}

		cred := &cliconfig.Credential{Token: token}
		if !loginSkipVerify {
			v := verifier.NewUserInfo("login", verifier.UserInfoOptions{URL: loginUserInfoURL},
				config.DefaultVerifierTimeout, nil)
			identity, err := v.Verify(cmd.Context(), token)
			if err != nil {
				log.Error().Msgf("%s token was rejected by the identity provider", redCross)
				log.Error().Msgf("error: %v", err)
				return BeQuietError{}
			}
			cred.UserID = identity.ID
			cred.Email = identity.Email
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading credentials: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(server, cred); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "token is valid but could not save credentials")
		}

		if cred.Email != "" {
			log.Info().Msgf("%s logged in as %s (%s)", greenCheck, bold(cred.Email), cred.UserID)
		} else {
			log.Info().Msgf("%s token saved without verification", greenCheck)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved token for a checklist server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := f.serverAddr()
		if err != nil {
			return err
		}
		cfg, err := cliconfig.Load()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Info().Msg("no saved credentials")
				return nil
			}
			return fmt.Errorf("loading credentials: %w", err)
		}
		removed, err := cfg.RemoveCredential(server)
		if err != nil {
			return err
		}
		if !removed {
			log.Info().Msgf("no saved credential for %s", server)
			return nil
		}
		if err := cliconfig.Save(cfg); err != nil {
			return fmt.Errorf("saving credentials: %w", err)
		}
		log.Info().Msgf("%s removed credential for %s", greenCheck, server)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVar(&loginUserInfoURL, "userinfo-url", config.DefaultUserInfoURL,
		"userinfo endpoint used to resolve the token")
	loginCmd.Flags().BoolVar(&loginSkipVerify, "skip-verify", false,
		"save the token without resolving the account")
}
