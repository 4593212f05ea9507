package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/busebalkan99/design-checklist-vercel/internal/cliconfig"
	"github.com/busebalkan99/design-checklist-vercel/pkg/client"
)

var (
	recordUserID string
	saveEmail    string
	saveFile     string
	loadRaw      bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the saved data of an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		userID, _, err := resolveAccount()
		if err != nil {
			return err
		}

		log.Debug().Msgf("Loading data of %s...", userID)
		resp, correlation, err := cli.Load(cmd.Context(), userID)
		if err != nil {
			return logError(err, correlation, "failed to load data")
		}

		if loadRaw {
			fmt.Println(string(resp.Data))
			return nil
		}

		fmt.Println(bold("\n── " + resp.Message + " ──"))
		printField("User     ", resp.UserID)
		if resp.Timestamp != nil {
			printField("Timestamp", *resp.Timestamp)
		}
		printField("Data     ", prettyJSON(resp.Data))
		printField("Request  ", faint(correlation))
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [json]",
	Short: "Save data for an account",
	Long: `Saves a JSON document for the account. The document is read from the
argument, from --file, or from stdin when neither is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}
		userID, email, err := resolveAccount()
		if err != nil {
			return err
		}
		if saveEmail != "" {
			email = saveEmail
		}

		data, err := readDocument(cmd, args)
		if err != nil {
			return err
		}

		resp, correlation, err := cli.Save(cmd.Context(), data, client.SaveOptions{
			UserID:    userID,
			UserEmail: email,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return logError(err, correlation, "failed to save data")
		}

		log.Info().Msgf("%s %s at %s (%s)", greenCheck, resp.Message, resp.Timestamp, truncate(correlation, 24))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(saveCmd)

	for _, c := range []*cobra.Command{loadCmd, saveCmd} {
		c.Flags().StringVarP(&recordUserID, "user", "u", "", "Google user ID (default: user of the saved credential)")
		f.bindTokenFlag(c.Flags())
	}
	loadCmd.Flags().BoolVar(&loadRaw, "raw", false, "print only the data document")
	saveCmd.Flags().StringVar(&saveEmail, "email", "", "email sent along with the data")
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "read the document from this file")
}

// resolveAccount returns the user ID from --user or from the saved credential.
func resolveAccount() (string, string, error) {
	var email string
	userID := recordUserID

	if server, err := f.serverAddr(); err == nil {
		if cfg, err := cliconfig.Load(); err == nil {
			if cred, err := cfg.GetCredential(server); err == nil {
				email = cred.Email
				if userID == "" {
					userID = cred.UserID
				}
			}
		}
	}
	if userID == "" {
		return "", "", fmt.Errorf("user ID not known (use --user or login first)")
	}
	return userID, email, nil
}

func readDocument(cmd *cobra.Command, args []string) (json.RawMessage, error) {
	var raw []byte
	switch {
	case len(args) == 1:
		raw = []byte(args[0])
	case saveFile != "":
		content, err := os.ReadFile(saveFile)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		raw = content
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading document from stdin: %w", err)
		}
		raw = content
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("document is not valid JSON")
	}
	return raw, nil
}
