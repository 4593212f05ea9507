package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/busebalkan99/design-checklist-vercel/internal/cliconfig"
	"github.com/busebalkan99/design-checklist-vercel/internal/config"
	"github.com/busebalkan99/design-checklist-vercel/pkg/client"
)

const TokenKey = "token"

type Factory struct {
	// RemoteAddr is the address of the checklist server to connect to.
	RemoteAddr string

	// Token overrides saved credentials for a single command.
	Token string

	// ConfigPath points to the server configuration. Empty means defaults.
	ConfigPath string
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) serverAddr() (string, error) {
	server := f.RemoteAddr // prio 1: command-line flag
	if server == "" {
		server = viper.GetString(ServerAddrKey) // prio 2: config/env
	}
	if server == "" {
		return "", fmt.Errorf("server address not configured (use --server or set CHECKLIST_ADDR)")
	}
	return server, nil
}

// GetClient returns a client carrying the Google token for remote operations.
func (f *Factory) GetClient() (*client.Client, error) {
	server, err := f.serverAddr()
	if err != nil {
		return nil, err
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil { // token prio 3: saved credential
			token = cred.Token
		} else if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
			log.Debug().Err(err).Msg("ignoring saved credentials")
		}
	}
	if envToken := viper.GetString(TokenKey); envToken != "" { // token prio 2: env var
		token = envToken
	}
	if f.Token != "" { // token prio 1: flag
		token = f.Token
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

// LoadServerConfig reads the server configuration or falls back to defaults.
func (f *Factory) LoadServerConfig() (*config.Config, error) {
	if f.ConfigPath == "" {
		log.Debug().Msg("no config file given, using defaults")
		return config.Default(), nil
	}
	return config.Load(f.ConfigPath)
}

func (f *Factory) bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.ConfigPath, "config", "c", "", "The server config file to use")
}

func (f *Factory) bindTokenFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Token, "token", "t", "", "Google access token (default: saved credential or CHECKLIST_TOKEN)")
}
