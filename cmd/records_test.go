package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busebalkan99/design-checklist-vercel/internal/cliconfig"
)

func TestReadDocument(t *testing.T) {
	t.Run("Argument", func(t *testing.T) {
		raw, err := readDocument(&cobra.Command{}, []string{`{"a":1}`})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(raw))
	})

	t.Run("Stdin", func(t *testing.T) {
		c := &cobra.Command{}
		c.SetIn(strings.NewReader(`[1,2]`))
		raw, err := readDocument(c, nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(raw))
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := readDocument(&cobra.Command{}, []string{`{nope`})
		assert.Error(t, err)
	})
}

func TestResolveAccount(t *testing.T) {
	cliconfig.PathOverride = filepath.Join(t.TempDir(), "credentials.json")
	oldAddr, oldUser := f.RemoteAddr, recordUserID
	t.Cleanup(func() {
		cliconfig.PathOverride = ""
		f.RemoteAddr, recordUserID = oldAddr, oldUser
	})

	f.RemoteAddr = "http://localhost:8080"
	recordUserID = ""

	_, _, err := resolveAccount()
	assert.Error(t, err)

	cfg := &cliconfig.CLIConfig{}
	require.NoError(t, cfg.SetCredential(f.RemoteAddr, &cliconfig.Credential{Token: "T1", UserID: "U1", Email: "a@x.com"}))
	require.NoError(t, cliconfig.Save(cfg))

	userID, email, err := resolveAccount()
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
	assert.Equal(t, "a@x.com", email)

	recordUserID = "U9"
	userID, _, err = resolveAccount()
	require.NoError(t, err)
	assert.Equal(t, "U9", userID)
}
