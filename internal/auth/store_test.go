package auth_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/foi-tools/foi-mcp/internal/auth"
)

func TestStoreTokenNotSet(t *testing.T) {
	s, err := auth.NewStore(&oauth2.Config{}, "")
	require.NoError(t, err)

	_, err = s.OAuthToken()
	assert.ErrorIs(t, err, auth.ErrTokenNotSet)
}

func TestStorePersistRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	tok := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	data, err := json.Marshal(tok)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	s, err := auth.NewStore(&oauth2.Config{}, path)
	require.NoError(t, err)

	got, err := s.OAuthToken()
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, got.AccessToken)
	assert.Equal(t, tok.RefreshToken, got.RefreshToken)

	require.NoError(t, s.Persist())

	reloaded, err := auth.NewStore(&oauth2.Config{}, path)
	require.NoError(t, err)

	got, err = reloaded.OAuthToken()
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, got.AccessToken)
}

func TestStoreMissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	s, err := auth.NewStore(&oauth2.Config{}, path)
	require.NoError(t, err)

	_, err = s.OAuthToken()
	assert.ErrorIs(t, err, auth.ErrTokenNotSet)
}

func TestStoreCorruptTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := auth.NewStore(&oauth2.Config{}, path)
	assert.Error(t, err)
}
