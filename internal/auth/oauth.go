package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/eighttenaric/gmc-editor/configs"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	content "google.golang.org/api/content/v2.1"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes cover everything the editor touches: the Merchant Center catalog
// and sending the QA report as the operator.
var Scopes = []string{
	content.ContentScope,
	gmail.GmailSendScope,
}

var ErrNoClientSecrets = errors.New("no OAuth client material: provide CLIENT_SECRETS_FILE or GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET")

// NewOAuthConfig builds the authorization-code flow configuration, reading a
// Google client-secrets file when present and falling back to the embedded
// client id/secret pair.
func NewOAuthConfig(cfg *configs.Configs) (*oauth2.Config, error) {
	if data, err := os.ReadFile(cfg.ClientSecretsFile); err == nil {
		conf, err := google.ConfigFromJSON(data, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse client secrets file: %w", err)
		}
		conf.RedirectURL = cfg.RedirectURI
		return conf, nil
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, ErrNoClientSecrets
	}

	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       Scopes,
	}, nil
}
