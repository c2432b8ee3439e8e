package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Mailer sends through the Gmail API's "send as me" endpoint using the
// operator's OAuth token, so the report arrives from the operator's own
// address.
type Mailer struct {
	oauth *oauth2.Config
}

func New(oauth *oauth2.Config) *Mailer {
	return &Mailer{oauth: oauth}
}

func (m *Mailer) SendAs(ctx context.Context, token *oauth2.Token, subject, text, html string, recipients []string) error {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(m.oauth.TokenSource(ctx, token)))
	if err != nil {
		return fmt.Errorf("failed to init gmail client: %w", err)
	}

	raw := base64.RawURLEncoding.EncodeToString(buildMessage(subject, html, recipients))
	_, err = svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send failed: %w", err)
	}
	return nil
}

// buildMessage assembles a single-part text/html MIME message.
func buildMessage(subject, html string, recipients []string) []byte {
	var b strings.Builder
	b.WriteString("To: " + strings.Join(recipients, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}
