package email

import (
	"context"

	"golang.org/x/oauth2"
)

// Email sends with provider-held credentials. Used for operational alerts.
type Email interface {
	Send(subject, text, html string, recipients []string) error
}

// SessionSender sends on behalf of the authenticated operator. The Gmail
// provider needs the operator's token; credential-holding providers (SMTP,
// Mailjet) ignore it.
type SessionSender interface {
	SendAs(ctx context.Context, token *oauth2.Token, subject, text, html string, recipients []string) error
}
