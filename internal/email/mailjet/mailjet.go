package mailjet

import (
	"context"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
	"golang.org/x/oauth2"
)

type Mailjet struct {
	Client *mailjet.Client
	Email  string
	Name   string
}

func New(key, secret, fromEmail, fromName string) *Mailjet {
	client := mailjet.NewMailjetClient(key, secret)
	return &Mailjet{
		Client: client,
		Email:  fromEmail,
		Name:   fromName,
	}
}

func (m *Mailjet) Send(subject, text, html string, sendTo []string) error {
	recipients := make([]mailjet.Recipient, 0, len(sendTo))
	for i := range sendTo {
		recipients = append(recipients, mailjet.Recipient{Email: sendTo[i]})
	}
	email := &mailjet.InfoSendMail{
		FromEmail:  m.Email,
		FromName:   m.Name,
		Subject:    subject,
		TextPart:   text,
		HTMLPart:   html,
		Recipients: recipients,
	}
	_, err := m.Client.SendMail(email)
	if err != nil {
		return err
	}
	return nil
}

// SendAs satisfies the session-sender seam; Mailjet has its own credentials
// so the operator token is unused.
func (m *Mailjet) SendAs(_ context.Context, _ *oauth2.Token, subject, text, html string, recipients []string) error {
	return m.Send(subject, text, html, recipients)
}
