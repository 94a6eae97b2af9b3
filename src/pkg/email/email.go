/*
Package email sends report notifications through one of three delivery
providers: Amazon SES, SendGrid, or Mailgun. The provider is picked per
call, so operational fallbacks need no code change.
*/
package email

import (
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Provider names a delivery backend.
*/
type Provider string

const (
	ProviderSes      Provider = "ses"
	ProviderSendgrid Provider = "sendgrid"
	ProviderMailgun  Provider = "mailgun"
)

/*
Attachment is one file carried by a message.
*/
type Attachment struct {
	Filename string
	Content  []byte
}

/*
RequiredEnv lists the environment variables a provider needs before
SendMessage can reach it.
*/
func RequiredEnv(provider Provider) []string {
	switch provider {
	case ProviderSes:
		return []string{"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION"}
	case ProviderSendgrid:
		return []string{"SENDGRID_API_KEY"}
	case ProviderMailgun:
		return []string{"MAILGUN_DOMAIN", "MAILGUN_API_KEY"}
	}
	return nil
}

/*
SendMessage delivers one message to all recipients through the given
provider. The send pointer usually comes straight from a command-line
flag; a nil or false value turns the call into a logged no-op.
*/
func SendMessage(
	provider Provider, send *bool, sender string, recipients []string,
	subject string, text string, html string, attachments []Attachment,
) (e *xerr.Error) {
	if send == nil || !*send {
		tl.Log(tl.Info, palette.Yellow, "Email sending is off, skipping '%s'", subject)
		return nil
	}

	switch provider {
	case ProviderSes:
		e = sendWithSes(sender, recipients, subject, text, html, attachments)
	case ProviderSendgrid:
		e = sendWithSendgrid(sender, recipients, subject, text, html, attachments)
	case ProviderMailgun:
		e = sendWithMailgun(sender, recipients, subject, text, html, attachments)
	default:
		e = xerr.NewError(fmt.Errorf("unknown provider '%s'", provider), "pick email provider", string(provider))
	}
	if e != nil {
		return e
	}

	tl.Log(
		tl.Notice, palette.GreenBold, "Sent '%s' to %d recipient(s) via %s",
		subject, len(recipients), provider,
	)
	return e
}
