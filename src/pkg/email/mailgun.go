package email

import (
	"context"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
sendWithMailgun delivers through the Mailgun messages API, configured by
MAILGUN_DOMAIN and MAILGUN_API_KEY.
*/
func sendWithMailgun(sender string, recipients []string, subject string, text string, html string, attachments []Attachment) (e *xerr.Error) {
	client := mailgun.NewMailgun(os.Getenv("MAILGUN_DOMAIN"), os.Getenv("MAILGUN_API_KEY"))

	message := client.NewMessage(sender, subject, text, recipients...)
	if html != "" {
		message.SetHtml(html)
	}
	for _, attachment := range attachments {
		message.AddBufferAttachment(attachment.Filename, attachment.Content)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, id, sendErr := client.Send(ctx, message)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send email via Mailgun", subject)
		return e
	}

	tl.Log(tl.Info1, palette.Green, "Mailgun accepted message '%s': %s", id, response)
	return e
}
