package email

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
sendWithSendgrid delivers through SendGrid's v3 mail API, authenticated
by SENDGRID_API_KEY.
*/
func sendWithSendgrid(sender string, recipients []string, subject string, text string, html string, attachments []Attachment) (e *xerr.Error) {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", sender))
	message.Subject = subject

	personalization := mail.NewPersonalization()
	for _, recipient := range recipients {
		personalization.AddTos(mail.NewEmail("", recipient))
	}
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", text))
	if html != "" {
		message.AddContent(mail.NewContent("text/html", html))
	}

	for _, attachment := range attachments {
		fileAttachment := mail.NewAttachment()
		fileAttachment.SetFilename(attachment.Filename)
		fileAttachment.SetContent(base64.StdEncoding.EncodeToString(attachment.Content))
		fileAttachment.SetDisposition("attachment")
		message.AddAttachment(fileAttachment)
	}

	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, sendErr := client.Send(message)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send email via SendGrid", subject)
		return e
	}
	if e = sendgridStatusError(response, subject); e != nil {
		return e
	}

	tl.Log(tl.Info1, palette.Green, "SendGrid accepted with status %d", response.StatusCode)
	return e
}

// the v3 API reports rejections in the response, not the error
func sendgridStatusError(response *rest.Response, subject string) *xerr.Error {
	if response.StatusCode < 300 {
		return nil
	}
	return xerr.NewError(
		fmt.Errorf("status %d: %s", response.StatusCode, response.Body),
		"send email via SendGrid", subject,
	)
}
