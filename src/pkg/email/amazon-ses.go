package email

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
sendWithSes delivers through Amazon SES v2. Credentials and region come
from the default AWS chain (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
AWS_REGION).
*/
func sendWithSes(sender string, recipients []string, subject string, text string, html string, attachments []Attachment) (e *xerr.Error) {
	ctx := context.Background()

	awsCfg, loadErr := awsconfig.LoadDefaultConfig(ctx)
	if loadErr != nil {
		e = xerr.NewError(loadErr, "load AWS configuration", "")
		return e
	}
	client := sesv2.NewFromConfig(awsCfg)

	body := &types.Body{
		Text: &types.Content{Data: aws.String(text)},
	}
	if html != "" {
		body.Html = &types.Content{Data: aws.String(html)}
	}
	message := &types.Message{
		Subject: &types.Content{Data: aws.String(subject)},
		Body:    body,
	}
	for _, attachment := range attachments {
		message.Attachments = append(message.Attachments, types.MessageAttachment{
			FileName:   aws.String(attachment.Filename),
			RawContent: attachment.Content,
		})
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(sender),
		Destination:      &types.Destination{ToAddresses: recipients},
		Content:          &types.EmailContent{Simple: message},
	}

	output, sendErr := client.SendEmail(ctx, input)
	if sendErr != nil {
		e = xerr.NewError(sendErr, "send email via SES", subject)
		return e
	}

	tl.Log(tl.Info1, palette.Green, "SES accepted message '%s'", aws.ToString(output.MessageId))
	return e
}
