// in case you need to create an entrypoint with multiple subprograms
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/config"
	"poultry-dashboard/src/pkg/email"
	"poultry-dashboard/src/pkg/util"
)

/*
Send a test email through the chosen provider to verify its credentials
and the sender address, before wiring it into the scheduled runs. Body
files are optional; the built-in test body is used when absent.
*/
func testProvider(subprogram string, flags []string) {
	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to JSON config file")

	// custom flags
	provider := subprogramCmd.String("provider", "ses", "Provider to use when sending emails")
	senderAddress := subprogramCmd.String("sender", "", "Sender's address")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address(es), comma separated")
	subject := subprogramCmd.String("subject", "Pullus dashboard test email", "Subject of an email")
	emailHtmlFilePath := subprogramCmd.String("html", "", "Path to an HTML body file")
	emailTextFilePath := subprogramCmd.String("text", "", "Path to a text body file")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)

	util.RequiredFlag(senderAddress, "sender")
	util.RequiredFlag(recipientAddress, "recipient")
	util.EnsureFlags()

	config.CheckIfEnvVarsPresent(email.RequiredEnv(email.Provider(*provider))...)

	recipientAddresses := strings.Split(*recipientAddress, ",")

	text := "This is a Pullus dashboard test email."
	if *emailTextFilePath != "" {
		textFileContentBytes, readErr := os.ReadFile(*emailTextFilePath)
		xerr.QuitIfError(readErr, fmt.Sprintf("Unable to read file '%s'", *emailTextFilePath))
		text = string(textFileContentBytes)
	}
	html := ""
	if *emailHtmlFilePath != "" {
		htmlFileContentBytes, readErr := os.ReadFile(*emailHtmlFilePath)
		xerr.QuitIfError(readErr, fmt.Sprintf("Unable to read file '%s'", *emailHtmlFilePath))
		html = string(htmlFileContentBytes)
	}
	tl.Log(tl.Verbose, palette.BlueDim, "Full Email:\n```\n%s\n```", text)

	// send email here
	sendEmails := true
	e := email.SendMessage(email.Provider(*provider), &sendEmails, *senderAddress, recipientAddresses, *subject, text, html, nil)
	e.QuitIf("error")
}

// email-safe markup, inline styles only
const reportHtmlBody = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background-color:#F8F9FA;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:560px;margin:0 auto;background-color:#FFFFFF;border:1px solid #DEE2E6;border-radius:8px;padding:24px;">
    <h2 style="margin:0 0 8px 0;color:#1B2A4A;">Pullus Dashboard Report</h2>
    <p style="margin:0 0 16px 0;color:#2C3E50;">Report date: %s</p>
    <p style="margin:0;color:#2C3E50;">The latest dashboard workbook is attached as <b>%s</b>.</p>
  </div>
</body>
</html>`

/*
Send the rendered dashboard workbook to the recipients, attached to a
short report email.
*/
func sendReport(subprogram string, flags []string) {
	// common flags
	subprogramCmd := flag.NewFlagSet(subprogram, flag.ExitOnError)
	configPath := subprogramCmd.String("config", "./cfg/config.json", "Path to JSON config file")

	// custom flags
	provider := subprogramCmd.String("provider", "ses", "Provider to use when sending emails")
	senderAddress := subprogramCmd.String("sender", "", "Sender's address")
	recipientAddress := subprogramCmd.String("recipient", "", "Recipient's address(es), comma separated")

	// parse and init config
	xerr.QuitIfError(subprogramCmd.Parse(flags), "Unable to subprogramCmd.Parse")
	config.InitializeConfig(*configPath)

	util.RequiredFlag(senderAddress, "sender")
	util.RequiredFlag(recipientAddress, "recipient")
	util.EnsureFlags()

	config.CheckIfEnvVarsPresent(email.RequiredEnv(email.Provider(*provider))...)

	recipientAddresses := strings.Split(*recipientAddress, ",")

	location, locationErr := time.LoadLocation(config.Cfg.Timezone)
	if locationErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Invalid timezone '%s'; falling back to UTC", config.Cfg.Timezone)
		location = time.UTC
	}
	now := time.Now().In(location)

	workbookBytes, readErr := os.ReadFile(config.Cfg.DashboardWorkbook)
	xerr.QuitIfError(readErr, fmt.Sprintf("Unable to read dashboard workbook '%s'", config.Cfg.DashboardWorkbook))

	filename := fmt.Sprintf("pullus-dashboard-%s.xlsx", now.Format("20060102"))
	subject := fmt.Sprintf("Pullus Dashboard Report %s", now.Format("02 Jan 2006"))
	text := fmt.Sprintf("The latest Pullus dashboard workbook is attached as %s.", filename)
	html := fmt.Sprintf(reportHtmlBody, now.Format("02 Jan 2006"), filename)
	attachments := []email.Attachment{{Filename: filename, Content: workbookBytes}}

	// send email here
	sendEmails := true
	e := email.SendMessage(email.Provider(*provider), &sendEmails, *senderAddress, recipientAddresses, subject, text, html, attachments)
	e.QuitIf("error")
}

func main() {
	// Check if there are enough arguments
	if len(os.Args) < 2 {
		tl.Log(tl.Error, palette.Red, "Usage: %s", "go run src/cmd/send-email/main.go subprogram_name(for example report)")
		os.Exit(1)
	}
	subprogram := os.Args[1]
	flags := os.Args[2:]

	// Switch subprogram based on the first argument
	switch subprogram {
	case "test-provider":
		testProvider(subprogram, flags)
	case "report":
		sendReport(subprogram, flags)
	default:
		tl.Log(tl.Error, palette.Red, "Unknown subprogram: %s", subprogram)
		os.Exit(1)
	}
}
