package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/archive"
	"poultry-dashboard/src/pkg/competitor"
	"poultry-dashboard/src/pkg/config"
	"poultry-dashboard/src/pkg/docprice"
	"poultry-dashboard/src/pkg/email"
	"poultry-dashboard/src/pkg/hashstate"
	"poultry-dashboard/src/pkg/purchase"
	"poultry-dashboard/src/pkg/util"
	"poultry-dashboard/src/pkg/workbook"
)

/*
Builds the dashboard workbook from the configured source workbooks, one
styled sheet per report domain. Unattended runs skip any sheet whose
source data hash is unchanged since the last run.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to JSON config file")
	archiveFlag := flag.Bool("archive", false, "Upload the workbook to the configured S3 bucket after the run")
	notifyFlag := flag.Bool("notify", false, "Email the update summary after the run")
	provider := flag.String("provider", "ses", "Email provider for -notify: ses, sendgrid or mailgun")
	senderAddress := flag.String("sender", "", "Sender address for -notify")
	recipientAddress := flag.String("recipient", "", "Recipient address(es) for -notify, comma separated")
	flag.Parse()

	if *notifyFlag {
		util.RequiredFlag(senderAddress, "sender")
		util.RequiredFlag(recipientAddress, "recipient")
	}
	util.EnsureFlags()

	config.InitializeConfig(*configPath)

	if *archiveFlag {
		config.CheckIfEnvVarsPresent("AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION")
		if config.Cfg.ArchiveBucket == "" {
			xerr.QuitIfError(
				fmt.Errorf("archive bucket is not configured"),
				"set archive_bucket in the config file or ARCHIVE_BUCKET in the environment",
			)
		}
	}
	if *notifyFlag {
		config.CheckIfEnvVarsPresent(email.RequiredEnv(email.Provider(*provider))...)
	}

	location, locationErr := time.LoadLocation(config.Cfg.Timezone)
	if locationErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Invalid timezone '%s'; falling back to UTC", config.Cfg.Timezone)
		location = time.UTC
	}
	now := time.Now().In(location)
	year := now.Year()

	tl.Log(tl.Notice, palette.BlueBold, "Building Pullus dashboard for %d", year)

	dashboard, e := workbook.OpenDashboard(config.Cfg.DashboardWorkbook)
	e.QuitIf(xerr.ErrorTypeError)

	tracker := hashstate.NewTracker(config.Cfg.HashFile)
	updated := []string{}

	tl.Log(tl.Notice, palette.BlueBold, "[%s]", purchase.SheetName)
	purchaseData, e := purchase.FetchRows(config.Cfg.PurchaseWorkbook, config.Cfg.PurchaseTab)
	e.QuitIf(xerr.ErrorTypeError)
	if tracker.Changed("weekly_purchase", purchaseData) {
		weeks := purchase.AggregateWeekly(purchaseData, year)
		if len(weeks) == 0 {
			tl.Log(tl.Info, palette.Yellow, "No current-year data found, skipping")
		} else {
			tl.Log(tl.Info, palette.Cyan, "Found %d weeks of data", len(weeks))
			e = purchase.Render(dashboard, weeks, now)
			e.QuitIf(xerr.ErrorTypeError)
			e = workbook.Save(dashboard, config.Cfg.DashboardWorkbook)
			e.QuitIf(xerr.ErrorTypeError)
			updated = append(updated, purchase.SheetName)
		}
	}

	tl.Log(tl.Notice, palette.BlueBold, "[%s]", docprice.SheetName)
	priceData, e := docprice.FetchRows(config.Cfg.DocPriceWorkbook, config.Cfg.DocPriceTab)
	e.QuitIf(xerr.ErrorTypeError)
	if tracker.Changed("doc_price", priceData) {
		weeks := docprice.AggregateWeekly(priceData, year)
		if len(weeks) == 0 {
			tl.Log(tl.Info, palette.Yellow, "No current-year data found, skipping")
		} else {
			tl.Log(tl.Info, palette.Cyan, "Found %d weeks of data", len(weeks))
			e = docprice.Render(dashboard, weeks, now)
			e.QuitIf(xerr.ErrorTypeError)
			e = workbook.Save(dashboard, config.Cfg.DashboardWorkbook)
			e.QuitIf(xerr.ErrorTypeError)
			updated = append(updated, docprice.SheetName)
		}
	}

	tl.Log(tl.Notice, palette.BlueBold, "[%s]", competitor.SellingSheetName)
	sellingRecords, e := competitor.FetchSellingRecords(
		config.Cfg.CompetitorSellingWorkbook, config.Cfg.CompetitorSellingTabs, year, config.Cfg.StrictSchema,
	)
	e.QuitIf(xerr.ErrorTypeError)
	if tracker.Changed("competitor_selling", sellingRecords) {
		sellingRows := competitor.AggregateSelling(sellingRecords)
		if len(sellingRows) == 0 {
			tl.Log(tl.Info, palette.Yellow, "No current-year data found, skipping")
		} else {
			tl.Log(tl.Info, palette.Cyan, "Found %d aggregated entries", len(sellingRows))
			e = competitor.RenderSelling(dashboard, sellingRows, now)
			e.QuitIf(xerr.ErrorTypeError)
			e = workbook.Save(dashboard, config.Cfg.DashboardWorkbook)
			e.QuitIf(xerr.ErrorTypeError)
			updated = append(updated, competitor.SellingSheetName)
		}
	}

	tl.Log(tl.Notice, palette.BlueBold, "[%s]", competitor.BuyingSheetName)
	buyingRecords, e := competitor.FetchBuyingRecords(
		config.Cfg.CompetitorBuyingWorkbook, config.Cfg.CompetitorBuyingTab, year, config.Cfg.StrictSchema,
	)
	e.QuitIf(xerr.ErrorTypeError)
	if tracker.Changed("competitor_buying", buyingRecords) {
		if len(buyingRecords) == 0 {
			tl.Log(tl.Info, palette.Yellow, "No current-year data found, skipping")
		} else {
			tl.Log(tl.Info, palette.Cyan, "Found %d entries", len(buyingRecords))
			e = competitor.RenderBuying(dashboard, buyingRecords, now)
			e.QuitIf(xerr.ErrorTypeError)
			e = workbook.Save(dashboard, config.Cfg.DashboardWorkbook)
			e.QuitIf(xerr.ErrorTypeError)
			updated = append(updated, competitor.BuyingSheetName)
		}
	}

	e = tracker.Persist()
	e.QuitIf(xerr.ErrorTypeError)

	if len(updated) == 0 {
		tl.Log(tl.Notice, palette.Yellow, "No changes detected, dashboard untouched.")
		return
	}
	tl.Log(tl.Notice, palette.GreenBold, "Updated: %s", strings.Join(updated, ", "))

	if *archiveFlag {
		e = archive.UploadReport(config.Cfg.ArchiveBucket, archive.ReportKey(now), config.Cfg.DashboardWorkbook)
		e.QuitIf(xerr.ErrorTypeError)
	}

	if *notifyFlag {
		recipientAddresses := strings.Split(*recipientAddress, ",")
		subject := fmt.Sprintf("Pullus dashboard updated %s", now.Format("02 Jan 2006"))
		text := fmt.Sprintf("Rebuilt sheets: %s.", strings.Join(updated, ", "))
		sendEmails := true
		e = email.SendMessage(
			email.Provider(*provider), &sendEmails, *senderAddress, recipientAddresses, subject, text, "", nil,
		)
		e.QuitIf(xerr.ErrorTypeError)
	}
}
