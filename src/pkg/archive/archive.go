/*
Package archive pushes rendered dashboard workbooks to S3 so every
scheduled run leaves a dated copy behind.
*/
package archive

import (
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

/*
ReportKey is the dated object key for one run's workbook, grouped by
year and month.
*/
func ReportKey(now time.Time) string {
	return fmt.Sprintf("reports/%s/dashboard-%s.xlsx", now.Format("2006/01"), now.Format("20060102"))
}

/*
UploadReport streams the workbook at path into the bucket under key.
Credentials and region come from the AWS environment.
*/
func UploadReport(bucket string, key string, path string) (e *xerr.Error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		e = xerr.NewError(openErr, "open workbook for upload", path)
		return e
	}
	defer func() {
		_ = file.Close()
	}()

	awsSession, sessionErr := session.NewSession()
	if sessionErr != nil {
		e = xerr.NewError(sessionErr, "create AWS session", "")
		return e
	}

	uploader := s3manager.NewUploader(awsSession)
	result, uploadErr := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(workbookContentType),
	})
	if uploadErr != nil {
		e = xerr.NewError(uploadErr, "upload workbook to S3", fmt.Sprintf("s3://%s/%s", bucket, key))
		return e
	}

	tl.Log(tl.Notice, palette.GreenBold, "Archived workbook to '%s'", result.Location)
	return e
}
