package workbook

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
Open loads a source workbook. Locations starting with http:// or https://
are fetched over the network; anything else is treated as a local path.
*/
func Open(location string) (file *excelize.File, e *xerr.Error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return fetch(location)
	}

	file, openErr := excelize.OpenFile(location)
	if openErr != nil {
		return file, xerr.NewError(openErr, "Unable to open workbook", location)
	}
	tl.Log(tl.Verbose, palette.CyanDim, "Opened workbook '%s'", location)
	return file, nil
}

/*
fetch downloads a workbook and parses it from memory.
*/
func fetch(urlStr string) (file *excelize.File, e *xerr.Error) {
	tl.Log(tl.Verbose, palette.BlueDim, "Fetching workbook from '%s'", urlStr)

	resp, getErr := http.Get(urlStr)
	if getErr != nil {
		return file, xerr.NewError(getErr, "Unable to fetch workbook", urlStr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return file, xerr.NewError(fmt.Errorf("status %s", resp.Status), "Unexpected workbook fetch response", urlStr)
	}

	body, e := getBody(resp, urlStr)
	if e != nil {
		return file, e
	}

	file, openErr := excelize.OpenReader(bytes.NewReader(body))
	if openErr != nil {
		return file, xerr.NewError(openErr, "Unable to parse fetched workbook", urlStr)
	}
	return file, nil
}

/*
Get body of http.Response, handle compression.
Pass original url for more clear logging.
*/
func getBody(resp *http.Response, urlStr string) (body []byte, e *xerr.Error) {
	var reader io.ReadCloser
	contentEncoding := resp.Header.Get("Content-Encoding")

	tl.Log(tl.Verbose5, palette.BlueDim, "Get body (content encoding is '%s') for '%s'", contentEncoding, urlStr)
	switch contentEncoding {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return body, xerr.NewError(err, "Unable to get gzip reader", urlStr)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		reader = flate.NewReader(resp.Body)
		defer reader.Close()
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body)) // Wrap brotli.Reader to satisfy io.ReadCloser
		// no need to close brotli reader
	case "", "none":
		// No compression, just use the response body as-is
		reader = resp.Body
	default:
		// No compression, just use the response body as-is
		reader = resp.Body
		tl.Log(tl.Warning, palette.YellowDim, "\nUnsupported %s: '%s'", "Content-Encoding", contentEncoding)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return body, xerr.NewError(err, "Failed to read response body", urlStr)
	}
	tl.Log(tl.Verbose6, palette.GreenDim, "Got body length %d (content encoding is '%s') for '%s'", len(body), contentEncoding, urlStr)

	return body, nil
}

/*
Rows returns the full value grid of a sheet. A missing sheet is an error;
the caller decides whether that is fatal.
*/
func Rows(file *excelize.File, sheet string) (rows [][]string, e *xerr.Error) {
	rows, rowsErr := file.GetRows(sheet)
	if rowsErr != nil {
		return rows, xerr.NewError(rowsErr, "Unable to read sheet rows", sheet)
	}
	tl.Log(tl.Verbose5, palette.CyanDim, "Read %d rows from '%s'", len(rows), sheet)
	return rows, nil
}
