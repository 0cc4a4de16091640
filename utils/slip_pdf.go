package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"beneficiarydesk/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateSlipPDF renders the token slip template with headless Chrome and
// returns the PDF bytes. A5 portrait, one slip per page.
func GenerateSlipPDF(data *models.SlipData) ([]byte, error) {
	tmpl, err := template.ParseFiles("templates/slip_template.html")
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A5;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 14px;
			margin: 0;
			padding: 0;
		}
		.slip {
			page-break-inside: avoid;
		}
		</style>
		</head>
		<body><div class='slip'>` + body.String() + `</div></body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "slip_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(5.83).  // A5 width
				WithPaperHeight(8.27). // A5 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
