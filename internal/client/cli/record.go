package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pastelog/pastelog/internal/client/summary"
	"github.com/pastelog/pastelog/internal/models"
)

// formatLog renders a one-line listing entry.
func formatLog(l *models.Log) string {
	title := l.Title
	if title == "" {
		title = "(untitled)"
	}
	expiry := "never"
	if l.ExpiryDate != nil {
		expiry = l.ExpiryDate.Local().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s  %-20s  created %s  expires %s",
		l.ID, title, l.CreatedDate.Local().Format(time.RFC3339), expiry)
}

// List shows all live records. When online the listing comes from the
// server and refreshes the mirror; offline it is served from the mirror.
func (a *App) List(ctx context.Context) error {
	var (
		records []models.Log
		err     error
	)
	if a.isOnline() {
		records, err = a.logService.FetchAll(ctx)
	} else {
		records, err = a.logService.ListLocal(ctx)
	}
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(records) == 0 {
		fmt.Println("No records.")
		return nil
	}
	for i := range records {
		fmt.Println(formatLog(&records[i]))
	}
	return nil
}

// Local lists records from the mirror only, regardless of connectivity.
func (a *App) Local(ctx context.Context) error {
	records, err := a.logService.ListLocal(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if len(records) == 0 {
		fmt.Println("No cached records.")
		return nil
	}
	for i := range records {
		fmt.Println(formatLog(&records[i]))
	}
	return nil
}

// Show fetches and prints a single record by ID.
func (a *App) Show(ctx context.Context, id string) error {
	record, err := a.logService.FetchByID(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println(formatLog(record))
	fmt.Println(record.Data)
	return nil
}

// promptRecord collects the fields of a new record interactively.
func (a *App) promptRecord(ctx context.Context) (*models.Log, error) {
	title, err := GetSimpleText(a.reader, "Enter title (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}

	data, err := GetMultiline(a.reader, "Enter text:", os.Stdout)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, fmt.Errorf("record text is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind, err := GetSimpleText(a.reader, "Enter type (text/markdown/code, default text)", os.Stdout)
	if err != nil {
		return nil, err
	}
	logType := models.LogTypeText
	switch strings.ToLower(kind) {
	case "markdown", "md":
		logType = models.LogTypeMarkdown
	case "code":
		logType = models.LogTypeCode
	}

	ttl, err := GetSimpleText(a.reader, "Enter time to live, e.g. 24h (empty for no expiry)", os.Stdout)
	if err != nil {
		return nil, err
	}
	var expiry *time.Time
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid time to live: %w", err)
		}
		t := time.Now().UTC().Add(d)
		expiry = &t
	}

	return &models.Log{Data: data, Title: title, ExpiryDate: expiry, Type: logType}, nil
}

// Publish collects a new record interactively and publishes it. An empty
// identifier from the coordinator means the write did not reach the server.
func (a *App) Publish(ctx context.Context) error {
	record, err := a.promptRecord(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	id, err := a.logService.Publish(ctx, record)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if id == "" {
		fmt.Println("Publish failed, record was not saved. Try again later.")
		return nil
	}
	fmt.Printf("Published %s\n", id)
	return nil
}

// PublishAt publishes a record at a chosen identifier, overwriting any
// record already stored there.
func (a *App) PublishAt(ctx context.Context, id string) error {
	record, err := a.promptRecord(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.logService.PublishWithID(ctx, record, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Published %s\n", id)
	return nil
}

// Update re-prompts the fields of an existing record and writes the
// changes through. Empty answers keep the current values.
func (a *App) Update(ctx context.Context, id string) error {
	record, err := a.logService.FetchByID(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Enter title (empty keeps %q)", record.Title), os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		record.Title = title
	}

	data, err := GetMultiline(a.reader, "Enter new text (empty keeps current):", os.Stdout)
	if err != nil {
		return err
	}
	if data != "" {
		record.Data = data
	}

	if err := a.logService.Update(ctx, id, record); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Updated %s\n", id)
	return nil
}

// Expire marks a record as expired. The record disappears from listings
// immediately but stays in the remote store until swept.
func (a *App) Expire(ctx context.Context, id string) error {
	if err := a.logService.MarkExpiredByID(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Expired %s\n", id)
	return nil
}

// Delete removes a record permanently.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.logService.DeleteByID(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

// Import fetches a GitHub gist and publishes each of its files as a record.
func (a *App) Import(ctx context.Context, ref string) error {
	records, err := a.importer.Import(ctx, ref)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for i := range records {
		id, err := a.logService.Publish(ctx, &records[i])
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		if id == "" {
			fmt.Printf("Failed to publish %q\n", records[i].Title)
			continue
		}
		fmt.Printf("Imported %q as %s\n", records[i].Title, id)
	}
	return nil
}

// Summarize fetches a record and prints a generated summary of its contents.
// When no API key was configured, the key is read from the terminal without
// echo and kept for the rest of the session.
func (a *App) Summarize(ctx context.Context, id string) error {
	if a.summarizer == nil {
		key, err := GetSecret(os.Stdout, "Enter Gemini API key")
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		if len(key) == 0 {
			err := fmt.Errorf("summary api key is required")
			log.Printf("error: %v", err)
			return err
		}
		a.summarizer = summary.NewSummarizer(string(key))
	}

	record, err := a.logService.FetchByID(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	s, err := a.summarizer.Summarize(ctx, record.Data)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Println(s)
	return nil
}
