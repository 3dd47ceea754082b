// ABOUTME: Gmail importer for sent mail
// ABOUTME: Each sent message to a company address becomes a logged communication
package sync

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/gmail/v1"
)

const (
	maxGmailResults   = 500 // Gmail API max per page
	defaultImportDays = 30  // Last 30 days for initial sync

	// maxRecipients separates conversations from mailing-list blasts.
	maxRecipients = 10

	skipReasonGroup    = "group email"
	skipReasonCalendar = "calendar invite"
	skipReasonNoDate   = "unparseable date"
)

var calendarSubjectPrefixes = []string{
	"Invitation:",
	"Updated invitation:",
	"Accepted:",
	"Declined:",
	"Tentatively Accepted:",
	"Canceled event:",
}

// BuildSentQuery returns the Gmail search query for mail sent since the
// given day.
func BuildSentQuery(since time.Time) string {
	return fmt.Sprintf("in:sent after:%s", since.Format("2006/01/02"))
}

// parseHeaders flattens message headers into a map.
func parseHeaders(payload *gmail.MessagePart) map[string]string {
	headers := make(map[string]string)
	if payload == nil {
		return headers
	}
	for _, h := range payload.Headers {
		headers[h.Name] = h.Value
	}
	return headers
}

// ExtractEmailAddresses parses an address list header into bare addresses.
func ExtractEmailAddresses(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	addrs, err := mail.ParseAddressList(header)
	if err == nil {
		out := make([]string, 0, len(addrs))
		for _, a := range addrs {
			out = append(out, normalizeEmail(a.Address))
		}
		return out
	}

	// Fall back to splitting on commas for headers net/mail rejects
	var out []string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if i := strings.LastIndex(part, "<"); i >= 0 {
			part = strings.TrimSuffix(part[i+1:], ">")
		}
		if strings.Contains(part, "@") {
			out = append(out, normalizeEmail(part))
		}
	}
	return out
}

// parseEmailDate parses RFC 2822 email date
func parseEmailDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// Strip trailing timezone name like "(UTC)" or "(PST)"
	if idx := strings.Index(dateStr, " ("); idx > 0 {
		dateStr = dateStr[:idx]
	}

	formats := []string{
		time.RFC1123Z,                    // "Mon, 02 Jan 2006 15:04:05 -0700"
		"Mon, 2 Jan 2006 15:04:05 -0700", // Single digit day with timezone
		time.RFC1123,                     // "Mon, 02 Jan 2006 15:04:05 MST"
		"Mon, 2 Jan 2006 15:04:05 MST",   // Single digit day without numeric timezone
		time.RFC822Z,                     // "02 Jan 06 15:04 -0700"
		time.RFC822,                      // "02 Jan 06 15:04 MST"
		time.RFC3339,                     // "2006-01-02T15:04:05Z07:00"
	}

	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse date: %s", dateStr)
}

// MessageRecord converts a sent message into a record, or returns a skip
// reason.
func MessageRecord(msg *gmail.Message) (Record, string) {
	headers := parseHeaders(msg.Payload)
	subject := headers["Subject"]

	for _, prefix := range calendarSubjectPrefixes {
		if strings.HasPrefix(subject, prefix) {
			return Record{}, skipReasonCalendar
		}
	}

	recipients := append(ExtractEmailAddresses(headers["To"]), ExtractEmailAddresses(headers["Cc"])...)
	if len(recipients) > maxRecipients {
		return Record{}, skipReasonGroup
	}

	date, err := parseEmailDate(headers["Date"])
	if err != nil {
		if msg.InternalDate == 0 {
			return Record{}, skipReasonNoDate
		}
		date = time.UnixMilli(msg.InternalDate)
	}

	return Record{
		Source:     SourceGmail,
		ExternalID: msg.Id,
		Date:       date,
		Emails:     recipients,
		Notes:      subject,
	}, ""
}

func fetchSentMessages(ctx context.Context, client *gmail.Service, query string) ([]*gmail.Message, error) {
	var messages []*gmail.Message
	pageToken := ""

	for {
		call := client.Users.Messages.List("me").
			Context(ctx).
			Q(query).
			MaxResults(maxGmailResults)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages: %w", err)
		}
		if response == nil {
			break
		}

		for _, ref := range response.Messages {
			msg, err := client.Users.Messages.Get("me", ref.Id).
				Context(ctx).
				Format("metadata").
				MetadataHeaders("To", "Cc", "Subject", "Date").
				Do()
			if err != nil {
				return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
			}
			messages = append(messages, msg)
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return messages, nil
}

// ImportGmail logs sent mail from the last days days (or since the previous
// run when not initial) against the companies of its recipients.
func (im *Importer) ImportGmail(ctx context.Context, client *gmail.Service, methodID uuid.UUID, days int, initial bool) (Result, error) {
	res := newResult()
	now := im.engine.Now()

	if days <= 0 {
		days = defaultImportDays
	}
	since := now.AddDate(0, 0, -days)
	// Overlap by a day; duplicates are filtered by id
	if !initial && im.state.LastGmailSync != nil {
		since = im.state.LastGmailSync.AddDate(0, 0, -1)
	}

	im.logger.Info("Syncing Gmail", "since", since.Format("2006-01-02"))
	messages, err := fetchSentMessages(ctx, client, BuildSentQuery(since))
	if err != nil {
		return res, err
	}
	res.Fetched = len(messages)

	var records []Record
	for _, msg := range messages {
		r, reason := MessageRecord(msg)
		if reason != "" {
			res.Skipped[reason]++
			continue
		}
		records = append(records, r)
	}

	if err := im.ImportRecords(records, methodID, &res); err != nil {
		return res, err
	}

	im.state.LastGmailSync = &now
	return res, SaveState(im.store, im.state)
}
