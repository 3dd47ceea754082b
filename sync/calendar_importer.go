// ABOUTME: Calendar event importer from Google Calendar API
// ABOUTME: Handles pagination, sync tokens, and turns past meetings into records
package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

const (
	maxResults = 250 // Google Calendar API max per page

	// initialCalendarMonths bounds the first import.
	initialCalendarMonths = 6
)

// shouldSkipEvent determines if an event should be skipped during import
// Returns (true, reason) if the event should be skipped, (false, "") otherwise
func shouldSkipEvent(event *calendar.Event, now time.Time) (bool, string) {
	if event == nil {
		return true, "nil event"
	}

	if event.Start == nil {
		return true, "missing start time"
	}

	// Skip all-day events (event.Start.Date is set instead of DateTime)
	if event.Start.Date != "" {
		return true, "all-day event"
	}

	if event.Status == "cancelled" {
		return true, "cancelled"
	}

	// Use Self flag to identify the current user's attendee record
	for _, attendee := range event.Attendees {
		if attendee.Self && attendee.ResponseStatus == "declined" {
			return true, "declined"
		}
	}

	// Skip solo events (0 or 1 attendees)
	if len(event.Attendees) <= 1 {
		return true, "solo event"
	}

	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return true, "unparseable start time"
	}
	if start.After(now) {
		return true, "future event"
	}

	return false, ""
}

// EventRecords converts the meetings that already happened into records.
func EventRecords(events []*calendar.Event, now time.Time, res *Result) []Record {
	var records []Record
	for _, event := range events {
		if skip, reason := shouldSkipEvent(event, now); skip {
			res.Skipped[reason]++
			continue
		}

		start, _ := time.Parse(time.RFC3339, event.Start.DateTime)
		var emails []string
		for _, a := range event.Attendees {
			if !a.Self && a.Email != "" {
				emails = append(emails, a.Email)
			}
		}

		records = append(records, Record{
			Source:     SourceCalendar,
			ExternalID: event.Id,
			Date:       start,
			Emails:     emails,
			Notes:      event.Summary,
		})
	}
	return records
}

// fetchEvents lists primary calendar events, incrementally when syncToken is
// set. An expired token (410 Gone) falls back to a time-bounded listing.
func fetchEvents(ctx context.Context, client *calendar.Service, syncToken string, since time.Time) ([]*calendar.Event, string, error) {
	list := func(token string) *calendar.EventsListCall {
		call := client.Events.List("primary").
			Context(ctx).
			MaxResults(maxResults).
			SingleEvents(true)
		if token != "" {
			return call.SyncToken(token)
		}
		return call.TimeMin(since.Format(time.RFC3339))
	}

	var events []*calendar.Event
	call := list(syncToken)
	for {
		page, err := call.Do()
		if err != nil {
			var apiErr *googleapi.Error
			if syncToken != "" && errors.As(err, &apiErr) && apiErr.Code == http.StatusGone {
				return fetchEvents(ctx, client, "", since)
			}
			return nil, "", fmt.Errorf("failed to fetch calendar events: %w", err)
		}

		events = append(events, page.Items...)
		if page.NextPageToken == "" {
			return events, page.NextSyncToken, nil
		}
		call = list(syncToken).PageToken(page.NextPageToken)
	}
}

// ImportCalendar fetches calendar events and logs past meetings against
// the companies of their attendees.
func (im *Importer) ImportCalendar(ctx context.Context, client *calendar.Service, methodID uuid.UUID, initial bool) (Result, error) {
	res := newResult()
	now := im.engine.Now()

	token := im.state.CalendarSyncToken
	if initial {
		token = ""
	}
	since := now.AddDate(0, -initialCalendarMonths, 0)
	if token == "" && im.state.LastCalendarSync != nil && !initial {
		since = *im.state.LastCalendarSync
	}

	im.logger.Info("Syncing Google Calendar", "incremental", token != "")
	events, nextToken, err := fetchEvents(ctx, client, token, since)
	if err != nil {
		return res, err
	}
	res.Fetched = len(events)

	if err := im.ImportRecords(EventRecords(events, now, &res), methodID, &res); err != nil {
		return res, err
	}

	im.state.CalendarSyncToken = nextToken
	im.state.LastCalendarSync = &now
	return res, SaveState(im.store, im.state)
}
