// ABOUTME: Google API service constructors
// ABOUTME: Calendar, Gmail, and People services from a saved OAuth token
package sync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

func httpOption(ctx context.Context, token *oauth2.Token) (option.ClientOption, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}
	return option.WithHTTPClient(NewOAuthConfig().Client(ctx, token)), nil
}

// NewCalendarClient creates a Google Calendar API service from an OAuth token.
func NewCalendarClient(ctx context.Context, token *oauth2.Token) (*calendar.Service, error) {
	opt, err := httpOption(ctx, token)
	if err != nil {
		return nil, err
	}
	service, err := calendar.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return service, nil
}

// NewGmailClient creates a new Google Gmail API client.
func NewGmailClient(ctx context.Context, token *oauth2.Token) (*gmail.Service, error) {
	opt, err := httpOption(ctx, token)
	if err != nil {
		return nil, err
	}
	service, err := gmail.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return service, nil
}

// NewPeopleClient creates a new Google People API client.
func NewPeopleClient(ctx context.Context, token *oauth2.Token) (*people.Service, error) {
	opt, err := httpOption(ctx, token)
	if err != nil {
		return nil, err
	}
	service, err := people.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}
	return service, nil
}
