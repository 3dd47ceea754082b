// ABOUTME: Shared helpers for CLI commands
// ABOUTME: ID parsing, date formatting, and repeatable string flags
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const dateLayout = "2006-01-02 15:04"

func formatDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(dateLayout)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func parseCompanyID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("company ID required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid company ID: %w", err)
	}
	return id, nil
}

func parseMethodID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid method ID: %w", err)
	}
	return id, nil
}

func parseCommunicationID(s string) (ulid.ULID, error) {
	if s == "" {
		return ulid.ULID{}, fmt.Errorf("communication ID required")
	}
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("invalid communication ID: %w", err)
	}
	return id, nil
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
