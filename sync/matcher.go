// ABOUTME: Matches email addresses to companies
// ABOUTME: Exact company email first, then a company-specific email domain
package sync

import (
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
)

type CompanyMatcher struct {
	byEmail  map[string]uuid.UUID
	byDomain map[string]uuid.UUID
}

// NewCompanyMatcher indexes the emails of companies. A domain shared by two
// companies matches neither.
func NewCompanyMatcher(companies []models.Company) *CompanyMatcher {
	m := &CompanyMatcher{
		byEmail:  make(map[string]uuid.UUID),
		byDomain: make(map[string]uuid.UUID),
	}

	for _, c := range companies {
		for _, e := range c.Emails {
			email := normalizeEmail(e)
			if email == "" {
				continue
			}
			m.byEmail[email] = c.ID

			domain := extractDomain(email)
			if domain == "" || isCommonEmailDomain(domain) {
				continue
			}
			if owner, ok := m.byDomain[domain]; ok && owner != c.ID {
				m.byDomain[domain] = uuid.Nil
				continue
			}
			m.byDomain[domain] = c.ID
		}
	}

	return m
}

// Match returns the company an email address belongs to.
func (m *CompanyMatcher) Match(email string) (uuid.UUID, bool) {
	email = normalizeEmail(email)
	if email == "" {
		return uuid.Nil, false
	}

	if id, ok := m.byEmail[email]; ok {
		return id, true
	}

	id, ok := m.byDomain[extractDomain(email)]
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// normalizeEmail converts email to lowercase for comparison.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// extractDomain extracts domain from email address.
func extractDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// isCommonEmailDomain checks if domain is a common email provider (not company-specific)
func isCommonEmailDomain(domain string) bool {
	commonDomains := []string{
		"gmail.com",
		"googlemail.com",
		"yahoo.com",
		"hotmail.com",
		"outlook.com",
		"live.com",
		"msn.com",
		"icloud.com",
		"me.com",
		"mac.com",
		"aol.com",
		"protonmail.com",
		"pm.me",
	}

	lowerDomain := strings.ToLower(domain)
	for _, common := range commonDomains {
		if lowerDomain == common {
			return true
		}
	}

	return false
}
