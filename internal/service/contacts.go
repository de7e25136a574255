package service

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/commtrack/api/internal/entity"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
	linkedInDomain     = "linkedin.com"
)

var periodicities = map[string]struct{}{
	entity.PeriodicityOneWeek:   {},
	entity.PeriodicityTwoWeeks:  {},
	entity.PeriodicityOneMonth:  {},
	entity.PeriodicityTwoMonths: {},
}

// ContactNormalizer cleans the contact details stored on a company.
type ContactNormalizer struct {
	DefaultRegion string
}

// NewContactNormalizer builds a normalizer that parses national phone
// numbers in the given ISO region.
func NewContactNormalizer(defaultRegion string) *ContactNormalizer {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactNormalizer{DefaultRegion: region}
}

// Emails lowercases, IDNA-encodes and de-duplicates the given addresses.
// Blank entries are dropped; malformed ones are rejected.
func (n *ContactNormalizer) Emails(emails []string) ([]string, error) {
	seen := make(map[string]struct{}, len(emails))
	valid := make([]string, 0, len(emails))

	for _, raw := range emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		local, domain, ok := strings.Cut(email, "@")
		if !ok || !isDomainValid(domain) {
			return nil, validationErrorf("invalid email address: %s", raw)
		}
		asciiDomain, err := idnaProfile.ToASCII(domain)
		if err != nil || asciiDomain == "" {
			return nil, validationErrorf("invalid email domain: %s", raw)
		}
		email = local + "@" + asciiDomain
		if !emailPattern.MatchString(email) {
			return nil, validationErrorf("invalid email address: %s", raw)
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		valid = append(valid, email)
	}
	return valid, nil
}

// Phones converts numbers to E.164 and de-duplicates them.
func (n *ContactNormalizer) Phones(phones []string) ([]string, error) {
	seen := make(map[string]struct{}, len(phones))
	valid := make([]string, 0, len(phones))

	for _, raw := range phones {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		normalized := normalizePhone(raw, n.DefaultRegion)
		if normalized == "" {
			return nil, validationErrorf("invalid phone number: %s", raw)
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		valid = append(valid, normalized)
	}
	return valid, nil
}

// LinkedIn returns the canonical https form of a linkedin.com profile URL
// without tracking parameters.
func (n *ContactNormalizer) LinkedIn(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", validationErrorf("linkedin_profile is required")
	}
	u, err := sanitizeURL(raw)
	if err != nil || !hostMatches(u.Hostname(), linkedInDomain) {
		return "", validationErrorf("linkedin_profile must be a linkedin.com URL")
	}
	stripTracking(u)
	return u.String(), nil
}

// Periodicity validates the follow-up interval, defaulting blank input.
func (n *ContactNormalizer) Periodicity(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return entity.DefaultPeriodicity, nil
	}
	if _, ok := periodicities[value]; !ok {
		return "", validationErrorf("periodicity must be one of: 1 week, 2 weeks, 1 month, 2 months")
	}
	return value, nil
}

func hostMatches(host, domain string) bool {
	host = strings.ToLower(strings.Trim(strings.TrimSpace(host), "."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
