package utils

import (
	"net/url"
	"regexp"
	"strings"

	"lead-relay/models"
)

var schemeRegex = regexp.MustCompile(`^https?://`)

// CleanPageURL strips the scheme and the query string from a page URL,
// leaving the host and path the CRM expects in its url parameter.
func CleanPageURL(raw string) string {
	clean := schemeRegex.ReplaceAllString(raw, "")
	if i := strings.Index(clean, "?"); i >= 0 {
		clean = clean[:i]
	}
	return clean
}

// ExtractUTMParams reads the utm_* campaign parameters from a page URL.
// Absent parameters come back as empty strings.
func ExtractUTMParams(raw string) models.UTMParams {
	u, err := url.Parse(raw)
	if err != nil {
		return models.UTMParams{}
	}
	q := u.Query()
	return models.UTMParams{
		Source:   q.Get("utm_source"),
		Campaign: q.Get("utm_campaign"),
		Medium:   q.Get("utm_medium"),
		Keyword:  q.Get("utm_keyword"),
	}
}
