// Package redact masks credentials embedded in URLs before they are logged or displayed.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

const mask = "[REDACTED]"

// secretParams are query keys whose values are masked, compared case-insensitively.
var secretParams = map[string]bool{
	"token":         true,
	"access_token":  true,
	"key":           true,
	"api_key":       true,
	"apikey":        true,
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"client_secret": true,
	"sig":           true,
	"signature":     true,
	"auth":          true,
}

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// user:password@ in text that does not parse as a URL
		`(?i)(//[^/\s:@]+:)[^@\s/]+(@)`,
		// key=value pairs for secret-looking keys
		`(?i)\b((?:access_token|api_?key|client_secret|password|passwd|secret|signature|token|auth|sig|key)=)[^&#\s]+`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// URL returns s with userinfo passwords and secret query values replaced by [REDACTED].
// Input that does not parse as a URL is scrubbed with pattern matching instead.
func URL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return Text(s)
	}
	changed := false
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), mask)
			changed = true
		}
	}
	if u.RawQuery != "" {
		q := u.Query()
		for k, vals := range q {
			if !secretParams[strings.ToLower(k)] {
				continue
			}
			for i := range vals {
				vals[i] = mask
			}
			changed = true
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}
	if !changed {
		return s
	}
	// Keep the mask readable rather than percent-encoded.
	out := u.String()
	out = strings.ReplaceAll(out, url.QueryEscape(mask), mask)
	out = strings.ReplaceAll(out, url.PathEscape(mask), mask)
	return out
}

// Text applies the credential patterns to free-form text.
func Text(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, "${1}"+mask+"${2}")
	}
	return text
}
