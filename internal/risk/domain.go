package risk

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ExtractDomain returns the lower-cased hostname of raw. Input without an
// http(s) scheme is parsed as https. Internationalized hosts are returned
// in punycode form. When no hostname can be parsed the input is returned
// unchanged.
func ExtractDomain(raw string) string {
	s := raw
	if !strings.HasPrefix(s, "http") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return raw
	}
	// Hosts idna rejects (underscores, IP literals) stay as parsed.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	return host
}
