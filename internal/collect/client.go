package collect

import (
	"context"
	"net"
	"strings"

	"github.com/griffithind/sysstatus/internal/parse"
	"github.com/griffithind/sysstatus/internal/report"
)

// Client describes the requesting client.
type Client struct {
	UserAgent  string
	RemoteAddr string
}

// IsLocal reports whether the client connected from the loopback
// address. RemoteAddr may carry a port.
func (c Client) IsLocal() bool {
	host := c.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	switch host {
	case "127.0.0.1", "::1", "localhost":
		return true
	}
	return false
}

// ClientProvider reports "localhost" and a "browser" section for the
// requesting client.
type ClientProvider struct {
	Client Client
}

// Name implements Provider.
func (p *ClientProvider) Name() string { return "client" }

// Collect implements Provider.
func (p *ClientProvider) Collect(_ context.Context, s *report.Section) error {
	s.Set("localhost", parse.BoolString(p.Client.IsLocal()))

	ua := ParseUserAgent(p.Client.UserAgent)
	browser := s.Section("browser")
	browser.Set("agent", ua.Agent)
	browser.Set("browser", ua.Browser)
	browser.Set("version", ua.Version)
	browser.Set("platform", ua.Platform)
	browser.Set("mobile", parse.BoolString(ua.Mobile))
	return nil
}

// Unknown is reported for browser fields that could not be detected.
const Unknown = "unknown"

// UserAgent is the browser information derived from a User-Agent header.
type UserAgent struct {
	Agent    string
	Browser  string
	Version  string
	Platform string
	Mobile   bool
}

// browserTokens is checked in order; engines that embed other product
// tokens (Edge carries Chrome and Safari) come first.
var browserTokens = []struct {
	token string
	name  string
}{
	{"Edg/", "Edge"},
	{"Edge/", "Edge"},
	{"OPR/", "Opera"},
	{"Opera/", "Opera"},
	{"SamsungBrowser/", "Samsung Internet"},
	{"Firefox/", "Firefox"},
	{"FxiOS/", "Firefox"},
	{"CriOS/", "Chrome"},
	{"Chrome/", "Chrome"},
	{"Version/", "Safari"},
	{"MSIE ", "Internet Explorer"},
	{"Trident/", "Internet Explorer"},
	{"curl/", "curl"},
	{"Wget/", "Wget"},
	{"Go-http-client/", "Go-http-client"},
}

var platformTokens = []struct {
	token string
	name  string
}{
	{"Android", "Android"},
	{"iPhone", "iPhone"},
	{"iPad", "iPad"},
	{"Windows", "Windows"},
	{"Macintosh", "Apple"},
	{"Mac OS X", "Apple"},
	{"CrOS", "Chrome OS"},
	{"Linux", "Linux"},
	{"FreeBSD", "FreeBSD"},
}

// ParseUserAgent extracts browser, version and platform from a
// User-Agent string. Undetected fields are Unknown.
func ParseUserAgent(agent string) UserAgent {
	ua := UserAgent{
		Agent:    agent,
		Browser:  Unknown,
		Version:  Unknown,
		Platform: Unknown,
	}

	for _, b := range browserTokens {
		idx := strings.Index(agent, b.token)
		if idx < 0 {
			continue
		}
		if b.name == "Safari" && !strings.Contains(agent, "Safari/") {
			continue
		}
		ua.Browser = b.name
		if v := versionAfter(agent[idx+len(b.token):]); v != "" {
			ua.Version = v
		}
		if b.token == "Trident/" {
			if i := strings.Index(agent, "rv:"); i >= 0 {
				ua.Version = versionAfter(agent[i+3:])
			}
		}
		break
	}

	for _, p := range platformTokens {
		if strings.Contains(agent, p.token) {
			ua.Platform = p.name
			break
		}
	}

	ua.Mobile = strings.Contains(agent, "Mobile") ||
		strings.Contains(agent, "Android") ||
		strings.Contains(agent, "iPhone")
	return ua
}

// versionAfter returns the leading run of digits and dots.
func versionAfter(s string) string {
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	return strings.TrimRight(s[:end], ".")
}
