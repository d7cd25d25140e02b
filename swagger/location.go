package swagger

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Location is the part of the page location the initializer reads.
type Location struct {
	Scheme string // "http" or "https", without the trailing colon
	Host   string // host with optional port
}

// Origin returns scheme://host.
func (l Location) Origin() string {
	return l.Scheme + "://" + l.Host
}

// SpecURL joins the origin of loc with path. It is plain concatenation: the
// path is neither cleaned nor checked for a leading slash.
func SpecURL(loc Location, path string) string {
	return loc.Origin() + path
}

// LocationFromRequest derives the location a browser used to load r. The
// X-Forwarded-Proto and X-Forwarded-Host headers win over the connection.
func LocationFromRequest(r *http.Request) Location {
	loc := Location{Scheme: "http", Host: r.Host}
	if r.TLS != nil {
		loc.Scheme = "https"
	}
	if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
		loc.Scheme = strings.ToLower(proto)
	}
	if host := firstHeaderValue(r, "X-Forwarded-Host"); host != "" {
		loc.Host = host
	}
	return loc
}

// ParseOrigin parses an origin such as https://docs.example.com. Paths other
// than "/" are rejected.
func ParseOrigin(origin string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return Location{}, fmt.Errorf("swagger: parse origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Location{}, fmt.Errorf("swagger: origin %q needs a scheme and a host", origin)
	}
	if u.Path != "" && u.Path != "/" {
		return Location{}, fmt.Errorf("swagger: origin %q must not carry a path", origin)
	}
	return Location{Scheme: strings.ToLower(u.Scheme), Host: u.Host}, nil
}

func firstHeaderValue(r *http.Request, name string) string {
	v := r.Header.Get(name)
	if idx := strings.Index(v, ","); idx >= 0 {
		v = v[:idx]
	}
	return strings.TrimSpace(v)
}
