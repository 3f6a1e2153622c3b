package webcat

import (
	"bufio"
	"io"
	"net/url"
	"strings"
)

// NormalizeURL returns the canonical string form of an absolute http(s) URL.
// Scheme and host are lower-cased, a default port is dropped, an empty path
// becomes "/" and the fragment is removed. Every URL that
// is compared, deduplicated or used as an ordering key must pass through here.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return normalize(u)
}

func normalize(u *url.URL) (string, error) {
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL %q: scheme must be http or https", u.String())
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL %q: missing host", u.String())
	}
	n := *u
	n.Scheme = scheme
	n.Host = canonicalHost(u, scheme)
	n.Fragment = ""
	n.RawFragment = ""
	if n.Path == "" && n.RawPath == "" {
		n.Path = "/"
	}
	return n.String(), nil
}

// defaultPorts are dropped from the host so that "example.com:443" and
// "example.com" name the same page.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

func canonicalHost(u *url.URL, scheme string) string {
	host := strings.ToLower(u.Host)
	port := u.Port()
	if port == "" || defaultPorts[scheme] != port {
		return host
	}
	name := strings.ToLower(u.Hostname())
	if strings.Contains(name, ":") {
		return "[" + name + "]"
	}
	return name
}

// ResolveURL resolves href against base and normalizes the result.
func ResolveURL(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "invalid link %q: %v", href, err)
	}
	return normalize(base.ResolveReference(ref))
}

// NormalizeURLs normalizes every URL in the list and drops repeats after the
// first occurrence. Invalid entries are returned as errors in skipped.
func NormalizeURLs(rawURLs []string) (urls []string, skipped []error) {
	seen := make(map[string]bool, len(rawURLs))
	for _, raw := range rawURLs {
		u, err := NormalizeURL(raw)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, skipped
}

// ReadURLs reads one URL per line. Blank lines and lines starting with '#'
// are ignored; lines that are not absolute http(s) URLs are dropped.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := NormalizeURL(line)
		if err != nil {
			continue
		}
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// HostOf returns the lower-cased host name (without port) of a URL.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
