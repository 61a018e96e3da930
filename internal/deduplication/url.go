package deduplication

import (
	"net/url"
	"sort"
	"strings"
)

// NormalizeURL produces the canonical form of a URL so that links to the
// same resource compare equal regardless of tracking noise:
//
//   - scheme and host are lowercased (paths stay case-sensitive)
//   - deny-listed query parameters are removed, matching names case-insensitively
//   - blank-valued query parameters are dropped
//   - surviving parameters are re-encoded sorted by key, then by value
//   - the trailing slash is stripped from the path (a bare "/" is kept)
//   - the fragment is dropped
//
// If the URL cannot be parsed, the raw string is returned unchanged: an
// un-normalizable URL is still a usable identity key, and dropping the
// article over it would lose a legitimate story.
func (d *Deduper) NormalizeURL(raw string) string {
	normalized, _ := d.normalizeURL(raw)
	return normalized
}

// normalizeURL reports whether the URL actually parsed; callers that track
// stats care, external callers get the fail-open string either way.
func (d *Deduper) normalizeURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return raw, false
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	filtered := url.Values{}
	for key, values := range query {
		if _, strip := d.strip[strings.ToLower(key)]; strip {
			continue
		}
		for _, v := range values {
			if v == "" {
				continue
			}
			filtered.Add(key, v)
		}
	}
	for key := range filtered {
		sort.Strings(filtered[key])
	}
	u.RawQuery = filtered.Encode()
	u.ForceQuery = false

	if trimmed := strings.TrimRight(u.Path, "/"); trimmed != "" {
		u.Path = trimmed
	} else if u.Path != "" {
		// Path was nothing but slashes; keep the root.
		u.Path = "/"
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), true
}
