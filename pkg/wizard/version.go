package wizard

import (
	"net/url"
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionFromBrowseLink extracts a release version from a repository link
// such as https://github.com/org/repo/tree/v1.3. The leading "v" is
// stripped. It reports false when the link names no version.
func VersionFromBrowseLink(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	p := link
	if u, err := url.Parse(link); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")

	var candidate string
	for _, marker := range []string{"/tree/", "/releases/tag/", "/tags/", "/-/tree/"} {
		if i := strings.LastIndex(p, marker); i >= 0 {
			candidate = p[i+len(marker):]
			break
		}
	}
	if candidate == "" {
		candidate = path.Base(p)
	}
	return NormalizeVersion(candidate)
}

// NormalizeVersion strips a leading "v" and checks that s is a version
func NormalizeVersion(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0] == 'v' || s[0] == 'V') {
		s = s[1:]
	}
	if s == "" {
		return "", false
	}
	if _, err := semver.NewVersion(s); err != nil {
		return "", false
	}
	return s, true
}
