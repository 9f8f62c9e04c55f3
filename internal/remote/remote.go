package remote

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnparseable is returned when a remote URL has no host/owner/repo form.
var ErrUnparseable = errors.New("unparseable remote URL")

// Protocol is the transport form of a remote URL.
type Protocol string

const (
	SSH   Protocol = "ssh"
	HTTPS Protocol = "https"
	HTTP  Protocol = "http"
	Git   Protocol = "git"
)

// ParseProtocol validates a preferred protocol for rewritten URLs.
// Only ssh and https can be written.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case SSH, HTTPS:
		return p, nil
	default:
		return "", fmt.Errorf("invalid protocol %q: must be \"ssh\" or \"https\"", s)
	}
}

// Remote is a parsed remote URL.
type Remote struct {
	Raw      string   `json:"raw"`
	Protocol Protocol `json:"protocol"`
	User     string   `json:"user,omitempty"`
	Host     string   `json:"host"`
	Port     string   `json:"port,omitempty"`
	Owner    string   `json:"owner"`
	Repo     string   `json:"repo"`
}

// FullName returns "owner/repo".
func (r Remote) FullName() string {
	return r.Owner + "/" + r.Repo
}

// SameRepo reports whether both remotes name the same repository,
// ignoring protocol and case.
func (r Remote) SameRepo(o Remote) bool {
	return strings.EqualFold(r.Host, o.Host) &&
		strings.EqualFold(r.Owner, o.Owner) &&
		strings.EqualFold(r.Repo, o.Repo)
}

// Parse splits a remote URL into its components.
func Parse(raw string) (Remote, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Remote{}, fmt.Errorf("%w: empty", ErrUnparseable)
	}

	var r Remote
	var path string

	if idx := strings.Index(s, "://"); idx != -1 {
		scheme := strings.ToLower(s[:idx])
		switch scheme {
		case "ssh", "git+ssh", "ssh+git":
			r.Protocol = SSH
		case "https":
			r.Protocol = HTTPS
		case "http":
			r.Protocol = HTTP
		case "git":
			r.Protocol = Git
		default:
			return Remote{}, fmt.Errorf("%w: unsupported scheme %q in %q", ErrUnparseable, scheme, raw)
		}

		u, err := url.Parse(scheme + s[idx:])
		if err != nil {
			return Remote{}, fmt.Errorf("%w: %q: %v", ErrUnparseable, raw, err)
		}
		r.Host = u.Hostname()
		r.Port = u.Port()
		if u.User != nil {
			r.User = u.User.Username()
		}
		path = u.Path
	} else {
		// scp-like syntax is only recognised when the colon comes before the
		// first slash, otherwise it is a local path.
		colon := strings.Index(s, ":")
		slash := strings.Index(s, "/")
		if colon <= 0 || (slash != -1 && slash < colon) || isDrivePath(s) {
			return Remote{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		r.Protocol = SSH
		hostPart := s[:colon]
		if at := strings.LastIndex(hostPart, "@"); at != -1 {
			r.User = hostPart[:at]
			hostPart = hostPart[at+1:]
		}
		r.Host = hostPart
		path = s[colon+1:]
	}

	if r.Host == "" {
		return Remote{}, fmt.Errorf("%w: no host in %q", ErrUnparseable, raw)
	}
	r.Host = strings.ToLower(r.Host)

	owner, repo, ok := splitPath(path)
	if !ok {
		return Remote{}, fmt.Errorf("%w: no owner/repo in %q", ErrUnparseable, raw)
	}
	r.Owner = owner
	r.Repo = repo
	r.Raw = raw
	return r, nil
}

// isDrivePath reports whether s starts with a Windows drive such as "C:/" or "C:\".
func isDrivePath(s string) bool {
	if len(s) < 3 || s[1] != ':' || (s[2] != '/' && s[2] != '\\') {
		return false
	}
	c := s[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// splitPath turns "/group/sub/repo.git/" into ("group/sub", "repo").
func splitPath(path string) (owner, repo string, ok bool) {
	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	path = strings.TrimSuffix(path, "/")

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", false
	}
	// ~user paths (ssh://host/~user/repo) are home-relative, not owners.
	if strings.HasPrefix(parts[0], "~") {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1], true
}

// Format builds the canonical remote URL for owner/repo on host.
func Format(host, owner, repo string, p Protocol) string {
	if p == HTTPS {
		return fmt.Sprintf("https://%s/%s/%s.git", host, owner, repo)
	}
	return fmt.Sprintf("git@%s:%s/%s.git", host, owner, repo)
}
