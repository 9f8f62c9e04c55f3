package forge

import "strings"

// Supported forge names.
const (
	NameGitHub = "github"
	NameGitLab = "gitlab"
)

// ValidNames lists the forge names accepted in configuration.
var ValidNames = []string{NameGitHub, NameGitLab}

// ByName returns a Forge implementation by name.
// Returns GitHub as default for unknown names.
func ByName(name string) Forge {
	switch strings.ToLower(name) {
	case NameGitLab:
		return &GitLab{}
	default:
		return &GitHub{}
	}
}

// Detect returns the Forge for host.
// Explicit hostMap entries win, then host patterns, then GitHub.
func Detect(host string, hostMap map[string]string) Forge {
	if name, ok := hostMap[strings.ToLower(host)]; ok {
		return ByName(name)
	}
	if isGitLab(host) {
		return &GitLab{}
	}
	return &GitHub{}
}

// isGitLab checks if a host looks like a GitLab instance
func isGitLab(host string) bool {
	host = strings.ToLower(host)
	return host == "gitlab.com" || strings.HasPrefix(host, "gitlab.")
}
