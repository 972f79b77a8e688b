package gitignore

import (
	"fmt"
	"strings"
)

// DefaultServiceURL is the human-facing address of the template service.
const DefaultServiceURL = "https://www.toptal.com/developers/gitignore"

// Header is the comment block written above the template
type Header struct {
	GeneratorURL string
	ServiceURL   string
	Tags         []string // in the order the user typed them
	Section      string
}

// String renders the header, including the trailing blank line.
func (h Header) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# .gitignore auto generated by %s utilizing %s\n", h.GeneratorURL, h.ServiceURL)
	fmt.Fprintf(&b, "# with user entered tags: %s\n", strings.Join(h.Tags, ", "))
	fmt.Fprintf(&b, "### %s ###\n\n", h.Section)
	return b.String()
}

// Strip drops the first n lines of body and rejoins the rest with "\n".
// Nothing remains when body has n lines or fewer.
func Strip(body string, n int) string {
	if n <= 0 {
		return body
	}
	lines := strings.Split(body, "\n")
	if n >= len(lines) {
		return ""
	}
	return strings.Join(lines[n:], "\n")
}

// Render returns the header followed by body without its first n lines.
func Render(h Header, body string, n int) string {
	return h.String() + Strip(body, n)
}

// ServiceURLFor derives the service address credited in the header from
// the API endpoint (".../gitignore/api" -> ".../gitignore").
func ServiceURLFor(apiURL string) string {
	s := strings.TrimRight(apiURL, "/")
	return strings.TrimSuffix(s, "/api")
}
