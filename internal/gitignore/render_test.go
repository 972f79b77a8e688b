package gitignore

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_String(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		wantTags string
	}{
		{name: "two tags keep user order", tags: []string{"python", "macos"}, wantTags: "python, macos"},
		{name: "reversed order", tags: []string{"macos", "python"}, wantTags: "macos, python"},
		{name: "single tag", tags: []string{"go"}, wantTags: "go"},
		{name: "no tags", tags: nil, wantTags: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{
				GeneratorURL: "https://github.com/CalvinSprouse/Git--",
				ServiceURL:   DefaultServiceURL,
				Tags:         tt.tags,
				Section:      "workspace",
			}

			want := "# .gitignore auto generated by https://github.com/CalvinSprouse/Git-- utilizing https://www.toptal.com/developers/gitignore\n" +
				"# with user entered tags: " + tt.wantTags + "\n" +
				"### workspace ###\n\n"
			assert.Equal(t, want, h.String())
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		body string
		n    int
		want string
	}{
		{name: "drops banner", body: "a\nb\nc\nd\ne", n: 3, want: "d\ne"},
		{name: "keeps trailing newline", body: "a\nb\nc\nd\n", n: 3, want: "d\n"},
		{name: "exactly n lines", body: "a\nb\nc", n: 3, want: ""},
		{name: "fewer than n lines", body: "a", n: 3, want: ""},
		{name: "empty body", body: "", n: 3, want: ""},
		{name: "zero keeps everything", body: "a\nb", n: 0, want: "a\nb"},
		{name: "negative is zero", body: "a\nb", n: -2, want: "a\nb"},
		{name: "configurable count", body: "a\nb\nc\nd", n: 1, want: "b\nc\nd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.body, tt.n))
		})
	}
}

func TestRender_Fixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/python_macos.txt")
	require.NoError(t, err)
	body := string(raw)

	h := Header{
		GeneratorURL: "https://github.com/CalvinSprouse/Git--",
		ServiceURL:   DefaultServiceURL,
		Tags:         []string{"python", "macos"},
		Section:      "projects",
	}
	out := Render(h, body, 3)

	require.True(t, strings.HasPrefix(out, h.String()))
	rest := strings.TrimPrefix(out, h.String())

	// the service banner is gone, the first template section follows the header
	assert.NotContains(t, out, "# Created by")
	assert.NotContains(t, out, "# Edit at")
	assert.True(t, strings.HasPrefix(rest, "### macOS ###\n"))
	assert.Contains(t, rest, "__pycache__/")
	assert.True(t, strings.HasSuffix(rest, "# End of https://www.toptal.com/developers/gitignore/api/python,macos\n"))
}

func TestServiceURLFor(t *testing.T) {
	assert.Equal(t, DefaultServiceURL, ServiceURLFor("https://www.toptal.com/developers/gitignore/api"))
	assert.Equal(t, DefaultServiceURL, ServiceURLFor("https://www.toptal.com/developers/gitignore/api/"))
	assert.Equal(t, "http://localhost:9000/templates", ServiceURLFor("http://localhost:9000/templates"))
}
