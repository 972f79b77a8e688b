package git

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Matches sideband lines such as
//
//	Receiving objects:  67% (35484/52960), 236.76 MiB | 78.92 MiB/s
//	Counting objects: 100% (12/12), done.
var sidebandProgress = regexp.MustCompile(`^(Enumerating|Counting|Compressing|Receiving|Resolving)\s+(?:objects|deltas):\s*(\d+)%\s*\((\d+)/(\d+)\)(?:,\s*([\d.]+\s*\w+)\s*\|\s*([\d.]+\s*[\w/]+))?`)

// sidebandWriter reformats go-git's remote progress. Lines may be split
// across writes and are terminated by either '\r' or '\n'. Only the final
// update of each phase is printed.
type sidebandWriter struct {
	prefix  string
	w       io.Writer
	pending bytes.Buffer
	last    string
}

func newSidebandWriter(prefix string, w io.Writer) *sidebandWriter {
	return &sidebandWriter{prefix: prefix, w: w}
}

func (sw *sidebandWriter) Write(p []byte) (int, error) {
	sw.pending.Write(p)
	for {
		buf := sw.pending.Bytes()
		i := bytes.IndexAny(buf, "\r\n")
		if i < 0 {
			break
		}
		line := string(buf[:i])
		sw.pending.Next(i + 1)
		if err := sw.line(line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

func (sw *sidebandWriter) line(line string) error {
	line = strings.TrimSpace(strings.TrimPrefix(line, "remote: "))
	if line == "" {
		return nil
	}

	m := sidebandProgress.FindStringSubmatch(line)
	if m == nil {
		_, err := fmt.Fprintf(sw.w, "%s%s\n", sw.prefix, line)
		return err
	}

	// intermediate percentages are noise in a log-friendly stream
	if m[2] != "100" {
		return nil
	}
	phase := strings.ToLower(m[1])
	if phase == sw.last {
		return nil
	}
	sw.last = phase

	if m[5] != "" {
		_, err := fmt.Fprintf(sw.w, "%s%s %s objects, %s at %s\n", sw.prefix, phase, m[4], m[5], m[6])
		return err
	}
	_, err := fmt.Fprintf(sw.w, "%s%s %s/%s done\n", sw.prefix, phase, m[3], m[4])
	return err
}

// Flush prints whatever is left without a terminator.
func (sw *sidebandWriter) Flush() error {
	if sw.pending.Len() == 0 {
		return nil
	}
	line := sw.pending.String()
	sw.pending.Reset()
	return sw.line(line)
}
