package extractor

import (
	"strings"
)

type commentKind int

const (
	plainComment commentKind = iota
	lineDesc
	blockDesc
	codeToggle
)

const (
	lineDescPrefix  = "//desc"
	blockDescPrefix = "/*desc"
	codeMarker      = "//code"
)

// classify returns the kind of a comment and, for desc comments, its markdown lines.
func classify(text string) (commentKind, []string) {
	text = strings.TrimRight(text, "\r")

	if strings.TrimSpace(text) == codeMarker {
		return codeToggle, nil
	}

	if rest, ok := cutMarker(text, lineDescPrefix); ok {
		return lineDesc, []string{strings.TrimPrefix(rest, " ")}
	}

	if rest, ok := cutMarker(text, blockDescPrefix); ok {
		body := rest
		if strings.HasSuffix(body, "desc*/") {
			body = strings.TrimSuffix(body, "desc*/")
		} else {
			body = strings.TrimSuffix(body, "*/")
		}
		body = strings.TrimRight(body, " \t")
		return blockDesc, dedent(trimBlankEdges(splitLines(body)))
	}

	return plainComment, nil
}

// cutMarker strips prefix when it is followed by whitespace or nothing,
// so //description is not taken for //desc.
func cutMarker(text, prefix string) (string, bool) {
	if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	rest := text[len(prefix):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\r' {
		return "", false
	}
	return rest, true
}

type renderer struct {
	src       []byte
	fence     string
	out       []string
	inCode    bool
	codeStart uint32
	lastDesc  int // end byte of the last desc comment outside code, -1 if none
}

// Render assembles markdown from the desc and code markers found in comments.
// comments must be in source order.
func Render(src []byte, comments []Comment, fence string) string {
	r := &renderer{src: src, fence: fence, lastDesc: -1}

	for _, c := range comments {
		kind, lines := classify(c.Text)
		switch kind {
		case codeToggle:
			if r.inCode {
				r.flushCode(c.StartByte)
				r.inCode = false
				r.lastDesc = -1
			} else {
				r.inCode = true
			}
			r.codeStart = c.EndByte
		case lineDesc, blockDesc:
			if r.inCode {
				r.flushCode(c.StartByte)
				r.codeStart = c.EndByte
			} else if r.lastDesc >= 0 && strings.Count(string(src[r.lastDesc:c.StartByte]), "\n") > 1 {
				r.ensureBlank()
			}
			if r.lastIsHeading() {
				r.ensureBlank()
			}
			r.out = append(r.out, lines...)
			if kind == blockDesc {
				r.ensureBlank()
			}
			if !r.inCode {
				r.lastDesc = int(c.EndByte)
			}
		}
	}

	if r.inCode {
		r.flushCode(uint32(len(src)))
	}

	out := trimBlankEdges(r.out)
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func (r *renderer) ensureBlank() {
	if len(r.out) > 0 && r.out[len(r.out)-1] != "" {
		r.out = append(r.out, "")
	}
}

func (r *renderer) lastIsHeading() bool {
	return len(r.out) > 0 && strings.HasPrefix(r.out[len(r.out)-1], "#")
}

func (r *renderer) flushCode(end uint32) {
	if end <= r.codeStart {
		return
	}
	lines := splitLines(string(r.src[r.codeStart:end]))

	// The first line is the remainder of the marker's line, the last one is
	// the indentation in front of the next marker.
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	lines = dedent(trimBlankEdges(lines))
	if len(lines) == 0 {
		return
	}

	r.ensureBlank()
	r.out = append(r.out, "```"+r.fence)
	r.out = append(r.out, lines...)
	r.out = append(r.out, "```", "")
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// dedent removes the whitespace prefix shared by all non-blank lines.
func dedent(lines []string) []string {
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	if prefix == "" {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			out[i] = line[len(prefix):]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
