package utils

import (
	"strings"
)

// OrDefault returns fallback when s is blank.
func OrDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// NormalizeItinerary cleans generated text for export. Lines end in LF without
// trailing spaces, blank runs collapse to one line and the ends are trimmed.
func NormalizeItinerary(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, line)
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// SafeFilenamePart turns free text into something usable in a file name.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", "*", "-", "?", "-", "\"", "-", "<", "-", ">", "-", "|", "-", ",", "")
	s = strings.ToLower(replacer.Replace(s))
	if len(s) > 40 {
		s = s[:40]
	}
	return strings.Trim(s, "-")
}
