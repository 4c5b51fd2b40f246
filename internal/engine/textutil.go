package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9_\-\s]`)

// SafeFilename turns a title into a download filename: every character outside
// [a-zA-Z0-9_-] and whitespace becomes "_", then spaces become "_".
// format is the extension without the dot ("mp3", "mp4").
func SafeFilename(title, format string) string {
	name := unsafeFilenameRe.ReplaceAllString(title, "_")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "download"
	}
	if format == "" {
		return name
	}
	return name + "." + format
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO 8601 duration such as "PT1H2M3S" to seconds.
// Returns 0 for unparseable input.
func ParseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	mult := []int{86400, 3600, 60, 1}
	total := 0
	for i, g := range m[1:] {
		if g == "" {
			continue
		}
		n, _ := strconv.Atoi(g)
		total += n * mult[i]
	}
	return total
}

// FormatDuration renders seconds as "H:MM:SS" or "M:SS".
func FormatDuration(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
