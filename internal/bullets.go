package internal

import (
	"regexp"
	"strings"
)

// Bullet is the canonical marker every key point is rendered with
const Bullet = "•"

var (
	qaTokenRe      = regexp.MustCompile(`\b(?:(?i:answer|respuesta|question|pregunta)\s*\d*|[QAR]\d*)\s*:`)
	bulletPrefixRe = regexp.MustCompile(`^(?:[•▪◦●]\s*|[*\-–]\s+|\d+[.)]\s+)`)
)

// LooksLikeQA reports whether text reads as question/answer output rather than
// a list of points: it must contain a "?" and a question or answer marker.
func LooksLikeQA(text string) bool {
	return strings.Contains(text, "?") && qaTokenRe.MatchString(text)
}

// FormatBullets renders each non-blank line as one bullet. Q&A shaped text is
// handed to FormatQA instead, so the two outputs never mix.
func FormatBullets(text string, lang Language) string {
	if LooksLikeQA(text) {
		return FormatQA(text, lang)
	}

	var points []string
	for _, line := range strings.Split(text, "\n") {
		line = stripBulletPrefix(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		points = append(points, Bullet+" "+line)
	}
	return strings.Join(points, "\n\n")
}

func stripBulletPrefix(line string) string {
	for {
		stripped := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		if stripped == line {
			return line
		}
		line = stripped
	}
}
