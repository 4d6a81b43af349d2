package internal

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the largest piece of transcript sent in a single completion call
const DefaultChunkSize = 4000

// splitMarkers are tried in order when looking for a split point
var splitMarkers = []string{". ", "! ", "? ", "\n", " "}

// Split breaks text into pieces of at most maxChars characters (runes), preferring
// sentence, then line, then word boundaries before the midpoint of each oversized piece.
func Split(text string, maxChars int) []string {
	if maxChars < 1 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	splitInto(&chunks, text, maxChars)
	if len(chunks) == 0 {
		// whitespace only
		return []string{""}
	}
	return chunks
}

func splitInto(chunks *[]string, text string, maxChars int) {
	if utf8.RuneCountInString(text) <= maxChars {
		*chunks = append(*chunks, text)
		return
	}

	pos := splitPoint(text, maxChars)
	for _, half := range []string{text[:pos], text[pos:]} {
		half = strings.TrimSpace(half)
		if half == "" {
			continue
		}
		splitInto(chunks, half, maxChars)
	}
}

// splitPoint returns a byte offset to split text at. It always falls on a rune
// boundary no later than the middle rune. A marker is accepted only if the split
// leaves at least maxChars/4 characters in the first half.
func splitPoint(text string, maxChars int) int {
	mid := byteOffset(text, utf8.RuneCountInString(text)/2)
	minPos := maxChars / 4

	for _, marker := range splitMarkers {
		i := strings.LastIndex(text[:mid], marker)
		if i < 0 {
			continue
		}
		if pos := i + len(marker); utf8.RuneCountInString(text[:pos]) >= minPos {
			return pos
		}
	}

	// no usable boundary: cut at the middle rune
	return mid
}

// byteOffset returns the byte index of the n-th rune of text
func byteOffset(text string, n int) int {
	for i := range text {
		if n == 0 {
			return i
		}
		n--
	}
	return len(text)
}
