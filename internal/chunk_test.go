package internal

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// assertReconstructs checks that chunks occur in order in text and that only
// whitespace was dropped between them.
func assertReconstructs(t *testing.T, text string, chunks []string) {
	t.Helper()
	rest := text
	for i, chunk := range chunks {
		idx := strings.Index(rest, chunk)
		if idx < 0 {
			t.Fatalf("chunk %d not found in remaining text: %q", i, chunk)
		}
		if gap := rest[:idx]; strings.TrimSpace(gap) != "" {
			t.Fatalf("chunk %d skipped non-whitespace text %q", i, gap)
		}
		rest = rest[idx+len(chunk):]
	}
	if strings.TrimSpace(rest) != "" {
		t.Fatalf("text left over after last chunk: %q", rest)
	}
}

func TestSplit_ShortTextUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
	}{
		{name: "empty", text: "", maxChars: 10},
		{name: "shorter than max", text: "hello world", maxChars: 50},
		{name: "exactly max", text: "0123456789", maxChars: 10},
		{name: "surrounding whitespace kept", text: "  padded  ", maxChars: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.maxChars)
			if len(got) != 1 || got[0] != tt.text {
				t.Errorf("Split(%q, %d) = %q, want single unchanged chunk", tt.text, tt.maxChars, got)
			}
		})
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	text := "The first sentence is here. The second one follows it. And a third ends the text."
	got := Split(text, 60)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(got), got)
	}
	if got[0] != "The first sentence is here." {
		t.Errorf("first chunk = %q, want split after first sentence", got[0])
	}
	assertReconstructs(t, text, got)
}

func TestSplit_FallsBackThroughMarkers(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxChars  int
		wantFirst string
	}{
		{
			name:      "newline when no sentence end",
			text:      "alpha beta gamma\ndelta epsilon zeta eta theta iota",
			maxChars:  40,
			wantFirst: "alpha beta gamma",
		},
		{
			name:      "space when no newline",
			text:      "alpha beta gamma delta epsilon zeta eta theta",
			maxChars:  30,
			wantFirst: "alpha beta gamma",
		},
		{
			name:      "midpoint when no boundary at all",
			text:      "abcdefghijklmnopqrstuvwxyz",
			maxChars:  20,
			wantFirst: "abcdefghijklm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.maxChars)
			if got[0] != tt.wantFirst {
				t.Errorf("first chunk = %q, want %q", got[0], tt.wantFirst)
			}
			assertReconstructs(t, tt.text, got)
		})
	}
}

func TestSplit_RejectsBoundaryBeforeQuarter(t *testing.T) {
	// The only sentence end sits before maxChars/4, so the split must use a later space.
	text := "Hi. " + strings.Repeat("word ", 20)
	got := Split(text, 80)

	if got[0] == "Hi." {
		t.Fatalf("accepted a split point below maxChars/4: %q", got)
	}
	assertReconstructs(t, text, got)
}

func TestSplit_AcceptsBoundaryExactlyAtQuarter(t *testing.T) {
	// ". " ends at byte 10 and maxChars/4 == 10.
	text := "12345678. " + strings.Repeat("x", 40)
	got := Split(text, 40)

	if got[0] != "12345678." {
		t.Errorf("first chunk = %q, want split exactly at maxChars/4", got[0])
	}
}

func TestSplit_BoundAndRoundTrip(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("This is sentence number ")
		sb.WriteString(strings.Repeat("x", i%13))
		switch i % 4 {
		case 0:
			sb.WriteString(". ")
		case 1:
			sb.WriteString("? ")
		case 2:
			sb.WriteString("\n")
		default:
			sb.WriteString(" ")
		}
	}
	text := sb.String()

	for _, maxChars := range []int{1, 7, 50, 333, 1000, DefaultChunkSize} {
		chunks := Split(text, maxChars)
		if len(chunks) < 2 {
			t.Fatalf("maxChars=%d: expected multiple chunks for %d bytes", maxChars, len(text))
		}
		for i, c := range chunks {
			if len(c) > maxChars {
				t.Errorf("maxChars=%d: chunk %d has %d bytes", maxChars, i, len(c))
			}
			if c == "" {
				t.Errorf("maxChars=%d: chunk %d is empty", maxChars, i)
			}
		}
		assertReconstructs(t, text, chunks)
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		maxChars   int
		wantChunks int
	}{
		{name: "accented text under the limit", text: strings.Repeat("ñ", 30), maxChars: 30, wantChunks: 1},
		{name: "accented text over the limit", text: strings.Repeat("ñ", 30), maxChars: 16, wantChunks: 2},
		{name: "emoji pair fits", text: "😀😀", maxChars: 2, wantChunks: 1},
		{name: "one rune per chunk", text: "€€€€", maxChars: 1, wantChunks: 4},
		{name: "emoji midpoint", text: "😀😀😀", maxChars: 2, wantChunks: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.maxChars)
			if len(chunks) != tt.wantChunks {
				t.Errorf("Split() returned %d chunks, want %d: %q", len(chunks), tt.wantChunks, chunks)
			}
			for i, c := range chunks {
				if !utf8.ValidString(c) {
					t.Errorf("chunk %d split inside a rune: %q", i, c)
				}
				if n := utf8.RuneCountInString(c); n > tt.maxChars {
					t.Errorf("chunk %d has %d characters, want at most %d", i, n, tt.maxChars)
				}
			}
			assertReconstructs(t, tt.text, chunks)
		})
	}
}

func TestSplit_WhitespaceOnly(t *testing.T) {
	got := Split(strings.Repeat(" ", 20), 5)
	if len(got) != 1 || got[0] != "" {
		t.Errorf("Split(whitespace) = %q, want single empty chunk", got)
	}
}
