package internal

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// qaInput carries two views of the same model output: flat has every whitespace
// run collapsed to one space, raw keeps line structure for the paragraph and
// line strategies.
type qaInput struct {
	flat string
	raw  string
	lang Language
}

// qaTier is one extraction strategy. An empty result means "try the next one".
type qaTier func(in qaInput) []QARecord

// qaTiers are applied in order; the first non-empty result wins
var qaTiers = []qaTier{
	labeledTier,
	pairedTier,
	numberedTier,
	paragraphTier,
	lineTier,
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	edgeEmphasis  = regexp.MustCompile(`^[\s*_]+|[\s*_]+$`)
	emphasisRe    = regexp.MustCompile(`\*+|__+`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n`)
	leadingNumber = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	leadingMarker = regexp.MustCompile(`^\s*(?:(?i:question|answer|pregunta|respuesta)\s*\d*|[QAPR]\d*)\s*:\s*`)

	esQuestionLabel = regexp.MustCompile(`\b(?i:pregunta)\s*\d+\s*:`)
	esAnswerLabel   = regexp.MustCompile(`\b(?:(?i:respuesta)(?:\s*\d+)?|A\d*)\s*:`)
	enQuestionLabel = regexp.MustCompile(`\b(?:(?i:question)\s*\d+|Q\d+)\s*:`)
	enAnswerLabel   = regexp.MustCompile(`\b(?:(?i:answer)(?:\s*\d+)?|A\d*)\s*:`)

	// group 1 marks a question span, group 2 an answer span
	pairedMarker = regexp.MustCompile(`\b(?:((?i:question)\s*\d+|Q\d*)|((?i:answer)\s*\d+|A\d*))\s*:`)

	numberedItem = regexp.MustCompile(`(?:^|\s)\d+\.\s+`)
)

// FormatQA extracts question/answer pairs from free-form model output and renders
// them as a numbered markdown list. It never fails: when nothing can be extracted
// it returns a fixed explanatory message in the requested language.
func FormatQA(text string, lang Language) string {
	records := ExtractQA(text, lang)
	if len(records) == 0 {
		return noQAMessage(lang)
	}
	return renderQA(records, lang)
}

// ExtractQA runs the extraction strategies in order and returns the records of
// the first one that finds anything.
func ExtractQA(text string, lang Language) []QARecord {
	in := newQAInput(text, lang)
	if in.flat == "" {
		return nil
	}
	for _, tier := range qaTiers {
		if records := tier(in); len(records) > 0 {
			return records
		}
	}
	return nil
}

func newQAInput(text string, lang Language) qaInput {
	raw := strings.ReplaceAll(text, "\r\n", "\n")
	raw = edgeEmphasis.ReplaceAllString(raw, "")
	flat := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	return qaInput{flat: flat, raw: raw, lang: lang}
}

// labeledTier handles "Pregunta N: ... Respuesta: ..." and "Question N: ... Answer: ..."
// Text before the first label is kept as an orphan entry.
func labeledTier(in qaInput) []QARecord {
	questionLabel, answerLabel := enQuestionLabel, enAnswerLabel
	if in.lang == LanguageSpanish {
		questionLabel, answerLabel = esQuestionLabel, esAnswerLabel
	}

	locs := questionLabel.FindAllStringIndex(in.flat, -1)
	var records []QARecord
	for _, segment := range segmentsAfter(in.flat, locs) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		var question, answer string
		if loc := answerLabel.FindStringIndex(segment); loc != nil {
			question, answer = segment[:loc[0]], segment[loc[1]:]
		} else if q, a, ok := splitAtQuestionMark(segment); ok {
			question, answer = q, a
		} else {
			question = segment
		}
		if rec, ok := newRecord(question, answer); ok {
			records = append(records, rec)
		}
	}
	if len(records) > 0 && locs[0][0] > 0 {
		if preamble := cleanAnswer(in.flat[:locs[0][0]]); preamble != "" {
			records = append([]QARecord{{Question: preamble, Orphan: true}}, records...)
		}
	}
	return records
}

// pairedTier zips "Q1:" / "Question 1:" spans with "A1:" / "Answer 1:" spans when
// both appear the same number of times.
func pairedTier(in qaInput) []QARecord {
	matches := pairedMarker.FindAllStringSubmatchIndex(in.flat, -1)
	if len(matches) == 0 {
		return nil
	}

	var questions, answers []string
	for i, m := range matches {
		end := len(in.flat)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		span := in.flat[m[1]:end]
		if m[2] >= 0 {
			questions = append(questions, span)
		} else {
			answers = append(answers, span)
		}
	}
	if len(questions) == 0 || len(questions) != len(answers) {
		return nil
	}

	records := make([]QARecord, 0, len(questions))
	for i := range questions {
		if rec, ok := newRecord(questions[i], answers[i]); ok {
			records = append(records, rec)
		}
	}
	return records
}

// numberedTier handles "1. Question? Answer 2. Question? Answer"
func numberedTier(in qaInput) []QARecord {
	var records []QARecord
	for _, segment := range segmentsAfter(in.flat, numberedItem.FindAllStringIndex(in.flat, -1)) {
		q, a, ok := splitAtQuestionMark(segment)
		if !ok {
			continue
		}
		if rec, ok := newRecord(q, a); ok {
			records = append(records, rec)
		}
	}
	return records
}

// paragraphTier handles blank-line separated blocks. Text without any blank line
// has no paragraph structure and is left to lineTier.
func paragraphTier(in qaInput) []QARecord {
	blocks := blankLineRe.Split(in.raw, -1)
	if len(blocks) < 2 {
		return nil
	}

	var records []QARecord
	for _, block := range blocks {
		q, a, ok := splitAtQuestionMark(block)
		if !ok {
			continue
		}
		if rec, ok := newRecord(q, a); ok {
			records = append(records, rec)
		}
	}
	return records
}

// lineTier is the last resort: lines with a "?" become pairs, the rest are kept
// as orphan entries. It only counts when at least one line is a question.
func lineTier(in qaInput) []QARecord {
	var records []QARecord
	questions := 0
	for _, line := range strings.Split(in.raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if q, a, ok := splitAtQuestionMark(line); ok {
			if rec, ok := newRecord(q, a); ok {
				records = append(records, rec)
				questions++
			}
			continue
		}
		if orphan := cleanAnswer(line); orphan != "" {
			records = append(records, QARecord{Question: orphan, Orphan: true})
		}
	}
	if questions == 0 {
		return nil
	}
	return records
}

// segmentsAfter returns the text following each match, up to the next match
func segmentsAfter(text string, locs [][]int) []string {
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, text[loc[1]:end])
	}
	return segments
}

// splitAtQuestionMark splits s after its first "?"
func splitAtQuestionMark(s string) (question, answer string, ok bool) {
	idx := strings.Index(s, "?")
	if idx < 0 {
		return "", "", false
	}
	return s[:idx+1], s[idx+1:], true
}

// newRecord cleans both halves and guarantees the question ends with "?"
func newRecord(question, answer string) (QARecord, bool) {
	question = cleanQuestion(question)
	if question == "" {
		return QARecord{}, false
	}
	question, carried := ensureQuestionMark(question)
	answer = cleanAnswer(answer)
	if carried != "" {
		answer = strings.TrimSpace(carried + " " + answer)
	}
	return QARecord{Question: question, Answer: answer}, true
}

func cleanQuestion(q string) string {
	q = emphasisRe.ReplaceAllString(q, "")
	q = whitespaceRe.ReplaceAllString(q, " ")
	for {
		trimmed := leadingNumber.ReplaceAllString(leadingMarker.ReplaceAllString(q, ""), "")
		if trimmed == q {
			break
		}
		q = trimmed
	}
	return strings.TrimSpace(strings.TrimLeft(q, ":.- "))
}

func cleanAnswer(a string) string {
	a = emphasisRe.ReplaceAllString(a, "")
	a = strings.TrimSpace(whitespaceRe.ReplaceAllString(a, " "))
	for {
		trimmed := leadingMarker.ReplaceAllString(a, "")
		if trimmed == a {
			break
		}
		a = trimmed
	}
	return strings.TrimSpace(a)
}

// ensureQuestionMark makes q end with "?". A period close to the end is taken as
// the end of the question; whatever follows it is returned so it can be moved to
// the answer. The answer of such a record may therefore start with text the model
// wrote as part of the question.
func ensureQuestionMark(q string) (question, carried string) {
	if strings.HasSuffix(q, "?") {
		return q, ""
	}
	idx := strings.LastIndex(q, ". ")
	if strings.HasSuffix(q, ".") {
		idx = len(q) - 1
	}
	if idx > 0 && utf8.RuneCountInString(q[idx:]) < 50 {
		head := strings.TrimRight(q[:idx], " .:;,")
		if head != "" {
			return head + "?", strings.TrimSpace(q[idx+1:])
		}
	}
	return strings.TrimRight(q, " .:;,!¡") + "?", ""
}

func renderQA(records []QARecord, lang Language) string {
	questionLabel, answerLabel := "**Q%d:**", "**A:**"
	if lang == LanguageSpanish {
		questionLabel, answerLabel = "**Pregunta %d:**", "**Respuesta:**"
	}

	blocks := make([]string, 0, len(records))
	n := 0
	for _, rec := range records {
		if rec.Orphan {
			blocks = append(blocks, rec.Question+"\n")
			continue
		}
		n++
		block := fmt.Sprintf(questionLabel, n) + " " + rec.Question + "\n"
		if rec.Answer != "" {
			block += answerLabel + " " + rec.Answer + "\n"
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n")
}

func noQAMessage(lang Language) string {
	if lang == LanguageSpanish {
		return "No se pudieron generar preguntas y respuestas a partir del contenido."
	}
	return "No questions and answers could be generated from the content."
}
