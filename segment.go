package ingest

import "strings"

// SplitParagraphs splits a text blob on blank-line boundaries and drops
// empty spans. Line endings are normalized first.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// SegmentText segments a plain-text blob into sections on blank-line
// boundaries. Short spans that are all upper-case or start with a heading
// marker are tagged as headings.
func SegmentText(text string) []Section {
	var sections []Section
	for _, p := range SplitParagraphs(text) {
		blockType := BlockParagraph
		if len(p) < 100 && (isUpper(p) || strings.HasPrefix(p, "#")) {
			blockType = BlockHeading
		}
		sections = append(sections, Section{
			Text:       p,
			BlockType:  blockType,
			Confidence: ConfidenceStructural,
		})
	}
	return sections
}

// SegmentMarkdown scans markdown line by line. A heading marker starts a
// new heading section and flushes the previous one; a list marker starts or
// continues a list section; a blank line flushes the current section back
// to paragraph mode.
func SegmentMarkdown(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sections []Section
	var cur strings.Builder
	curType := BlockParagraph

	flush := func() {
		content := strings.TrimSpace(cur.String())
		cur.Reset()
		if content == "" {
			return
		}
		sections = append(sections, Section{
			Text:       content,
			BlockType:  curType,
			Level:      headingLevel(content),
			Confidence: ConfidenceStructural,
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "#"):
			flush()
			cur.WriteString(line)
			cur.WriteByte('\n')
			curType = BlockHeading

		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			if cur.Len() > 0 && curType != BlockList {
				flush()
			}
			curType = BlockList
			cur.WriteString(line)
			cur.WriteByte('\n')

		case line == "":
			flush()
			curType = BlockParagraph

		default:
			cur.WriteString(line)
			cur.WriteByte('\n')
		}
	}
	flush()

	return sections
}

// headingLevel counts leading heading markers; 0 for non-headings.
func headingLevel(content string) int {
	level := 0
	for level < len(content) && content[level] == '#' {
		level++
	}
	if level > 6 {
		return 6
	}
	return level
}

// isUpper reports whether s contains at least one letter and no lower-case
// letters.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			hasLetter = true
		}
	}
	return hasLetter
}
