package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// Confidence constants per extraction method. These are fixed labels for
// how the content was obtained, not calibrated probabilities.
const (
	ConfidenceStructural = 0.95 // direct structural extraction (text, markdown)
	ConfidenceStyled     = 0.9  // style- or page-derived extraction (pdf, docx, html headings and lists)
	ConfidenceHTMLBody   = 0.85 // html paragraph text
	ConfidenceURLText    = 0.8  // url body treated as plain text
)

// assetRule pairs an asset type with its keyword set. Keywords consisting
// only of letters and digits match whole tokens; anything else (markers
// like "q:" or "- [ ]", multi-word phrases) matches as a substring.
type assetRule struct {
	asset    AssetType
	keywords []string
}

// assetRules is the ordered keyword cascade. The first rule whose keyword
// set matches wins, so order is a fixed priority.
var assetRules = []assetRule{
	{AssetGoal, []string{"goal", "objective", "aim", "target", "mission", "vision", "purpose"}},
	{AssetStrategy, []string{"strategy", "approach", "plan", "framework", "methodology", "tactics"}},
	{AssetTimeline, []string{"timeline", "schedule", "milestone", "deadline", "phase", "week", "month", "quarter"}},
	{AssetTask, []string{"task", "action", "step", "todo", "implement", "execute", "do", "perform"}},
	{AssetFAQ, []string{"question", "q:", "a:", "faq", "what", "how", "why", "when", "where"}},
	{AssetMetric, []string{"metric", "kpi", "measure", "track", "analytics", "performance", "data"}},
	{AssetResource, []string{"resource", "link", "url", "reference", "documentation", "tool", "library"}},
	{AssetExample, []string{"example", "case study", "demo", "sample", "illustration", "instance"}},
	{AssetTemplate, []string{"template", "format", "structure", "outline", "boilerplate"}},
	{AssetChecklist, []string{"checklist", "checkbox", "✓", "☐", "[ ]", "- [ ]", "verify", "confirm"}},
}

// checklistMarkers are structural checkbox markers. They take precedence
// over the keyword cascade so that checkbox lists classify as checklists
// even when their item text mentions cascade keywords.
var checklistMarkers = []string{"- [ ]", "- [x]", "[ ]", "[x]", "✓", "☐"}

var orderedListRe = regexp.MustCompile(`^\d+[.)]\s`)

// DetectBlockType assigns a structural block type from marker patterns.
// Precedence is fixed: heading > list > faq > code > table > quote > text.
func DetectBlockType(text string) BlockType {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return BlockText
	}
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return BlockHeading
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || orderedListRe.MatchString(trimmed):
		return BlockList
	case strings.HasPrefix(lower, "q:") || strings.HasPrefix(lower, "a:") ||
		containsToken(lower, "faq"):
		return BlockFAQ
	case strings.HasPrefix(trimmed, "```"):
		return BlockCode
	case strings.HasPrefix(trimmed, "|"):
		return BlockTable
	case strings.HasPrefix(trimmed, ">"):
		return BlockQuote
	}
	return BlockText
}

// ClassifyAsset maps section text to an asset type via the keyword cascade.
// When no rule matches, the block type decides the default: headings map to
// goal, lists to checklist, everything else to strategy.
func ClassifyAsset(text string, blockType BlockType) AssetType {
	if asset, ok := matchAsset(text); ok {
		return asset
	}
	switch blockType {
	case BlockHeading:
		return AssetGoal
	case BlockList:
		return AssetChecklist
	}
	return AssetStrategy
}

// matchAsset runs the ordered keyword cascade. Checkbox markers win before
// the cascade runs.
func matchAsset(text string) (AssetType, bool) {
	lower := strings.ToLower(text)

	for _, marker := range checklistMarkers {
		if strings.Contains(lower, marker) {
			return AssetChecklist, true
		}
	}

	tokens := tokenize(lower)
	for _, rule := range assetRules {
		for _, kw := range rule.keywords {
			if matchKeyword(lower, tokens, kw) {
				return rule.asset, true
			}
		}
	}
	return "", false
}

// Classify converts one section into a content block at the given position.
// It is a pure function: byte-identical input yields identical output.
func Classify(section Section, position int) ContentBlock {
	content := strings.TrimSpace(section.Text)

	blockType := section.BlockType
	if blockType == "" {
		blockType = DetectBlockType(content)
	}

	confidence := section.Confidence
	if confidence == 0 {
		confidence = ConfidenceStyled
	}

	return ContentBlock{
		BlockType:       blockType,
		AssetType:       ClassifyAsset(content, blockType),
		Content:         content,
		ConfidenceScore: confidence,
		Tags:            ExtractTags(content),
		Summary:         Summarize(content),
		Position:        position,
	}
}

// matchKeyword tests a single keyword against the text. Plain alphanumeric
// keywords must match a whole token; marker and phrase keywords match as
// substrings.
func matchKeyword(lower string, tokens map[string]struct{}, kw string) bool {
	if isPlainWord(kw) {
		_, ok := tokens[kw]
		return ok
	}
	return strings.Contains(lower, kw)
}

func isPlainWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// tokenize splits lower-cased text into a token set on any character that
// is not a letter or digit.
func tokenize(lower string) map[string]struct{} {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func containsToken(lower, token string) bool {
	_, ok := tokenize(lower)[token]
	return ok
}
