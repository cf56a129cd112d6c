package ingest

import "strings"

// MaxTags is the maximum number of tags attached to a block.
const MaxTags = 5

// topicRule pairs a topic label with its keyword set.
type topicRule struct {
	topic    string
	keywords []string
}

// topicRules is the closed tag vocabulary. Every rule whose keyword set
// intersects the token set contributes its label, in this fixed order.
var topicRules = []topicRule{
	{"startup", []string{"startup", "entrepreneur", "venture", "launch", "founder"}},
	{"marketing", []string{"marketing", "brand", "customer", "audience", "campaign"}},
	{"strategy", []string{"strategy", "plan", "approach", "framework", "methodology"}},
	{"growth", []string{"growth", "scale", "expand", "develop", "increase"}},
	{"revenue", []string{"revenue", "sales", "income", "profit", "monetization"}},
	{"product", []string{"product", "feature", "development", "mvp", "prototype"}},
	{"team", []string{"team", "hiring", "culture", "collaboration", "management"}},
	{"funding", []string{"funding", "investment", "investor", "capital", "financing"}},
	{"technology", []string{"technology", "tech", "software", "platform", "system"}},
	{"data", []string{"data", "analytics", "metrics", "measurement", "tracking"}},
}

// Length thresholds for the detailed/brief characteristic tags.
const (
	detailedThreshold = 500
	briefThreshold    = 100
)

// ExtractTags derives up to MaxTags topical tags for the text: topic labels
// from the closed vocabulary first, then characteristic tags (detailed,
// brief, question, quantitative), truncated in first-matched order.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	var tags []string
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if _, ok := tokens[kw]; ok {
				tags = append(tags, rule.topic)
				break
			}
		}
	}

	if len(text) > detailedThreshold {
		tags = append(tags, "detailed")
	} else if len(text) < briefThreshold {
		tags = append(tags, "brief")
	}

	if strings.Contains(text, "?") || containsToken(lower, "question") {
		tags = append(tags, "question")
	}

	if strings.ContainsAny(text, "0123456789") {
		tags = append(tags, "quantitative")
	}

	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}
