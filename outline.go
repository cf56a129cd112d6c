package ingest

import (
	"fmt"
	"strings"
)

// OutlineOrder is the canonical section ordering for a playbook outline.
// Note it differs from the classification cascade priority: metric sections
// are displayed before faq sections.
var OutlineOrder = []AssetType{
	AssetGoal, AssetStrategy, AssetTimeline, AssetTask, AssetMetric,
	AssetFAQ, AssetResource, AssetExample, AssetTemplate, AssetChecklist,
}

// MaxThemes caps the outline theme list.
const MaxThemes = 10

// OutlineSection summarizes one asset type's blocks in the outline.
type OutlineSection struct {
	AssetType AssetType `json:"assetType"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Count     int       `json:"count"`
}

// PlaybookOutline is the aggregated, ordered summary of all blocks grouped
// by asset type.
type PlaybookOutline struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Sections    []OutlineSection `json:"sections"`

	// Themes is the union of all block tags in first-seen order, capped
	// at MaxThemes.
	Themes []string `json:"themes"`

	TotalBlocks       int               `json:"totalBlocks"`
	AssetDistribution map[AssetType]int `json:"assetDistribution"`

	// Static estimate labels; not computed from content.
	EstimatedCompletionTime string `json:"estimatedCompletionTime"`
	Difficulty              string `json:"difficulty"`
}

// BuildOutline groups classified blocks by asset type and produces the
// ordered playbook outline. It is deterministic and side-effect-free.
func BuildOutline(blocks []*ContentBlock) *PlaybookOutline {
	distribution := make(map[AssetType]int)
	var themes []string
	seen := make(map[string]struct{})

	for _, b := range blocks {
		distribution[b.AssetType]++
		for _, tag := range b.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			themes = append(themes, tag)
		}
	}

	var sections []OutlineSection
	order := 1
	for _, asset := range OutlineOrder {
		count := distribution[asset]
		if count == 0 {
			continue
		}
		sections = append(sections, OutlineSection{
			AssetType: asset,
			Title:     displayTitle(asset),
			Order:     order,
			Count:     count,
		})
		order++
	}

	if len(themes) > MaxThemes {
		themes = themes[:MaxThemes]
	}

	return &PlaybookOutline{
		Title:                   "AI-Generated Playbook",
		Description:             fmt.Sprintf("Semantically processed playbook with %d content blocks", len(blocks)),
		Sections:                sections,
		Themes:                  themes,
		TotalBlocks:             len(blocks),
		AssetDistribution:       distribution,
		EstimatedCompletionTime: "1-3 hours",
		Difficulty:              "intermediate",
	}
}

// displayTitle renders an asset type as a plural section title.
func displayTitle(asset AssetType) string {
	s := string(asset)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:] + "s"
}
