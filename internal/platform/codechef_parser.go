package platform

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cphub/cphub/backend/pkg/logger"
)

// ParseCodeChefProfile extracts the stats out of a profile HTML document. All
// selector lookups degrade to zero/empty defaults when the markup is missing,
// so selector drift upstream yields defaults instead of a failed request.
// Keeping the parser separate from the fetch makes selector updates a
// one-function change, testable against recorded pages.
func ParseCodeChefProfile(html []byte, username string) (*CodeChefStats, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	stats := &CodeChefStats{
		Platform:    CodeChef,
		Username:    username,
		Rating:      leadingInt(doc.Find(".rating-number").First().Text()),
		MaxRating:   leadingInt(strings.ReplaceAll(doc.Find(".rating-header small").First().Text(), "max", "")),
		Stars:       strings.TrimSpace(doc.Find(".rating-star").First().Text()),
		GlobalRank:  leadingInt(strings.ReplaceAll(doc.Find(".rating-ranks a strong").First().Text(), ",", "")),
		CountryRank: leadingInt(strings.ReplaceAll(doc.Find(".rating-ranks strong:last-child").First().Text(), ",", "")),
	}

	// solved-problem counts live in an embedded JSON blob; a broken blob is
	// logged and treated as zero counts, not a fatal error (the page itself
	// loaded fine)
	if blob := doc.Find("#jsonData").First().Text(); blob != "" {
		var solved struct {
			FullySolved     []json.RawMessage `json:"fullySolved"`
			PartiallySolved []json.RawMessage `json:"partiallySolved"`
		}
		if err := json.Unmarshal([]byte(blob), &solved); err != nil {
			logger.Errorf("codechef: parsing embedded solved-problems JSON for %q: %v", username, err)
		} else {
			stats.FullySolved = len(solved.FullySolved)
			stats.PartiallySolved = len(solved.PartiallySolved)
		}
	}

	return stats, nil
}

// leadingInt parses the leading integer of the trimmed string, returning 0
// when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	n, seen := 0, false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
