package core

import "strings"

// SourceCategory is the coarse provenance of a URL.
type SourceCategory string

const (
	SourceSECEdgar      SourceCategory = "SEC EDGAR"
	SourceCourtRecords  SourceCategory = "Court Records"
	SourceGovernment    SourceCategory = "Government"
	SourceLegalDatabase SourceCategory = "Legal Database"
	SourceLegalResource SourceCategory = "Legal Resource"
)

// sourceRules are evaluated in order; the first rule with a matching
// substring wins.
var sourceRules = []struct {
	needles  []string
	category SourceCategory
}{
	{[]string{"sec.gov"}, SourceSECEdgar},
	{[]string{"courtlistener", "justia"}, SourceCourtRecords},
	{[]string{"gov"}, SourceGovernment},
	{[]string{"law"}, SourceLegalDatabase},
}

// ClassifySource maps a URL to its SourceCategory using case-insensitive
// substring matching. Unknown URLs are LegalResource.
func ClassifySource(url string) SourceCategory {
	lower := strings.ToLower(url)
	for _, rule := range sourceRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.category
			}
		}
	}
	return SourceLegalResource
}

// IsCredible reports whether the category is an official or court source.
func (c SourceCategory) IsCredible() bool {
	switch c {
	case SourceSECEdgar, SourceCourtRecords, SourceGovernment:
		return true
	}
	return false
}

// IsValid reports whether c is one of the known categories.
func (c SourceCategory) IsValid() bool {
	switch c {
	case SourceSECEdgar, SourceCourtRecords, SourceGovernment, SourceLegalDatabase, SourceLegalResource:
		return true
	}
	return false
}
