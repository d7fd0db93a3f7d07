package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/contractsearch/core"
)

// UnknownContractType is reported when no keyword rule matches.
const UnknownContractType = "unknown"

// typeRule classifies a contract when match reports true for its
// lower-cased text.
type typeRule struct {
	contractType string
	match        func(text string) bool
}

func containsAny(needles ...string) func(string) bool {
	return func(text string) bool {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return true
			}
		}
		return false
	}
}

func containsAll(needles ...string) func(string) bool {
	return func(text string) bool {
		for _, n := range needles {
			if !strings.Contains(text, n) {
				return false
			}
		}
		return true
	}
}

// typeRules are evaluated in order; the first match wins. Matching is by
// substring, so "rent" also matches "parent" and "current".
var typeRules = []typeRule{
	{"NDA", containsAny("non-disclosure", "nda")},
	{"employment", containsAny("employment", "employee")},
	{"service agreement", containsAll("service", "agreement")},
	{"lease agreement", containsAny("lease", "rent")},
}

// queryTemplates expand a contract type into search queries.
var queryTemplates = []string{
	"%s contract example",
	"%s agreement template",
	"legal %s document",
	"%s contract SEC filing",
	"court case %s dispute",
}

// HeuristicAnalyzer classifies contracts by keyword and expands the type
// into a fixed set of search queries. It makes no external calls.
type HeuristicAnalyzer struct{}

// NewHeuristicAnalyzer creates a keyword analyzer.
func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

// Analyze implements Analyzer.
func (h *HeuristicAnalyzer) Analyze(_ context.Context, contractText string) core.ContractProfile {
	contractType := ClassifyContractType(contractText)
	return core.ContractProfile{
		ContractType:     contractType,
		Industry:         "general",
		KeyParties:       []string{"company", "individual"},
		MainPurpose:      "business agreement",
		ImportantClauses: []string{"terms", "conditions"},
		SearchQueries:    QueriesFor(contractType),
	}
}

// ClassifyContractType returns the contract type of the first matching
// keyword rule, or UnknownContractType.
func ClassifyContractType(contractText string) string {
	lower := strings.ToLower(contractText)
	for _, rule := range typeRules {
		if rule.match(lower) {
			return rule.contractType
		}
	}
	return UnknownContractType
}

// QueriesFor expands contractType into the heuristic search queries.
func QueriesFor(contractType string) []string {
	queries := make([]string, len(queryTemplates))
	for i, tmpl := range queryTemplates {
		queries[i] = fmt.Sprintf(tmpl, contractType)
	}
	return queries
}
