package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyContractType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"non-disclosure", "This Non-Disclosure Agreement is entered into...", "NDA"},
		{"nda acronym", "Mutual NDA between the parties", "NDA"},
		{"employment", "EMPLOYMENT AGREEMENT", "employment"},
		{"employee", "The Employee shall report to the manager", "employment"},
		{"employment beats lease", "This employment contract includes a lease of company housing", "employment"},
		{"service agreement needs both words", "Master Service Agreement", "service agreement"},
		{"service alone", "Terms of service", "unknown"},
		{"lease", "Residential Lease", "lease agreement"},
		{"rent", "Monthly rent is due on the first", "lease agreement"},
		{"rent inside another word", "The parent company guarantees", "lease agreement"},
		{"nothing matches", "A poem about the sea", "unknown"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyContractType(tt.text))
		})
	}
}

func TestHeuristicAnalyzer_NDA(t *testing.T) {
	profile := NewHeuristicAnalyzer().Analyze(context.Background(), "This Non-Disclosure Agreement ...")

	assert.Equal(t, "NDA", profile.ContractType)
	assert.Equal(t, []string{
		"NDA contract example",
		"NDA agreement template",
		"legal NDA document",
		"NDA contract SEC filing",
		"court case NDA dispute",
	}, profile.SearchQueries)
	assert.Equal(t, "general", profile.Industry)
	assert.Equal(t, []string{"company", "individual"}, profile.KeyParties)
	assert.Equal(t, "business agreement", profile.MainPurpose)
	assert.Equal(t, []string{"terms", "conditions"}, profile.ImportantClauses)
}

func TestHeuristicAnalyzer_Unknown(t *testing.T) {
	profile := NewHeuristicAnalyzer().Analyze(context.Background(), "hello world")

	assert.Equal(t, UnknownContractType, profile.ContractType)
	assert.Len(t, profile.SearchQueries, 5)
	assert.Equal(t, "unknown contract example", profile.SearchQueries[0])
}
