package analysis

import "fmt"

const analysisPromptTemplate = `Analyze this contract and create a search strategy to find similar legal documents:

CONTRACT (first %d characters):
%s

Extract:
1. Contract type (e.g., NDA, employment, service agreement)
2. Industry/sector
3. Key parties (types of organizations)
4. Main purpose/subject
5. Important clauses mentioned
6. Generate %d specific search queries to find similar contracts

Return ONLY a JSON object with these fields:
{
    "contract_type": "",
    "industry": "",
    "key_parties": [],
    "main_purpose": "",
    "important_clauses": [],
    "search_queries": []
}`

func buildAnalysisPrompt(excerpt string) string {
	return fmt.Sprintf(analysisPromptTemplate, MaxPromptChars, excerpt, MaxSearchQueries)
}
