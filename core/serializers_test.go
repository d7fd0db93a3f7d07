package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRunMUS_RoundTrip(t *testing.T) {
	run := SearchRun{
		Id:          7,
		Fingerprint: IDFromContent("This Non-Disclosure Agreement"),
		Profile: ContractProfile{
			ContractType:     "NDA",
			Industry:         "general",
			KeyParties:       []string{"company", "individual"},
			MainPurpose:      "business agreement",
			ImportantClauses: []string{"terms", "conditions"},
			SearchQueries:    []string{"NDA contract example", "court case NDA dispute"},
		},
		Results: []RankedResult{
			{
				SearchHit: SearchHit{
					Title:     "Mutual NDA",
					URL:       "https://www.sec.gov/filing/123",
					Snippet:   "confidential information",
					Source:    SourceSECEdgar,
					QueryUsed: "NDA contract example",
				},
				SimilarityScore: 87.5,
				Explanation:     "same contract type",
			},
		},
		CreatedAt: time.UnixMicro(1_700_000_000_000_000).UTC(),
	}

	buf := make([]byte, SearchRunMUS.Size(run))
	n := SearchRunMUS.Marshal(run, buf)
	assert.Equal(t, len(buf), n)

	decoded, read, err := SearchRunMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, read)
	assert.Equal(t, run, decoded)
}

func TestSearchHitsMUS_Empty(t *testing.T) {
	buf := make([]byte, SearchHitsMUS.Size(nil))
	SearchHitsMUS.Marshal(nil, buf)

	decoded, _, err := SearchHitsMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSearchRunMUS_Truncated(t *testing.T) {
	run := SearchRun{Id: 1, Profile: ContractProfile{ContractType: "lease agreement"}}
	buf := make([]byte, SearchRunMUS.Size(run))
	SearchRunMUS.Marshal(run, buf)

	_, _, err := SearchRunMUS.Unmarshal(buf[:len(buf)/2])
	assert.Error(t, err)
}
