package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
)

func runWith(t *testing.T, claims string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "claims.json")
	out := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(in, []byte(claims), 0o644))

	inputPath, outputPath, workers = in, out, 2
	return out, runBatch(rootCmd, nil)
}

func TestRunBatchRejectsMalformedBundle(t *testing.T) {
	// Two parties but a single raw decision: the file must be refused before
	// any bundle reaches the engine.
	out, err := runWith(t, `{
	  "claims": [{
	    "claim_id": "CLM-1",
	    "parties": [
	      {"party_id": "1", "liability": 50},
	      {"party_id": "2", "liability": 50}
	    ],
	    "raw_decisions": [{"decision": "ACCEPTED"}]
	  }]
	}`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "raw_decisions must match parties")
	require.Contains(t, err.Error(), "CLM-1")
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "no results file on a refused input")
}

func TestRunBatchRejectsUnknownDecision(t *testing.T) {
	_, err := runWith(t, `{
	  "claims": [{
	    "claim_id": "CLM-2",
	    "parties": [{"party_id": "1", "liability": 50}],
	    "raw_decisions": [{"decision": "MAYBE"}]
	  }]
	}`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized")
}

func TestRunBatchWritesCorrectedResults(t *testing.T) {
	out, err := runWith(t, `{
	  "claims": [{
	    "claim_id": "CLM-3",
	    "parties": [
	      {"party_id": "1", "liability": 100, "insurer_english_name": "Tawuniya Cooperative Insurance"},
	      {"party_id": "2", "liability": 0, "insurer_english_name": "OtherCo Insurance"}
	    ],
	    "raw_decisions": [{"decision": "ACCEPTED"}, {"decision": "REJECTED"}]
	  }]
	}`)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var results struct {
		Results []models.CaseResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results.Results, 1)
	require.Equal(t, "CLM-3", results.Results[0].ClaimID)

	decisions := results.Results[0].Decisions
	require.Len(t, decisions, 2)
	require.Equal(t, models.DecisionRejected, decisions[0].Decision, "full liability is always rejected")
	require.Equal(t, models.DecisionAccepted, decisions[1].Decision, "zero liability non-primary is accepted")
}
