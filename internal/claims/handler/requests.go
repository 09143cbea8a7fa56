package handler

import (
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/extract"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

// ProcessClaimRequest submits one accident claim with raw upstream party
// records. Records keep their source keys; normalization happens server-side.
type ProcessClaimRequest struct {
	ClaimID string           `json:"claim_id"`
	Parties []extract.Record `json:"parties"`
}

func (r ProcessClaimRequest) Validate() error {
	if r.ClaimID == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "claim_id is required")
	}
	if len(r.Parties) == 0 {
		return domainerrors.New(domainerrors.CodeBadRequest, "parties must not be empty")
	}
	return nil
}

// ValidateClaimRequest submits an already-decided bundle for the rule battery
// only. The batch runner and external decision pipelines use this path.
type ValidateClaimRequest struct {
	ClaimID      string               `json:"claim_id"`
	Parties      []models.PartyFact   `json:"parties"`
	RawDecisions []models.RawDecision `json:"raw_decisions"`
}

func (r ValidateClaimRequest) Validate() error {
	return r.Bundle().Validate()
}

// Bundle converts the request into the engine's case bundle.
func (r ValidateClaimRequest) Bundle() models.CaseBundle {
	return models.CaseBundle{
		ClaimID: r.ClaimID,
		Parties: r.Parties,
		Raw:     r.RawDecisions,
	}
}
