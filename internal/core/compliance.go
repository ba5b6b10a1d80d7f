package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/EmundoT/apim-governance/internal/types"
)

// DecodeComplianceResponse parses and validates a compliance body.
// Any decode or validation failure is returned as a *DataShapeError.
func DecodeComplianceResponse(r io.Reader) (*types.ComplianceResponse, error) {
	var resp types.ComplianceResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, &DataShapeError{Field: "body", Reason: "is not a compliance document", Err: err}
	}
	if err := ValidateComplianceResponse(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateComplianceResponse checks the fields Aggregate relies on.
// An empty governedPolicies list is valid; a missing one is not.
func ValidateComplianceResponse(resp *types.ComplianceResponse) error {
	if resp == nil {
		return NewDataShapeError("body", "is empty")
	}
	if resp.GovernedPolicies == nil {
		return NewDataShapeError("governedPolicies", "is missing")
	}
	for i, policy := range resp.GovernedPolicies {
		if policy.RulesetValidationResults == nil {
			return NewDataShapeError(fmt.Sprintf("governedPolicies[%d].rulesetValidationResults", i), "is missing")
		}
		for j, result := range policy.RulesetValidationResults {
			if result.ID == "" {
				return NewDataShapeError(fmt.Sprintf("governedPolicies[%d].rulesetValidationResults[%d].id", i, j), "is missing")
			}
			if result.Status == "" {
				return NewDataShapeError(fmt.Sprintf("governedPolicies[%d].rulesetValidationResults[%d].status", i, j), "is missing")
			}
		}
	}
	return nil
}

// UniqueRulesets returns one record per ruleset id in discovery order.
// The first record seen for an id wins; later records for the same id are dropped
// even when their status differs. No timestamp is consulted.
func UniqueRulesets(resp *types.ComplianceResponse) ([]types.RulesetResult, error) {
	if err := ValidateComplianceResponse(resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var unique []types.RulesetResult
	for _, policy := range resp.GovernedPolicies {
		for _, result := range policy.RulesetValidationResults {
			if _, ok := seen[result.ID]; ok {
				continue
			}
			seen[result.ID] = struct{}{}
			unique = append(unique, result)
		}
	}
	return unique, nil
}

// Aggregate counts passed and failed rulesets, each ruleset id counted once.
func Aggregate(resp *types.ComplianceResponse) (types.StatusCounts, error) {
	unique, err := UniqueRulesets(resp)
	if err != nil {
		return types.StatusCounts{}, err
	}
	return countStatuses(unique), nil
}

func countStatuses(results []types.RulesetResult) types.StatusCounts {
	var counts types.StatusCounts
	for _, r := range results {
		switch r.Status {
		case types.RulesetPassed:
			counts.Passed++
		case types.RulesetFailed:
			counts.Failed++
		}
	}
	return counts
}

// FallbackSummary is what a view shows after a failed fetch or aggregation.
func FallbackSummary(artifactID string) types.ComplianceSummary {
	return types.ComplianceSummary{ArtifactID: artifactID}
}

// FetchComplianceSummary fetches the compliance document for artifactID and aggregates it.
// On any error the returned summary is FallbackSummary(artifactID).
func FetchComplianceSummary(ctx context.Context, client GovernanceClient, artifactID string) (types.ComplianceSummary, error) {
	resp, err := client.GetCompliance(ctx, artifactID)
	if err != nil {
		return FallbackSummary(artifactID), err
	}
	if resp == nil || resp.Info == nil {
		return FallbackSummary(artifactID), NewDataShapeError("info", "is missing")
	}

	unique, err := UniqueRulesets(resp)
	if err != nil {
		return FallbackSummary(artifactID), err
	}

	return types.ComplianceSummary{
		ArtifactID:   artifactID,
		ArtifactName: resp.Info.Name,
		Counts:       countStatuses(unique),
		Rulesets:     unique,
	}, nil
}
