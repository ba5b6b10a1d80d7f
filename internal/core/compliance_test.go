package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/quick"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/EmundoT/apim-governance/internal/types"
)

// ============================================================================
// Aggregate
// ============================================================================

func TestAggregate_FirstRecordWins(t *testing.T) {
	resp := complianceDoc("PetStore",
		governed(ruleset("r1", types.RulesetPassed)),
		governed(ruleset("r1", types.RulesetFailed), ruleset("r2", types.RulesetFailed)),
	)

	counts, err := Aggregate(resp)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	want := types.StatusCounts{Passed: 1, Failed: 1}
	if counts != want {
		t.Errorf("Aggregate() = %+v, want %+v", counts, want)
	}
}

func TestAggregate_PendingExcluded(t *testing.T) {
	resp := complianceDoc("PetStore", governed(ruleset("r1", types.RulesetPending)))

	counts, err := Aggregate(resp)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if counts != (types.StatusCounts{}) {
		t.Errorf("Aggregate() = %+v, want zero counts", counts)
	}
}

func TestAggregate_Table(t *testing.T) {
	tests := []struct {
		name string
		resp *types.ComplianceResponse
		want types.StatusCounts
	}{
		{
			name: "no governed policies",
			resp: complianceDoc("a"),
			want: types.StatusCounts{},
		},
		{
			name: "policy with no results",
			resp: complianceDoc("a", governed()),
			want: types.StatusCounts{},
		},
		{
			name: "all passed",
			resp: complianceDoc("a", governed(ruleset("r1", types.RulesetPassed), ruleset("r2", types.RulesetPassed))),
			want: types.StatusCounts{Passed: 2},
		},
		{
			name: "duplicate within one policy",
			resp: complianceDoc("a", governed(ruleset("r1", types.RulesetFailed), ruleset("r1", types.RulesetPassed))),
			want: types.StatusCounts{Failed: 1},
		},
		{
			name: "unknown status ignored",
			resp: complianceDoc("a", governed(ruleset("r1", "SKIPPED"), ruleset("r2", types.RulesetFailed))),
			want: types.StatusCounts{Failed: 1},
		},
		{
			name: "pending first hides later passed",
			resp: complianceDoc("a",
				governed(ruleset("r1", types.RulesetPending)),
				governed(ruleset("r1", types.RulesetPassed))),
			want: types.StatusCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.resp)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregate_MalformedInput(t *testing.T) {
	tests := []struct {
		name      string
		resp      *types.ComplianceResponse
		wantField string
	}{
		{
			name:      "nil response",
			resp:      nil,
			wantField: "body",
		},
		{
			name:      "missing governedPolicies",
			resp:      &types.ComplianceResponse{Info: &types.ArtifactInfo{Name: "a"}},
			wantField: "governedPolicies",
		},
		{
			name: "missing rulesetValidationResults",
			resp: &types.ComplianceResponse{GovernedPolicies: []types.GovernedPolicy{
				{ID: "gp1", RulesetValidationResults: []types.RulesetResult{}},
				{ID: "gp2"},
			}},
			wantField: "governedPolicies[1].rulesetValidationResults",
		},
		{
			name:      "missing ruleset id",
			resp:      complianceDoc("a", governed(types.RulesetResult{Status: types.RulesetPassed})),
			wantField: "governedPolicies[0].rulesetValidationResults[0].id",
		},
		{
			name:      "missing ruleset status",
			resp:      complianceDoc("a", governed(ruleset("r1", types.RulesetPassed), types.RulesetResult{ID: "r2"})),
			wantField: "governedPolicies[0].rulesetValidationResults[1].status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.resp)
			if !IsDataShapeError(err) {
				t.Fatalf("Aggregate() error = %v, want DataShapeError", err)
			}
			var de *DataShapeError
			errors.As(err, &de)
			if de.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", de.Field, tt.wantField)
			}
		})
	}
}

func TestUniqueRulesets_DiscoveryOrder(t *testing.T) {
	resp := complianceDoc("a",
		governed(ruleset("r2", types.RulesetFailed), ruleset("r1", types.RulesetPassed)),
		governed(ruleset("r3", types.RulesetPassed), ruleset("r2", types.RulesetPassed)),
	)

	got, err := UniqueRulesets(resp)
	if err != nil {
		t.Fatalf("UniqueRulesets() error = %v", err)
	}
	want := []types.RulesetResult{
		ruleset("r2", types.RulesetFailed),
		ruleset("r1", types.RulesetPassed),
		ruleset("r3", types.RulesetPassed),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UniqueRulesets() mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Properties
// ============================================================================

// buildDoc turns fuzz input into a compliance document with up to 8 distinct ids.
func buildDoc(ids, statuses []uint8, split uint8) *types.ComplianceResponse {
	all := []types.RulesetStatus{types.RulesetPassed, types.RulesetFailed, types.RulesetPending}
	var results []types.RulesetResult
	for i, id := range ids {
		status := all[0]
		if i < len(statuses) {
			status = all[int(statuses[i])%len(all)]
		}
		results = append(results, ruleset(string(rune('a'+id%8)), status))
	}
	cut := 0
	if len(results) > 0 {
		cut = int(split) % (len(results) + 1)
	}
	return complianceDoc("fuzz", governed(results[:cut]...), governed(results[cut:]...))
}

func TestAggregate_Property_CountsBoundedByDistinctIDs(t *testing.T) {
	f := func(ids, statuses []uint8, split uint8) bool {
		resp := buildDoc(ids, statuses, split)
		counts, err := Aggregate(resp)
		if err != nil {
			return false
		}
		distinct := make(map[uint8]struct{})
		for _, id := range ids {
			distinct[id%8] = struct{}{}
		}
		return counts.Passed >= 0 && counts.Failed >= 0 && counts.Total() <= len(distinct)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAggregate_Property_AppendedDuplicatesChangeNothing(t *testing.T) {
	f := func(ids, statuses []uint8, split uint8) bool {
		resp := buildDoc(ids, statuses, split)
		before, err := Aggregate(resp)
		if err != nil {
			return false
		}

		// Re-report every ruleset with the opposite verdict in a trailing policy.
		var flipped []types.RulesetResult
		for _, p := range resp.GovernedPolicies {
			for _, r := range p.RulesetValidationResults {
				status := types.RulesetFailed
				if r.Status == types.RulesetFailed {
					status = types.RulesetPassed
				}
				flipped = append(flipped, ruleset(r.ID, status))
			}
		}
		resp.GovernedPolicies = append(resp.GovernedPolicies, governed(flipped...))

		after, err := Aggregate(resp)
		return err == nil && after == before
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAggregate_Property_Idempotent(t *testing.T) {
	f := func(ids, statuses []uint8, split uint8) bool {
		resp := buildDoc(ids, statuses, split)
		first, err1 := Aggregate(resp)
		second, err2 := Aggregate(resp)
		return err1 == nil && err2 == nil && first == second
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// ============================================================================
// Decode
// ============================================================================

func TestDecodeComplianceResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
		wantCount types.StatusCounts
	}{
		{
			name:      "valid document",
			body:      `{"id":"a1","info":{"name":"PetStore"},"governedPolicies":[{"id":"gp","rulesetValidationResults":[{"id":"r1","status":"PASSED"},{"id":"r2","status":"FAILED"}]}]}`,
			wantCount: types.StatusCounts{Passed: 1, Failed: 1},
		},
		{
			name: "empty governedPolicies is valid",
			body: `{"info":{"name":"PetStore"},"governedPolicies":[]}`,
		},
		{
			name:      "missing governedPolicies",
			body:      `{"info":{"name":"PetStore"}}`,
			wantErr:   true,
			wantField: "governedPolicies",
		},
		{
			name:      "null rulesetValidationResults",
			body:      `{"governedPolicies":[{"rulesetValidationResults":null}]}`,
			wantErr:   true,
			wantField: "governedPolicies[0].rulesetValidationResults",
		},
		{
			name:      "governedPolicies of wrong type",
			body:      `{"governedPolicies":"none"}`,
			wantErr:   true,
			wantField: "body",
		},
		{
			name:      "not JSON",
			body:      `<html>502 Bad Gateway</html>`,
			wantErr:   true,
			wantField: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeComplianceResponse(strings.NewReader(tt.body))
			if tt.wantErr {
				var de *DataShapeError
				if !errors.As(err, &de) {
					t.Fatalf("expected DataShapeError, got %v", err)
				}
				if de.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", de.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeComplianceResponse() error = %v", err)
			}
			counts, err := Aggregate(resp)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if counts != tt.wantCount {
				t.Errorf("counts = %+v, want %+v", counts, tt.wantCount)
			}
		})
	}
}

// ============================================================================
// FetchComplianceSummary
// ============================================================================

func TestFetchComplianceSummary_Success(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	gov.EXPECT().GetCompliance(gomock.Any(), "a1").Return(complianceDoc("PetStore",
		governed(ruleset("r1", types.RulesetPassed), ruleset("r2", types.RulesetFailed)),
	), nil)

	summary, err := FetchComplianceSummary(context.Background(), gov, "a1")
	if err != nil {
		t.Fatalf("FetchComplianceSummary() error = %v", err)
	}
	want := types.ComplianceSummary{
		ArtifactID:   "a1",
		ArtifactName: "PetStore",
		Counts:       types.StatusCounts{Passed: 1, Failed: 1},
		Rulesets:     []types.RulesetResult{ruleset("r1", types.RulesetPassed), ruleset("r2", types.RulesetFailed)},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchComplianceSummary_FallbackOnError(t *testing.T) {
	fetchErr := NewFetchError("get compliance", "http://x/governance/compliance/a1", 500, errors.New("boom"))

	tests := []struct {
		name    string
		resp    *types.ComplianceResponse
		err     error
		checkFn func(error) bool
	}{
		{"fetch failure", nil, fetchErr, IsFetchError},
		{"cancelled", nil, context.Canceled, IsCancelled},
		{"missing info", &types.ComplianceResponse{GovernedPolicies: []types.GovernedPolicy{}}, nil, IsDataShapeError},
		{"malformed results", &types.ComplianceResponse{
			Info:             &types.ArtifactInfo{Name: "a"},
			GovernedPolicies: []types.GovernedPolicy{{}},
		}, nil, IsDataShapeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, gov, _ := setupMocks(t)
			defer ctrl.Finish()
			gov.EXPECT().GetCompliance(gomock.Any(), "a1").Return(tt.resp, tt.err)

			summary, err := FetchComplianceSummary(context.Background(), gov, "a1")
			if !tt.checkFn(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			if diff := cmp.Diff(FallbackSummary("a1"), summary); diff != "" {
				t.Errorf("expected fallback summary (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFallbackSummary(t *testing.T) {
	s := FallbackSummary("a9")
	if s.ArtifactID != "a9" || s.ArtifactName != "" || s.Counts.Total() != 0 || s.Rulesets != nil {
		t.Errorf("FallbackSummary() = %+v", s)
	}
}
