package core

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmundoT/apim-governance/internal/types"
)

func samplePolicies() []types.PolicyDescriptor {
	return []types.PolicyDescriptor{
		{
			ID:               "p2",
			Name:             "Security Baseline",
			Description:      "OWASP checks for REST APIs",
			GovernableStates: []string{types.StateAPICreate, types.StateAPIUpdate, types.StateAPIDeploy},
			Labels:           []string{"external"},
		},
		{
			ID:          "p1",
			Name:        "api design guidelines",
			Description: "Naming and versioning rules",
		},
		{
			ID:               "p3",
			Name:             "Documentation",
			Description:      "Every API has a description",
			GovernableStates: []string{types.StateAPIPublish},
			Labels:           []string{"a", "b", "c", "d"},
		},
	}
}

// ============================================================================
// PolicyService.List Tests
// ============================================================================

func TestPolicyService_List(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	gov.EXPECT().ListPolicies(gomock.Any()).Return(samplePolicies(), nil)

	rows, err := NewPolicyService(gov, nil, nil).List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"p1", "p3", "p2"}, []string{rows[0].ID, rows[1].ID, rows[2].ID}, "rows sorted by name, case-insensitive")
	assert.Equal(t, types.PolicyRow{
		ID:          "p2",
		Name:        "Security Baseline",
		Description: "OWASP checks for REST APIs",
		AppliesWhen: "API Create, API Update +1",
		AppliesTo:   "external",
	}, rows[2])
	assert.Equal(t, "Not set", rows[0].AppliesWhen)
	assert.Equal(t, "All", rows[0].AppliesTo)
	assert.Equal(t, "a, b +2", rows[1].AppliesTo)
}

func TestPolicyService_ListSearch(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	gov.EXPECT().ListPolicies(gomock.Any()).Return(samplePolicies(), nil).Times(2)
	svc := NewPolicyService(gov, nil, nil)

	rows, err := svc.List(context.Background(), "OWASP")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].ID)

	rows, err = svc.List(context.Background(), "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPolicyService_ListError(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	boom := NewFetchError("list policies", "http://x/governance/policies", 500, errors.New("internal"))
	gov.EXPECT().ListPolicies(gomock.Any()).Return(nil, boom)

	_, err := NewPolicyService(gov, nil, nil).List(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

// ============================================================================
// PolicyService.Delete Tests
// ============================================================================

func TestPolicyService_DeleteConfirmed(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	gov.EXPECT().DeletePolicy(gomock.Any(), "p1").Return(nil)
	ui := &recordingUI{confirm: true}

	deleted, err := NewPolicyService(gov, ui, nil).Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"Delete Policy"}, ui.asked)
}

func TestPolicyService_DeleteDeclined(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()
	// No DeletePolicy expectation.

	deleted, err := NewPolicyService(gov, &recordingUI{confirm: false}, nil).Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPolicyService_DeleteNotFound(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	gov.EXPECT().DeletePolicy(gomock.Any(), "gone").
		Return(NewFetchError("delete policy", "http://x", 404, ErrPolicyNotFound))

	deleted, err := NewPolicyService(gov, &recordingUI{confirm: true}, nil).Delete(context.Background(), "gone")
	assert.False(t, deleted)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestPolicyService_DeleteRequiresID(t *testing.T) {
	ctrl, gov, _ := setupMocks(t)
	defer ctrl.Finish()

	_, err := NewPolicyService(gov, &recordingUI{confirm: true}, nil).Delete(context.Background(), "")
	assert.Error(t, err)
}

// ============================================================================
// Formatting helpers
// ============================================================================

func TestSummarizeChips(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, "-"},
		{[]string{"one"}, "one"},
		{[]string{"one", "two"}, "one, two"},
		{[]string{"one", "two", "three"}, "one, two +1"},
	}
	for _, tt := range tests {
		if got := SummarizeChips(tt.items, "-"); got != tt.want {
			t.Errorf("SummarizeChips(%v) = %q, want %q", tt.items, got, tt.want)
		}
	}
}

func TestGovernableStateLabel(t *testing.T) {
	tests := map[string]string{
		types.StateAPICreate:  "API Create",
		types.StateAPIPublish: "API Publish",
		"API_RETIRE":          "API Retire",
		"SOMETHING_ELSE":      "Something Else",
	}
	for in, want := range tests {
		if got := GovernableStateLabel(in); got != want {
			t.Errorf("GovernableStateLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilterPolicies_CaseInsensitive(t *testing.T) {
	got := FilterPolicies(samplePolicies(), "  NAMING ")
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}
