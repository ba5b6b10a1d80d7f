package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/types"
)

func TestParseCommonFlags(t *testing.T) {
	opts, rest := parseCommonFlags([]string{"a1", "--json", "-y", "--revision", "-v"})
	assert.Equal(t, core.OutputJSON, opts.flags.Mode)
	assert.True(t, opts.flags.Yes)
	assert.True(t, opts.verbose)
	assert.Equal(t, []string{"a1", "--revision"}, rest)

	opts, rest = parseCommonFlags(nil)
	assert.Equal(t, core.OutputNormal, opts.flags.Mode)
	assert.Empty(t, rest)
}

func TestTakeFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantVal  string
		wantRest []string
		wantOK   bool
	}{
		{"separate value", []string{"--severity", "ERROR", "a1"}, "ERROR", []string{"a1"}, true},
		{"equals form", []string{"a1", "--severity=WARN"}, "WARN", []string{"a1"}, true},
		{"missing value", []string{"a1", "--severity"}, "", []string{"a1", "--severity"}, false},
		{"absent", []string{"a1"}, "", []string{"a1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, rest, ok := takeFlag(tt.args, "--severity")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantVal, val)
			if diff := cmp.Diff(tt.wantRest, rest); diff != "" {
				t.Errorf("rest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTakeFlag_DoesNotModifyInput(t *testing.T) {
	args := []string{"--search", "owasp", "extra"}
	_, _, _ = takeFlag(args, "--search")
	assert.Equal(t, []string{"--search", "owasp", "extra"}, args)
}

func TestTakeBool(t *testing.T) {
	found, rest := takeBool([]string{"a1", "-i", "--revision"}, "--interactive", "-i")
	assert.True(t, found)
	assert.Equal(t, []string{"a1", "--revision"}, rest)

	found, rest = takeBool([]string{"a1"}, "--interactive", "-i")
	assert.False(t, found)
	assert.Equal(t, []string{"a1"}, rest)
}

func TestResolveArtifact(t *testing.T) {
	cfg := types.ConsoleConfig{
		Artifacts: []types.ArtifactRef{
			{ID: "a1", Name: "PetStore"},
			{ID: "a2", Name: "Orders"},
		},
		Selected: "a2",
	}

	t.Run("selection when empty", func(t *testing.T) {
		ref, err := resolveArtifact(cfg, "", false)
		require.NoError(t, err)
		assert.Equal(t, "a2", ref.ID)
	})

	t.Run("tracked artifact keeps its name", func(t *testing.T) {
		ref, err := resolveArtifact(cfg, "a1", true)
		require.NoError(t, err)
		assert.Equal(t, types.ArtifactRef{ID: "a1", Name: "PetStore", Revision: true}, ref)
		assert.False(t, cfg.Artifacts[0].Revision, "config entry must not be modified")
	})

	t.Run("unknown id used as-is", func(t *testing.T) {
		ref, err := resolveArtifact(cfg, "zz", false)
		require.NoError(t, err)
		assert.Equal(t, types.ArtifactRef{ID: "zz"}, ref)
	})

	t.Run("nothing tracked", func(t *testing.T) {
		_, err := resolveArtifact(types.ConsoleConfig{}, "", false)
		assert.Error(t, err)
	})
}
