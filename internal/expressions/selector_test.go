package expressions

import (
	"context"
	"testing"

	"github.com/rendis/workflow-runner/pkg/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	echoInfo = contract.GraphWorkflowInfo{
		Name: "echo", Description: "Simple input echo (demo)", InputFields: []string{"input"}, NodeCount: 1,
	}
	reviewInfo = contract.GraphWorkflowInfo{
		Name: "code-review", Description: "Complexity-based code review", InputFields: []string{"code"},
		NodeCount: 4, HasConditionalEdges: true,
	}
)

func TestParseSelector_Empty(t *testing.T) {
	s, err := ParseSelector("   ")
	require.NoError(t, err)
	assert.Nil(t, s)

	ok, err := s.Match(context.Background(), echoInfo)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", s.String())
}

func TestParseSelector_Engines(t *testing.T) {
	tests := []struct {
		source string
		engine string
	}{
		{"hasConditionalEdges", "expr"},
		{"expr:hasConditionalEdges", "expr"},
		{"cel: hasConditionalEdges", "cel"},
		{"jq:.hasConditionalEdges", "jq"},
		{"nodeCount > 2 ? true : false", "expr"},
	}
	for _, tc := range tests {
		t.Run(tc.source, func(t *testing.T) {
			s, err := ParseSelector(tc.source)
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, tc.engine, s.engine.Name())

			ok, err := s.Match(context.Background(), reviewInfo)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = s.Match(context.Background(), echoInfo)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestParseSelector_CompileError(t *testing.T) {
	for _, source := range []string{"cel:nodeCount >", "jq:.[", "expr:)("} {
		t.Run(source, func(t *testing.T) {
			_, err := ParseSelector(source)
			require.Error(t, err)
			assert.True(t, contract.IsValidation(err))
		})
	}
}

func TestSelector_NonBooleanResult(t *testing.T) {
	s, err := ParseSelector("expr:nodeCount")
	require.NoError(t, err)

	_, err = s.Match(context.Background(), echoInfo)
	require.Error(t, err)
	assert.Equal(t, contract.ErrCodeExecution, contract.Code(err))
}

func TestSelector_String(t *testing.T) {
	s, err := ParseSelector("cel:name == 'echo'")
	require.NoError(t, err)
	assert.Equal(t, "cel:name == 'echo'", s.String())
}

func TestNewEngine_Unknown(t *testing.T) {
	_, err := NewEngine("lua")
	assert.Error(t, err)
}
