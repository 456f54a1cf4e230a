package roundtable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
)

var testBrief = core.ProjectBrief{
	CompanyName:      "Acme",
	Industry:         "logistics",
	ProblemStatement: "manual route planning",
}

func TestNewDefaults(t *testing.T) {
	rt, err := New(model.NewMockClient("test"))
	require.NoError(t, err)

	assert.Equal(t, 4, rt.Profiles().Len())
	assert.Equal(t, "pm", rt.Profiles().Lead().ID)
	assert.NotNil(t, rt.Transcripts())
	assert.NotNil(t, rt.Artifacts())
}

func TestRunPersistsTranscriptAndResult(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("Sounds good, I agree.")

	rt, err := New(client, func(o *Options) {
		o.Sequential = true
		o.HeuristicOnly = true
	})
	require.NoError(t, err)

	res, err := rt.Run(context.Background(), testBrief)
	require.NoError(t, err)

	// Three consecutive agreements trip the default streak strategy.
	assert.Equal(t, core.TerminationConvergence, res.Summary.TerminationReason)
	require.Len(t, res.Messages, 5)
	assert.Equal(t, core.MessageTypeSummary, res.Messages[4].Type)

	msgs, err := rt.Transcripts().Messages(res.SessionID)
	require.NoError(t, err)
	assert.Len(t, msgs, len(res.Messages))

	saved, err := rt.Transcripts().Result(res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, saved.SessionID)
	assert.Equal(t, res.Summary, saved.Summary)
}

func TestRunIsolatesSessions(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("Sounds good, I agree.")

	rt, err := New(client, func(o *Options) {
		o.Sequential = true
		o.HeuristicOnly = true
	})
	require.NoError(t, err)

	first, err := rt.Run(context.Background(), testBrief)
	require.NoError(t, err)
	second, err := rt.Run(context.Background(), testBrief)
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	// The streak strategy is rebuilt per run, so both sessions converge
	// independently instead of inheriting the first session's streak.
	assert.Equal(t, first.Summary.TotalMessages, second.Summary.TotalMessages)
}

func TestRunRejectsInvalidBrief(t *testing.T) {
	rt, err := New(model.NewMockClient("test"))
	require.NoError(t, err)

	_, err = rt.Run(context.Background(), core.ProjectBrief{})
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
