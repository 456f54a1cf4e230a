package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
)

var engProfile = core.AgentProfile{
	ID:              "eng",
	DisplayName:     "Marcus",
	Role:            "Engineering Lead",
	Expertise:       []string{"architecture", "api", "database"},
	ConcernKeywords: []string{"technical debt"},
}

var testBrief = core.ProjectBrief{
	CompanyName:      "Acme",
	Industry:         "logistics",
	ProblemStatement: "manual route planning",
}

func TestRespondReturnsClientText(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("the architecture should be event-driven")
	a := New(engProfile, client)

	text, err := a.Respond(context.Background(), testBrief, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "the architecture should be event-driven", text)
}

func TestRespondWrapsFailureAsGenerationError(t *testing.T) {
	a := New(engProfile, model.FailingClient{Err: fmt.Errorf("boom")})

	_, err := a.Respond(context.Background(), testBrief, nil, "")
	require.Error(t, err)

	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "eng", genErr.AgentID)
}

func TestSummarizeFailure(t *testing.T) {
	a := New(engProfile, model.FailingClient{})

	_, err := a.Summarize(context.Background(), testBrief, nil, nil)
	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestShouldRespondParsesYes(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("Yes, I have thoughts on this.")
	a := New(engProfile, client)

	last := core.NewMessage("pm", "what stack should we use?", core.MessageTypeQuestion)
	assert.True(t, a.ShouldRespond(context.Background(), last, nil))
}

func TestShouldRespondParsesNo(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("No.")
	a := New(engProfile, client)

	last := core.NewMessage("pm", "any branding ideas?", core.MessageTypeQuestion)
	assert.False(t, a.ShouldRespond(context.Background(), last, nil))
}

func TestShouldRespondNeverRepliesToSelf(t *testing.T) {
	client := model.NewMockClient("test")
	client.SetFallback("Yes")
	a := New(engProfile, client)

	last := core.NewMessage("eng", "as I was saying about the api", core.MessageTypeDiscussion)
	assert.False(t, a.ShouldRespond(context.Background(), last, nil))
}

func TestShouldRespondFallsBackOnFailure(t *testing.T) {
	a := New(engProfile, model.FailingClient{})

	// Mentioned by name: heuristic says yes.
	last := core.NewMessage("pm", "Marcus, what do you think?", core.MessageTypeQuestion)
	assert.True(t, a.ShouldRespond(context.Background(), last, nil))

	// No mention, no keywords: heuristic says no.
	last = core.NewMessage("pm", "let's talk branding colors", core.MessageTypeDiscussion)
	assert.False(t, a.ShouldRespond(context.Background(), last, nil))
}

func TestHeuristicOnlyMode(t *testing.T) {
	// The client would answer "No", but heuristic-only mode never asks it.
	client := model.NewMockClient("test")
	client.SetFallback("No")
	a := New(engProfile, client, func(o *Options) { o.HeuristicOnly = true })

	last := core.NewMessage("pm", "the database migration worries me", core.MessageTypeDiscussion)
	assert.True(t, a.ShouldRespond(context.Background(), last, nil))
}

func TestHeuristicSuppressedAfterRecentTurn(t *testing.T) {
	a := New(engProfile, model.FailingClient{})

	history := []core.Message{
		core.NewMessage("eng", "we should use postgres", core.MessageTypeDiscussion),
		core.NewMessage("pm", "noted", core.MessageTypeResponse),
	}
	// Keyword match ("api") but the agent spoke within the last 2 messages.
	last := core.NewMessage("pm", "and the api contract?", core.MessageTypeQuestion)
	assert.False(t, a.ShouldRespond(context.Background(), last, history))
}

func TestHeuristicMentionOverridesRecency(t *testing.T) {
	a := New(engProfile, model.FailingClient{})

	history := []core.Message{
		core.NewMessage("eng", "we should use postgres", core.MessageTypeDiscussion),
	}
	last := core.NewMessage("pm", "Marcus, push back if this is wrong", core.MessageTypeQuestion)
	assert.True(t, a.ShouldRespond(context.Background(), last, history))
}

func TestRelevanceScore(t *testing.T) {
	a := New(engProfile, model.NewMockClient("test"))

	assert.Equal(t, 2, a.RelevanceScore("the api and database need work"))
	assert.Equal(t, 0, a.RelevanceScore("branding refresh"))
}

func TestParseYesNo(t *testing.T) {
	assert.Equal(t, yes, parseYesNo("  YES, definitely"))
	assert.Equal(t, no, parseYesNo("No thanks"))
	assert.Equal(t, ambiguous, parseYesNo("maybe, depends"))
}
