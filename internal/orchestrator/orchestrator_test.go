package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundline/internal/adapters/ai"
	"fundline/internal/tools"
	"fundline/pkg/errors"
)

// scriptedProvider returns canned responses in order, repeating the
// last one when the script runs out.
type scriptedProvider struct {
	responses []*ai.ChatResponse
	err       error
	calls     int
	requests  []ai.ChatRequest
}

func (p *scriptedProvider) Name() string        { return "scripted" }
func (p *scriptedProvider) SupportsTools() bool { return true }

func (p *scriptedProvider) Chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	p.calls++
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	idx := p.calls - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return p.responses[idx], nil
}

type countingTool struct {
	name  string
	runs  int
	err   error
	value map[string]interface{}
}

func (t *countingTool) Name() string                       { return t.name }
func (t *countingTool) Description() string                { return "test tool" }
func (t *countingTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }

func (t *countingTool) Execute(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
	t.runs++
	if t.err != nil {
		return nil, t.err
	}
	if t.value != nil {
		return t.value, nil
	}
	return map[string]interface{}{"ok": true}, nil
}

func collectEvents() (*Emitter, *[]Event) {
	var events []Event
	emitter := NewEmitter(SinkFunc(func(e Event) {
		events = append(events, e)
	}))
	return emitter, &events
}

func toolCallResponse(name string) *ai.ChatResponse {
	return &ai.ChatResponse{
		ToolCalls: []ai.ToolCall{{ID: "call_1", Name: name, Arguments: map[string]interface{}{}}},
	}
}

func TestOrchestrator_TerminatesAtLoopCap(t *testing.T) {
	registry := tools.NewRegistry()
	tool := &countingTool{name: "pull_credit_report"}
	registry.Register(tool)

	provider := &scriptedProvider{
		responses: []*ai.ChatResponse{toolCallResponse("pull_credit_report")},
	}
	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, events := collectEvents()

	_, err := orch.Run(context.Background(), "system", nil, "hello", emitter)
	require.NoError(t, err)

	assert.Equal(t, 5, provider.calls, "exactly MaxLoops round-trips")
	assert.Equal(t, 5, tool.runs)

	executing := 0
	for _, e := range *events {
		if e.Type == EventStatus && e.Message == "Executing: pull_credit_report" {
			executing++
		}
	}
	assert.LessOrEqual(t, executing, 5)
}

func TestOrchestrator_ToolFailureIsNonFatal(t *testing.T) {
	registry := tools.NewRegistry()
	tool := &countingTool{name: "search_web", err: errors.New("search backend down")}
	registry.Register(tool)

	provider := &scriptedProvider{
		responses: []*ai.ChatResponse{
			toolCallResponse("search_web"),
			{Text: "I could not reach the search service."},
		},
	}
	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, _ := collectEvents()

	text, err := orch.Run(context.Background(), "system", nil, "hello", emitter)
	require.NoError(t, err)
	assert.Equal(t, "I could not reach the search service.", text)
	assert.Equal(t, 1, tool.runs)

	// The failure went back to the model as a normal tool response.
	second := provider.requests[1]
	last := second.Messages[len(second.Messages)-1]
	assert.Equal(t, ai.RoleTool, last.Role)
	assert.Equal(t, "search backend down", last.ToolResult["error"])
}

func TestOrchestrator_SingleResponsePerToolCall(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&countingTool{name: "score_deal"})

	provider := &scriptedProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{
				{ID: "call_1", Name: "score_deal", Arguments: map[string]interface{}{}},
				{ID: "call_2", Name: "score_deal", Arguments: map[string]interface{}{}},
			}},
			{Text: "done"},
		},
	}
	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, _ := collectEvents()

	_, err := orch.Run(context.Background(), "system", nil, "hello", emitter)
	require.NoError(t, err)

	toolMessages := 0
	for _, msg := range provider.requests[1].Messages {
		if msg.Role == ai.RoleTool {
			toolMessages++
		}
	}
	assert.Equal(t, 2, toolMessages, "one response per tool call")
}

func TestOrchestrator_LLMTimeoutIsFatal(t *testing.T) {
	registry := tools.NewRegistry()
	provider := &scriptedProvider{err: errors.ErrLLMTimeout}

	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, _ := collectEvents()

	_, err := orch.Run(context.Background(), "system", nil, "hello", emitter)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLLMTimeout))
}

func TestOrchestrator_RecoversHallucinatedCall(t *testing.T) {
	registry := tools.NewRegistry()
	tool := &countingTool{name: "pull_credit_report", value: map[string]interface{}{"score": 712}}
	registry.Register(tool)

	provider := &scriptedProvider{
		responses: []*ai.ChatResponse{
			{Text: `{"name": "pull_credit_report", "args": {"full_name": "Jane Doe"}}`},
			{Text: "Your credit pull came back at 712."},
		},
	}
	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, _ := collectEvents()

	text, err := orch.Run(context.Background(), "system", nil, "pull my credit", emitter)
	require.NoError(t, err)
	assert.Equal(t, "Your credit pull came back at 712.", text)
	assert.Equal(t, 1, tool.runs, "described call executed anyway")
	assert.Equal(t, 2, provider.calls, "model re-prompted once with the result")
}

func TestOrchestrator_ToolHintOnImperativeInput(t *testing.T) {
	registry := tools.NewRegistry()
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{Text: "ok"}}}

	orch := New(provider, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	emitter, _ := collectEvents()

	_, err := orch.Run(context.Background(), "persona", nil, "pull my credit report", emitter)
	require.NoError(t, err)
	assert.Contains(t, provider.requests[0].SystemPrompt, "Use one of your tools")

	provider2 := &scriptedProvider{responses: []*ai.ChatResponse{{Text: "ok"}}}
	orch2 := New(provider2, registry, Options{MaxLoops: 5, CallTimeout: time.Second})
	_, err = orch2.Run(context.Background(), "persona", nil, "what rates do you offer?", emitter)
	require.NoError(t, err)
	assert.NotContains(t, provider2.requests[0].SystemPrompt, "Use one of your tools")
}

func TestEmitter_ProgressNeverDecreases(t *testing.T) {
	emitter, events := collectEvents()

	emitter.Status("a", 10)
	emitter.Status("b", 40)
	emitter.Status("c", 25)
	emitter.Status("d", 140)

	var seen []int
	for _, e := range *events {
		seen = append(seen, e.Progress)
	}
	assert.Equal(t, []int{10, 40, 40, 100}, seen)
}
