package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fundline/internal/adapters/ai"
	"fundline/internal/metrics"
	"fundline/internal/tools"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

const (
	// DefaultMaxLoops caps LLM round-trips per request.
	DefaultMaxLoops = 5
	// DefaultCallTimeout bounds a single LLM call. A timeout is fatal
	// for the request; tool failures are not.
	DefaultCallTimeout = 60 * time.Second
)

// Orchestrator drives a chat model through tool-call/execute/respond
// cycles until the model stops requesting tools or the loop cap hits.
type Orchestrator struct {
	provider    ai.ChatProvider
	registry    *tools.Registry
	model       string
	maxLoops    int
	callTimeout time.Duration
	log         *logger.Logger
}

// Options tunes a new orchestrator.
type Options struct {
	Model       string
	MaxLoops    int
	CallTimeout time.Duration
}

// New creates an orchestrator over a provider and tool registry.
func New(provider ai.ChatProvider, registry *tools.Registry, opts Options) *Orchestrator {
	if opts.MaxLoops <= 0 {
		opts.MaxLoops = DefaultMaxLoops
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	return &Orchestrator{
		provider:    provider,
		registry:    registry,
		model:       opts.Model,
		maxLoops:    opts.MaxLoops,
		callTimeout: opts.CallTimeout,
		log:         logger.Get().With("component", "orchestrator", "provider", provider.Name()),
	}
}

// Run executes the tool loop for one user message and returns the
// post-processed final text. Status events stream through the emitter;
// the caller emits the terminal result or error event.
func (o *Orchestrator) Run(ctx context.Context, systemPrompt string, history []ai.Message, userMessage string, emitter *Emitter) (string, error) {
	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, history...)
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: userMessage})

	if wantsToolHint(userMessage) {
		systemPrompt += "\n\nThe user asked for an action. Use one of your tools to perform it instead of describing what you would do."
	}

	defs := o.registry.Definitions()
	finalText := ""

	for loop := 0; loop < o.maxLoops; loop++ {
		emitter.Status("Thinking...", 10+loop*15)

		resp, err := o.chat(ctx, ai.ChatRequest{
			Model:        o.model,
			SystemPrompt: systemPrompt,
			Messages:     messages,
			Tools:        defs,
		})
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 {
			finalText = resp.Text
			break
		}
		finalText = resp.Text

		messages = append(messages, ai.Message{
			Role:      ai.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		// Serial execution so per-tool status events stream in call order.
		for _, call := range resp.ToolCalls {
			emitter.Status(fmt.Sprintf("Executing: %s", call.Name), 10+loop*15)
			messages = append(messages, o.executeCall(ctx, call))
		}
	}

	recovered, err := o.recoverHallucinatedCall(ctx, systemPrompt, messages, finalText, emitter)
	if err == nil && recovered != "" {
		finalText = recovered
	}

	return ExtractMessage(finalText), nil
}

// executeCall runs one tool and packages its outcome as a tool message.
// Execution errors become a non-fatal {error: message} response so the
// model can adapt.
func (o *Orchestrator) executeCall(ctx context.Context, call ai.ToolCall) ai.Message {
	result := o.runTool(ctx, call.Name, call.Arguments)
	return ai.Message{
		Role:       ai.RoleTool,
		ToolName:   call.Name,
		ToolCallID: call.ID,
		ToolResult: result,
	}
}

func (o *Orchestrator) runTool(ctx context.Context, name string, args map[string]interface{}) map[string]interface{} {
	tool, ok := o.registry.Get(name)
	if !ok {
		o.log.Warnw("model requested unknown tool", "tool", name)
		return map[string]interface{}{"error": fmt.Sprintf("unknown tool: %s", name)}
	}

	started := time.Now()
	result, err := tool.Execute(ctx, args)
	metrics.RecordToolExecution(name, time.Since(started), err)
	if err != nil {
		o.log.Warnw("tool execution failed", "tool", name, "error", err)
		return map[string]interface{}{"error": err.Error()}
	}
	if result == nil {
		result = map[string]interface{}{}
	}
	return result
}

// recoverHallucinatedCall handles the failure mode where the model
// describes a tool call as JSON text instead of issuing one. The named
// tool is executed anyway and the model re-prompted with the result
// framed as an already-completed action. Best effort; any failure
// leaves the original text in place.
func (o *Orchestrator) recoverHallucinatedCall(ctx context.Context, systemPrompt string, messages []ai.Message, finalText string, emitter *Emitter) (string, error) {
	c := Classify(finalText, o.registry)
	if c.Kind != StructuredToolCall {
		return "", nil
	}

	o.log.Infow("recovering hallucinated tool call", "tool", c.ToolName)
	emitter.Status(fmt.Sprintf("Executing: %s", c.ToolName), 90)

	result := o.runTool(ctx, c.ToolName, c.ToolArgs)

	messages = append(messages,
		ai.Message{Role: ai.RoleAssistant, Content: finalText},
		ai.Message{
			Role:    ai.RoleUser,
			Content: fmt.Sprintf("The %s action you described has already been performed. Result: %s. Summarize the outcome for the user in plain language.", c.ToolName, renderResult(result)),
		},
	)

	resp, err := o.chat(ctx, ai.ChatRequest{
		Model:        o.model,
		SystemPrompt: systemPrompt,
		Messages:     messages,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// chat races one LLM call against the per-call timeout. A timeout is
// fatal for the whole request.
func (o *Orchestrator) chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	started := time.Now()
	resp, err := o.provider.Chat(callCtx, req)
	var in, out int
	if resp != nil {
		in, out = resp.Usage.PromptTokens, resp.Usage.CompletionTokens
	}
	metrics.RecordLLMCall(o.provider.Name(), req.Model, time.Since(started), in, out, err)
	if err != nil {
		if errors.Is(err, errors.ErrLLMTimeout) || callCtx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrLLMTimeout, "chat call")
		}
		return nil, errors.Wrap(err, "chat call")
	}
	return resp, nil
}

func renderResult(result map[string]interface{}) string {
	keys := make([]string, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, result[key]))
	}
	return strings.Join(parts, ", ")
}

// actionVerbs trigger the use-a-tool system hint when they open the
// user's message.
var actionVerbs = []string{
	"pull", "run", "check", "search", "look up", "lookup", "save",
	"score", "find", "fetch", "get",
}

func wantsToolHint(message string) bool {
	lowered := strings.ToLower(strings.TrimSpace(message))
	for _, verb := range actionVerbs {
		if strings.HasPrefix(lowered, verb+" ") {
			return true
		}
	}
	return false
}
