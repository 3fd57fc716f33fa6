package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"fundline/pkg/errors"
)

// Ensure GeminiProvider implements ChatProvider
var _ ChatProvider = (*GeminiProvider)(nil)

// GeminiProvider backs the chat contract with the Gemini API via the
// official genai SDK.
type GeminiProvider struct {
	client      *genai.Client
	timeout     time.Duration
	rateLimiter *Limiter
}

// NewGeminiProvider creates a Gemini-backed chat provider.
func NewGeminiProvider(ctx context.Context, apiKey string, timeout time.Duration, requestsPerMinute int) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}

	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &GeminiProvider{
		client:      client,
		timeout:     timeout,
		rateLimiter: NewLimiter("gemini", requestsPerMinute),
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string { return "gemini" }

// SupportsTools indicates tool calling support.
func (p *GeminiProvider) SupportsTools() bool { return true }

// Chat sends one completion round-trip to Gemini.
func (p *GeminiProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if len(req.Tools) > 0 {
		declarations := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			declarations = append(declarations, &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toGenaiSchema(tool.Parameters),
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	}

	result, err := p.client.Models.GenerateContent(ctx, req.Model, toGenaiContents(req.Messages), config)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrLLMTimeout, "gemini call")
		}
		return nil, errors.Wrap(err, "gemini generate content")
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, errors.Wrap(errors.ErrLLMUnavailable, "gemini returned no candidates")
	}

	resp := &ChatResponse{}
	callCount := 0
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			resp.Text += part.Text
		}
		if part.FunctionCall != nil {
			callCount++
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				ID:        callID(callCount),
				Name:      part.FunctionCall.Name,
				Arguments: part.FunctionCall.Args,
			})
		}
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

// toGenaiContents converts neutral messages to genai content.
func toGenaiContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		content := &genai.Content{Role: genaiRole(msg.Role)}

		if msg.Content != "" {
			content.Parts = append(content.Parts, &genai.Part{Text: msg.Content})
		}
		for _, tc := range msg.ToolCalls {
			content.Parts = append(content.Parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: tc.Name,
					Args: tc.Arguments,
				},
			})
		}
		if msg.Role == RoleTool {
			content.Parts = append(content.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     msg.ToolName,
					Response: msg.ToolResult,
				},
			})
		}

		contents = append(contents, content)
	}

	return contents
}

func genaiRole(role MessageRole) string {
	switch role {
	case RoleAssistant:
		return genai.RoleModel
	case RoleTool:
		return "tool"
	default:
		return genai.RoleUser
	}
}

// toGenaiSchema converts the JSON-schema parameter map used by the tool
// registry into the SDK's typed schema. Only the subset tools actually
// declare is handled: object/string/number/integer/boolean/array with
// properties, items, enum, description and required.
func toGenaiSchema(schema map[string]interface{}) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{}

	if t, ok := schema["type"].(string); ok {
		out.Type = genaiType(t)
	}
	if desc, ok := schema["description"].(string); ok {
		out.Description = desc
	}
	if enum, ok := schema["enum"].([]string); ok {
		out.Enum = enum
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]interface{}); ok {
				out.Properties[name] = toGenaiSchema(sub)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		out.Items = toGenaiSchema(items)
	}
	if required, ok := schema["required"].([]string); ok {
		out.Required = required
	}

	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
