// Package agent runs the tool-calling conversation loop behind the chat endpoint.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/conversations"
	"github.com/danomnoms/server/internal/agent/model"
	"github.com/danomnoms/server/internal/agent/prompts"
	"github.com/danomnoms/server/internal/core"
	errx "github.com/danomnoms/server/internal/core/error"
	"github.com/danomnoms/server/internal/core/validate"
	"github.com/danomnoms/server/internal/metrics"
	logx "github.com/danomnoms/server/pkg/logger"
)

// ChatModel is the slice of an Eino chat model the loop needs. Tools are bound up front.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// ToolExecutor runs one tool call and returns the tool message content.
type ToolExecutor interface {
	Execute(ctx context.Context, name, arguments string) string
}

type Config struct {
	ChatModel     ChatModel
	ModelName     string
	Tools         ToolExecutor
	Conversations *conversations.Manager
	Prompt        model.PromptConfig
	MaxRounds     int
	Callbacks     []callbacks.Handler
}

type Agent struct {
	chatModel     ChatModel
	modelName     string
	tools         ToolExecutor
	conversations *conversations.Manager
	prompt        model.PromptConfig
	maxRounds     int
	handlers      []callbacks.Handler
}

func New(config Config) (*Agent, error) {
	if config.ChatModel == nil {
		return nil, errors.New("chat model is nil")
	}
	if config.Tools == nil {
		return nil, errors.New("tool executor is nil")
	}
	if config.Conversations == nil {
		return nil, errors.New("conversation manager is nil")
	}
	return &Agent{
		chatModel:     config.ChatModel,
		modelName:     config.ModelName,
		tools:         config.Tools,
		conversations: config.Conversations,
		prompt:        config.Prompt,
		maxRounds:     normalizeMaxRounds(config.MaxRounds),
		handlers:      config.Callbacks,
	}, nil
}

// Chat runs one user turn. A blank thread id starts a new thread. Turns on the same
// thread are serialised; the updated history is saved only when the model did not fail.
func (a *Agent) Chat(ctx context.Context, in model.ChatInput) (*model.ChatOutput, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	threadID := strings.TrimSpace(in.ThreadID)
	if threadID == "" {
		threadID = core.NewShortID("thread_")
	}

	unlock := a.conversations.Lock(threadID)
	defer unlock()

	history, err := a.conversations.LoadWindow(ctx, threadID)
	if err != nil {
		metrics.RecordTurn(outcomeStoreError, 0)
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to load thread")
		return nil, err
	}

	if len(a.handlers) > 0 {
		ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
			Name:      "danomnoms_agent",
			Type:      "Agent",
			Component: components.Component("Agent"),
		}, a.handlers...)
	}

	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, history...)
	msgs = append(msgs, schema.UserMessage(in.Prompt))
	if len(msgs) == 1 {
		pctx := callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
			Name:      "system_prompt",
			Type:      "GoTemplate",
			Component: components.ComponentOfPrompt,
		})
		sys, err := prompts.RenderSystem(pctx, a.prompt)
		if err != nil {
			metrics.RecordTurn(outcomeModelError, 0)
			return nil, errx.Unexpected(err, fmt.Sprintf("Unexpected error: %v", err))
		}
		msgs = append([]*schema.Message{schema.SystemMessage(sys)}, msgs...)
	}

	res, err := a.run(ctx, threadID, msgs)
	if err != nil {
		metrics.RecordTurn(outcomeModelError, res.rounds)
		return nil, err
	}

	if err := a.conversations.SaveTurn(ctx, threadID, res.messages); err != nil {
		metrics.RecordTurn(outcomeStoreError, res.rounds)
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to save thread")
		return nil, err
	}
	metrics.RecordTurn(res.outcome, res.rounds)

	return &model.ChatOutput{Response: res.response, ThreadID: threadID}, nil
}

type turnResult struct {
	response string
	rounds   int
	outcome  string
	messages []*schema.Message
}

// run drives the model/tool rounds until a final answer or the round ceiling.
func (a *Agent) run(ctx context.Context, threadID string, msgs []*schema.Message) (turnResult, error) {
	var (
		callSeq int
		state   = stateAwaitingModel
	)
	mctx := callbacks.ReuseHandlers(ctx, &callbacks.RunInfo{
		Name:      a.modelName,
		Type:      "Gemini",
		Component: components.ComponentOfChatModel,
	})

	for round := 1; round <= a.maxRounds; round++ {
		logx.Debug().Str("thread_id", threadID).Int("round", round).Str("state", string(state)).Msg("calling model")
		out, err := a.chatModel.Generate(mctx, msgs)
		if err != nil {
			logx.Error().Err(err).Str("thread_id", threadID).Int("round", round).Msg("model call failed")
			return turnResult{rounds: round, outcome: outcomeModelError, messages: msgs}, errx.Upstream(err, http.StatusInternalServerError,
				fmt.Sprintf("Error communicating with the language model: %v", err))
		}
		if out == nil {
			out = schema.AssistantMessage("", nil)
		}
		a.logUsage(threadID, out)

		normalizeToolCalls(out, &callSeq)
		msgs = append(msgs, out)

		if len(out.ToolCalls) == 0 {
			state = stateFinalText
			logx.Debug().Str("thread_id", threadID).Int("round", round).Str("state", string(state)).Msg("AI response ready")
			return turnResult{response: fallbackText(lastAssistantText(msgs)), rounds: round, outcome: outcomeAnswered, messages: msgs}, nil
		}

		state = stateToolCalls
		logx.Debug().
			Str("thread_id", threadID).
			Int("round", round).
			Int("tool_count", len(out.ToolCalls)).
			Str("state", string(state)).
			Msg("Calling tools")

		state = stateExecutingTools
		for _, tc := range out.ToolCalls {
			logx.Debug().Str("tool", tc.Function.Name).Str("tool_call_id", tc.ID).Str("state", string(state)).Msg("dispatching tool")
			content := a.tools.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
			msgs = append(msgs, &schema.Message{
				Role:       schema.Tool,
				Content:    content,
				ToolCallID: tc.ID,
				ToolName:   tc.Function.Name,
			})
		}
		state = stateAwaitingModel
	}

	state = stateDone
	logx.Warn().
		Str("thread_id", threadID).
		Int("max_rounds", a.maxRounds).
		Str("state", string(state)).
		Msg("tool round ceiling reached")
	return turnResult{response: fallbackText(lastAssistantText(msgs)), rounds: a.maxRounds, outcome: outcomeRoundsCeiling, messages: msgs}, nil
}

func (a *Agent) logUsage(threadID string, out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(a.modelName))
	logx.Info().
		Str("thread_id", threadID).
		Str("model", a.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}
