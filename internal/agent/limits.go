package agent

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const (
	DefaultMaxRounds = 10

	FallbackResponse = "I apologize, but I encountered an issue processing your request."
)

type turnState string

const (
	stateAwaitingModel  turnState = "awaiting_model_response"
	stateToolCalls      turnState = "model_replied_with_tool_calls"
	stateExecutingTools turnState = "executing_tools"
	stateFinalText      turnState = "model_replied_with_final_text"
	stateDone           turnState = "done"
)

const (
	outcomeAnswered      = "answered"
	outcomeRoundsCeiling = "rounds_exhausted"
	outcomeModelError    = "model_error"
	outcomeStoreError    = "store_error"
)

// normalizeMaxRounds returns a sane default when the provided value is invalid.
func normalizeMaxRounds(n int) int {
	if n <= 0 {
		return DefaultMaxRounds
	}
	return n
}

// normalizeToolCalls fills in tool-call IDs some providers omit. seq carries across
// rounds of the same turn so synthesised IDs stay unique.
func normalizeToolCalls(msg *schema.Message, seq *int) {
	if msg == nil {
		return
	}
	for i := range msg.ToolCalls {
		if strings.TrimSpace(msg.ToolCalls[i].ID) == "" {
			*seq++
			msg.ToolCalls[i].ID = fmt.Sprintf("call_%d", *seq)
		}
		if msg.ToolCalls[i].Type == "" {
			msg.ToolCalls[i].Type = "function"
		}
	}
}

// lastAssistantText returns the newest non-empty assistant content, looking back
// through loaded history as well as this turn.
func lastAssistantText(msgs []*schema.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m != nil && m.Role == schema.Assistant && strings.TrimSpace(m.Content) != "" {
			return m.Content
		}
	}
	return ""
}

// fallbackText picks the reply when the model never produced a usable final answer.
func fallbackText(lastAssistant string) string {
	if strings.TrimSpace(lastAssistant) != "" {
		return lastAssistant
	}
	return FallbackResponse
}
