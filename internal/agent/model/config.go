package model

// ================ Config ================
type ConversationConfig struct {
	// Store selects the thread repository: "memory" or "redis".
	Store string `envconfig:"CONVERSATION_STORE" default:"memory"`
	// TTL only applies to the redis store. Empty or "0" keeps threads forever.
	TTL         string `envconfig:"CONVERSATION_TTL" default:"0"`
	MaxMessages int    `envconfig:"CONVERSATION_MAX_MESSAGES" default:"20"`
	Tools       struct {
		MaxRounds      int `envconfig:"CONVERSATION_TOOL_MAX_ROUNDS" default:"10"`
		ResultMaxChars int `envconfig:"CONVERSATION_TOOL_RESULT_MAX_CHARS" default:"5000"`
	}
}

type ChatModelConfig struct {
	Model       string  `envconfig:"CHAT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"CHAT_MAX_TOKENS" default:"1000"`
	Temperature float32 `envconfig:"CHAT_TEMPERATURE" default:"0.7"`
}

type PromptConfig struct {
	ServiceName string `envconfig:"PROMPT_SERVICE_NAME" default:"DaNomNoms"`
}
