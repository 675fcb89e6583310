// Package llm wraps the chat-completion APIs used for banner analysis and
// copy generation behind a small Provider interface.
//
// OpenAIProvider uses github.com/sashabaranov/go-openai and accepts a base URL
// so OpenAI-compatible gateways can be targeted. AnthropicProvider uses the
// official Anthropic Go SDK. New picks one from config.LLMConfig.
package llm
