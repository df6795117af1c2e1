package llm

import "errors"

var (
	// ErrUnavailable indicates the LLM endpoint is unreachable.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrAuth indicates the endpoint rejected the API key.
	ErrAuth = errors.New("llm endpoint rejected credentials")

	// ErrQuota indicates the endpoint rate-limited or exhausted the quota.
	ErrQuota = errors.New("llm quota exceeded")

	// ErrInvalidOutput indicates the LLM response could not be decoded or
	// carried no completion.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
