package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/tailor/internal/model"
)

// DefaultTimeout bounds every provider call unless overridden.
const DefaultTimeout = 12 * time.Second

// ProviderKind is the provider selected for a single call.
type ProviderKind int

const (
	ProviderNone ProviderKind = iota
	ProviderOpenAI
	ProviderAnthropic
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	default:
		return "none"
	}
}

// SelectProvider picks the provider for creds in fixed priority order: OpenAI
// wins whenever its key is populated, then Anthropic. The order is
// deterministic and does not depend on user preference.
func SelectProvider(creds model.Credentials) ProviderKind {
	switch {
	case creds.OpenAI != "":
		return ProviderOpenAI
	case creds.Anthropic != "":
		return ProviderAnthropic
	default:
		return ProviderNone
	}
}

// ProviderSettings configures one provider binding.
type ProviderSettings struct {
	BaseURL   string
	Model     string
	MaxTokens int
	Version   string // anthropic-version header; unused by OpenAI
}

// Clock schedules the per-call timeout. Tests substitute a controllable clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be released before it fires.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Adapter is the single entry point for LLM completions. Each call selects one
// provider from the supplied credentials and is bounded by a timeout.
type Adapter struct {
	openai     ProviderSettings
	anthropic  ProviderSettings
	httpClient *http.Client
	timeout    time.Duration
	clock      Clock
	logger     *slog.Logger
}

// AdapterOption customizes an Adapter.
type AdapterOption func(*Adapter)

// WithClock replaces the clock used for call timeouts.
func WithClock(c Clock) AdapterOption {
	return func(a *Adapter) { a.clock = c }
}

// WithDefaultTimeout sets the timeout applied when a call does not override it.
func WithDefaultTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.timeout = d }
}

// NewAdapter creates an adapter for the two supported providers.
func NewAdapter(openai, anthropic ProviderSettings, httpClient *http.Client, logger *slog.Logger, opts ...AdapterOption) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Adapter{
		openai:     openai,
		anthropic:  anthropic,
		httpClient: httpClient,
		timeout:    DefaultTimeout,
		clock:      realClock{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type callOptions struct {
	timeout time.Duration
}

// CallOption customizes a single RequestCompletion call.
type CallOption func(*callOptions)

// WithTimeout overrides the adapter timeout for one call.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

var errCallTimeout = errors.New("call timer expired")

// RequestCompletion sends prompt to the selected provider and returns the
// extracted reply text. Failures are ErrNoProviderConfigured, ErrTimeout, a
// *model.ProviderError, or an unclassified error when the provider's success
// body does not have the documented shape.
func (a *Adapter) RequestCompletion(ctx context.Context, prompt string, creds model.Credentials, opts ...CallOption) (string, error) {
	o := callOptions{timeout: a.timeout}
	for _, opt := range opts {
		opt(&o)
	}

	kind := SelectProvider(creds)
	provider := a.provider(kind, creds)
	if provider == nil {
		return "", model.ErrNoProviderConfigured
	}

	callCtx, cancel := context.WithCancelCause(ctx)
	timer := a.clock.AfterFunc(o.timeout, func() { cancel(errCallTimeout) })
	defer func() {
		timer.Stop()
		cancel(nil)
	}()

	requestID := uuid.NewString()
	start := time.Now()
	a.logger.Debug("llm request", "provider", kind, "request_id", requestID, "timeout", o.timeout)

	text, err := provider.Complete(callCtx, prompt)
	if err != nil {
		if errors.Is(context.Cause(callCtx), errCallTimeout) {
			err = fmt.Errorf("%s after %s: %w", kind, o.timeout, model.ErrTimeout)
		} else if ctx.Err() != nil {
			err = ctx.Err()
		}
		a.logger.Warn("llm request failed", "provider", kind, "request_id", requestID, "elapsed", time.Since(start), "error", err)
		return "", err
	}

	a.logger.Debug("llm response", "provider", kind, "request_id", requestID, "elapsed", time.Since(start), "chars", len(text))
	return text, nil
}

func (a *Adapter) provider(kind ProviderKind, creds model.Credentials) LLMProvider {
	switch kind {
	case ProviderOpenAI:
		s := a.openai
		return NewOpenAIProvider(s.BaseURL, creds.OpenAI, s.Model, s.MaxTokens, a.httpClient)
	case ProviderAnthropic:
		s := a.anthropic
		return NewAnthropicProvider(s.BaseURL, creds.Anthropic, s.Model, s.Version, s.MaxTokens, a.httpClient)
	default:
		return nil
	}
}
