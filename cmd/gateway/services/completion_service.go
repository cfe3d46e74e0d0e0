package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"grux/cmd/gateway/clients/geminiclient"
	"grux/cmd/gateway/clients/openaiclient"
	"grux/cmd/gateway/dto"
)

// SystemInstruction is the fixed system turn establishing the assistant
// identity. It is prepended to every upstream call.
const SystemInstruction = "You are Grux, a helpful AI assistant. Provide clear, concise, and helpful responses to user questions."

// ErrorKind classifies completion failures.
type ErrorKind string

const (
	// KindMisconfigured: the upstream credential is absent. An operator
	// problem, raised before any network I/O.
	KindMisconfigured ErrorKind = "misconfigured"
	// KindNetwork: the upstream could not be reached.
	KindNetwork ErrorKind = "network"
	// KindUpstream: the upstream responded with a failure status.
	KindUpstream ErrorKind = "upstream"
	// KindEmptyResponse: the upstream succeeded but produced no usable text.
	KindEmptyResponse ErrorKind = "empty_response"
)

// ErrEmptyCompletion marks a well-formed upstream response with no text.
var ErrEmptyCompletion = errors.New("upstream returned no completion text")

// CompletionError carries the failure classification together with the HTTP
// status and wire error code the handler should answer with.
type CompletionError struct {
	Kind       ErrorKind
	StatusCode int
	ErrorCode  string
	Cause      error
}

func (e *CompletionError) Error() string {
	if e == nil {
		return "completion_failed"
	}
	return e.ErrorCode
}

func (e *CompletionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ProviderCompletion is one upstream reply in provider-neutral form.
type ProviderCompletion struct {
	Text  string
	Usage *dto.UsageDTO
}

// Provider is the upstream port of the completion service: one system turn
// and one user turn in, one reply out. A single attempt, no retries.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (ProviderCompletion, error)
}

// CompletionService translates one user turn into one upstream model call.
// It is stateless and safe for concurrent use across requests.
type CompletionService struct {
	provider Provider
}

func NewCompletionService(provider Provider) *CompletionService {
	return &CompletionService{provider: provider}
}

// Complete builds the two-turn prompt, performs the single upstream call and
// maps every failure onto the taxonomy above.
func (s *CompletionService) Complete(ctx context.Context, message string, files []dto.FileRefDTO) (dto.CompletionResponseDTO, *CompletionError) {
	userTurn := BuildUserTurn(message, files)

	completion, err := s.provider.Complete(ctx, SystemInstruction, userTurn)
	if err != nil {
		return dto.CompletionResponseDTO{}, classifyProviderError(err)
	}

	if strings.TrimSpace(completion.Text) == "" {
		return dto.CompletionResponseDTO{}, &CompletionError{
			Kind:       KindEmptyResponse,
			StatusCode: http.StatusBadGateway,
			ErrorCode:  "empty_response",
			Cause:      ErrEmptyCompletion,
		}
	}

	return dto.CompletionResponseDTO{
		Success: true,
		Message: completion.Text,
		Usage:   completion.Usage,
	}, nil
}

// BuildUserTurn renders the user turn sent upstream. Attached file names are
// appended as contextual text; with an empty message the attached-files line
// alone carries the turn. File content is never forwarded.
func BuildUserTurn(message string, files []dto.FileRefDTO) string {
	if len(files) == 0 {
		return message
	}
	refs := make([]string, len(files))
	for i, f := range files {
		refs[i] = fmt.Sprintf("File: %s", f.Name)
	}
	return fmt.Sprintf("%s\n\nAttached files: %s", message, strings.Join(refs, ", "))
}

func classifyProviderError(err error) *CompletionError {
	if errors.Is(err, openaiclient.ErrMissingAPIKey) || errors.Is(err, geminiclient.ErrMissingAPIKey) {
		return &CompletionError{
			Kind:       KindMisconfigured,
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  "not_configured",
			Cause:      err,
		}
	}

	var httpErr *openaiclient.HTTPError
	if errors.As(err, &httpErr) {
		return &CompletionError{
			Kind:       KindUpstream,
			StatusCode: http.StatusBadGateway,
			ErrorCode:  "upstream_error",
			Cause:      err,
		}
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &CompletionError{
			Kind:       KindUpstream,
			StatusCode: http.StatusBadGateway,
			ErrorCode:  "upstream_error",
			Cause:      err,
		}
	}

	return &CompletionError{
		Kind:       KindNetwork,
		StatusCode: http.StatusBadGateway,
		ErrorCode:  "upstream_unreachable",
		Cause:      err,
	}
}
