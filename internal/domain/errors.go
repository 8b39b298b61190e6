package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for deployment workflow steps
var (
	// ErrNoSignerAvailable is returned when no signing account is configured
	ErrNoSignerAvailable = errors.New("no signer available")

	// ErrArtifactNotFound is returned when an artifact name can't be resolved to a deployable factory
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrSubmission is returned when the deployment transaction can't be submitted
	ErrSubmission = errors.New("deployment submission failed")

	// ErrConfirmation is returned when the deployment transaction fails or is never confirmed
	ErrConfirmation = errors.New("deployment confirmation failed")

	// ErrReadCall is returned when a read-only verification call fails
	ErrReadCall = errors.New("read call failed")

	// ErrNoCode is returned when there is no contract code at an address
	ErrNoCode = errors.New("no contract code at address")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")
)

// StepError records which workflow step failed and why.
// errors.Is matches both the step kind and the underlying cause.
type StepError struct {
	Kind error
	Call string // read-only method name, set for ErrReadCall
	Err  error
}

func (e *StepError) Error() string {
	msg := e.Kind.Error()
	if e.Call != "" {
		msg = fmt.Sprintf("%s: %s()", msg, e.Call)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewStepError wraps err as a failure of the given step kind
func NewStepError(kind error, err error) *StepError {
	return &StepError{Kind: kind, Err: err}
}

// NewReadCallError wraps err as a failure of the named read-only call
func NewReadCallError(call string, err error) *StepError {
	return &StepError{Kind: ErrReadCall, Call: call, Err: err}
}

// AmbiguousArtifactErr is returned when a bare contract name matches several artifacts
type AmbiguousArtifactErr struct {
	Name    string
	Matches []string // fully qualified names, "source:Contract"
}

func (e AmbiguousArtifactErr) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)

	var suggestions []string
	for _, match := range sorted {
		suggestions = append(suggestions, "  - "+match)
	}

	return fmt.Sprintf("multiple artifacts found matching %q - use source:Contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
