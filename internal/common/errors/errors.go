// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidQuestionInput  ErrorCode = "INVALID_QUESTION_INPUT"
	ErrCodeInvalidSynthesisInput ErrorCode = "INVALID_SYNTHESIS_INPUT"

	ErrCodeGenAITransportFailed        ErrorCode = "GENAI_TRANSPORT_FAILED"
	ErrCodeGenAIValidationFailed       ErrorCode = "GENAI_VALIDATION_FAILED"
	ErrCodeTranslationDeadlineExceeded ErrorCode = "TRANSLATION_DEADLINE_EXCEEDED"

	ErrCodeVocabularyInvalid    ErrorCode = "VOCABULARY_INVALID"
	ErrCodeAnalyticsWriteFailed ErrorCode = "ANALYTICS_WRITE_FAILED"
	ErrCodeJobCompletionFailed  ErrorCode = "JOB_COMPLETION_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQuestionInputError is raised when job variables fail schema validation.
func NewInvalidQuestionInputError(details string) *StandardError {
	return newError(ErrCodeInvalidQuestionInput, "Question input is invalid", details, false)
}

func NewInvalidSynthesisInputError(details string) *StandardError {
	return newError(ErrCodeInvalidSynthesisInput, "Synthesis input is invalid", details, false)
}

func NewVocabularyInvalidError(err error) *StandardError {
	return newError(ErrCodeVocabularyInvalid, "Vocabulary could not be loaded", err.Error(), false)
}

// NewAnalyticsWriteFailedError is logged, never thrown: analytics must not
// fail a translation.
func NewAnalyticsWriteFailedError(err error) *StandardError {
	return newError(ErrCodeAnalyticsWriteFailed, "Failed to record translation analytics", err.Error(), true)
}

func NewJobCompletionFailedError(err error) *StandardError {
	return newError(ErrCodeJobCompletionFailed, "Failed to complete job", err.Error(), true)
}

// ==========================
// 4. BPMN Error Mapping
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidQuestionInput:        "INVALID_QUESTION_INPUT",
	ErrCodeInvalidSynthesisInput:       "INVALID_SYNTHESIS_INPUT",
	ErrCodeGenAITransportFailed:        "GENAI_TRANSPORT_FAILED",
	ErrCodeGenAIValidationFailed:       "GENAI_VALIDATION_FAILED",
	ErrCodeTranslationDeadlineExceeded: "TRANSLATION_DEADLINE_EXCEEDED",
	ErrCodeVocabularyInvalid:           "VOCABULARY_INVALID",
	ErrCodeAnalyticsWriteFailed:        "ANALYTICS_WRITE_FAILED",
	ErrCodeJobCompletionFailed:         "JOB_COMPLETION_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeJobCompletionFailed,
		ErrCodeAnalyticsWriteFailed:
		return 3

	case ErrCodeGenAITransportFailed,
		ErrCodeTranslationDeadlineExceeded:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// FallbackErrorCode names the recovered failure behind a deterministic
// fallback so a process can branch on it. Reasons that are not failures
// map to "".
func FallbackErrorCode(reason string) ErrorCode {
	switch reason {
	case "retries_exhausted":
		return ErrCodeGenAITransportFailed
	case "validation":
		return ErrCodeGenAIValidationFailed
	case "deadline":
		return ErrCodeTranslationDeadlineExceeded
	default:
		return ""
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "GENAI") || strings.HasPrefix(codeStr, "TRANSLATION"):
		return "AI"
	case strings.Contains(codeStr, "VOCABULARY"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "ANALYTICS"):
		return "ANALYTICS"
	case strings.Contains(codeStr, "JOB"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
