package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      string
		retries   int
		retryable bool
	}{
		{"invalid question", NewInvalidQuestionInputError("question: required"), "INVALID_QUESTION_INPUT", 0, false},
		{"invalid synthesis", NewInvalidSynthesisInputError("domain: bad"), "INVALID_SYNTHESIS_INPUT", 0, false},
		{"vocabulary", NewVocabularyInvalidError(stderrors.New("empty table")), "VOCABULARY_INVALID", 0, false},
		{"analytics", NewAnalyticsWriteFailedError(stderrors.New("conn refused")), "ANALYTICS_WRITE_FAILED", 3, true},
		{"completion", NewJobCompletionFailedError(stderrors.New("gateway down")), "JOB_COMPLETION_FAILED", 3, true},
		{"unmapped code", &StandardError{Code: "SOMETHING_ELSE", Message: "x"}, "SOMETHING_ELSE", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.code, bpmn.Code)
			assert.Equal(t, tt.retries, bpmn.Retries)
			assert.Equal(t, tt.retryable, bpmn.Retryable)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.code, vars["errorCode"])
			assert.Contains(t, vars, "timestamp")
		})
	}
}

func TestFallbackErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeGenAITransportFailed, FallbackErrorCode("retries_exhausted"))
	assert.Equal(t, ErrCodeGenAIValidationFailed, FallbackErrorCode("validation"))
	assert.Equal(t, ErrCodeTranslationDeadlineExceeded, FallbackErrorCode("deadline"))
	assert.Equal(t, ErrorCode(""), FallbackErrorCode("ai_disabled"))
	assert.Equal(t, ErrorCode(""), FallbackErrorCode(""))
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeGenAITransportFailed:        "AI",
		ErrCodeGenAIValidationFailed:       "AI",
		ErrCodeTranslationDeadlineExceeded: "AI",
		ErrCodeVocabularyInvalid:           "CONFIGURATION",
		ErrCodeAnalyticsWriteFailed:        "ANALYTICS",
		ErrCodeJobCompletionFailed:         "WORKFLOW",
		ErrCodeInvalidQuestionInput:        "VALIDATION",
		ErrCodeInvalidSynthesisInput:       "VALIDATION",
		ErrCodeInternal:                    "OTHER",
	}
	for code, category := range tests {
		assert.Equal(t, category, GetErrorCategory(code), string(code))
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeJobCompletionFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodeGenAITransportFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidQuestionInput))
	assert.False(t, IsRetryableErrorCode(ErrCodeInternal))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		jobRetries int32
		action     Action
		retries    int32
		code       string
	}{
		{"business error throws", NewInvalidQuestionInputError("missing"), 3, ActionThrow, 0, "INVALID_QUESTION_INPUT"},
		{"retryable fails with retries", NewJobCompletionFailedError(stderrors.New("x")), 5, ActionFail, 3, "JOB_COMPLETION_FAILED"},
		{"retries capped by job", NewJobCompletionFailedError(stderrors.New("x")), 2, ActionFail, 2, "JOB_COMPLETION_FAILED"},
		{"no retries left throws", NewJobCompletionFailedError(stderrors.New("x")), 0, ActionThrow, 0, "JOB_COMPLETION_FAILED"},
		{"plain error is internal", stderrors.New("boom"), 3, ActionThrow, 0, "INTERNAL_ERROR"},
		{"wrapped standard error", fmt.Errorf("parse: %w", NewInvalidSynthesisInputError("bad")), 3, ActionThrow, 0, "INVALID_SYNTHESIS_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.err, tt.jobRetries)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.retries, res.Retries)
			require.NotNil(t, res.BPMN)
			assert.Equal(t, tt.code, res.BPMN.Code)
		})
	}
}

func TestNormalize(t *testing.T) {
	std := NewInvalidQuestionInputError("q")
	assert.Same(t, std, Normalize(std))

	internal := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, internal.Code)
	assert.Equal(t, "boom", internal.Details)
	assert.False(t, internal.Retryable)

	assert.Equal(t, "", Normalize(nil).Details)
}
