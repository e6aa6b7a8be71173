package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports failed jobs back to the broker.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Action is what the broker is told to do with a failed job.
type Action string

const (
	ActionFail  Action = "fail"
	ActionThrow Action = "throw"
)

// Resolution is the decision taken for a failed job.
type Resolution struct {
	Action   Action
	Retries  int32
	Standard *StandardError
	BPMN     *BPMNError
}

// Resolve decides between failing the job with retries and throwing a BPMN
// error. Retries never exceed what the job has left.
func Resolve(err error, jobRetries int32) Resolution {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	retries := int32(bpmnErr.Retries)
	if jobRetries > 0 && jobRetries < retries {
		retries = jobRetries
	}
	if !stdErr.Retryable || retries <= 0 || jobRetries <= 0 {
		return Resolution{Action: ActionThrow, Standard: stdErr, BPMN: bpmnErr}
	}
	return Resolution{Action: ActionFail, Retries: retries, Standard: stdErr, BPMN: bpmnErr}
}

// Normalize unwraps a StandardError from err, or wraps err as INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HandleJobError resolves err and sends the matching command.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Resolution {
	res := Resolve(err, job.GetRetries())
	h.logError(job, res)

	vars := res.BPMN.ToErrorVariables()
	switch res.Action {
	case ActionFail:
		cmd := client.NewFailJobCommand().
			JobKey(job.GetKey()).
			Retries(res.Retries).
			ErrorMessage(fmt.Sprintf("[%s] %s", res.BPMN.Code, res.BPMN.Message))
		withVars, varErr := cmd.VariablesFromMap(vars)
		if varErr != nil {
			_, _ = cmd.Send(ctx)
			return res
		}
		_, _ = withVars.Send(ctx)
	default:
		cmd := client.NewThrowErrorCommand().
			JobKey(job.GetKey()).
			ErrorCode(res.BPMN.Code).
			ErrorMessage(res.BPMN.Message)
		payload, _ := json.Marshal(vars)
		withVars, varErr := cmd.VariablesFromString(string(payload))
		if varErr != nil {
			_, _ = cmd.Send(ctx)
			return res
		}
		_, _ = withVars.Send(ctx)
	}
	return res
}

func (h *ErrorHandler) logError(job entities.Job, res Resolution) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"jobType":            job.GetType(),
		"errorCode":          string(res.Standard.Code),
		"bpmnErrorCode":      res.BPMN.Code,
		"message":            res.BPMN.Message,
		"details":            res.Standard.Details,
		"action":             string(res.Action),
		"retries":            res.Retries,
		"errorCategory":      GetErrorCategory(res.Standard.Code),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})
}
