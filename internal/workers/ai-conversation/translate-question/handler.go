// internal/workers/ai-conversation/translate-question/handler.go
package translatequestion

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ecotourism-workers/internal/common/errors"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/common/metrics"
	"ecotourism-workers/internal/common/observability"
	"ecotourism-workers/internal/common/validation"
	"ecotourism-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "translate-question"

const analyticsTimeout = 2 * time.Second

// Translator is satisfied by *pipeline.Translator.
type Translator interface {
	Translate(ctx context.Context, question string) models.PipelineResult
}

// Recorder is satisfied by *analytics.Recorder.
type Recorder interface {
	Record(ctx context.Context, result models.PipelineResult) error
}

type Handler struct {
	config     *Config
	translator Translator
	recorder   Recorder
	obs        *observability.Observability
	errors     *errors.ErrorHandler
	logger     logger.Logger
}

type HandlerOptions struct {
	Config        *Config
	Translator    Translator
	Recorder      Recorder
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = LoadConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     cfg,
		translator: opts.Translator,
		recorder:   opts.Recorder,
		obs:        opts.Observability,
		errors:     errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := parseInput(job.GetVariables())
	if err != nil {
		h.failJob(client, job, err, start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Deadline)
	defer cancel()

	output := h.Execute(ctx, input)
	h.completeJob(client, job, output, start)
}

func parseInput(variables string) (*Input, error) {
	var vars map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &vars); err != nil {
		return nil, errors.NewInvalidQuestionInputError("job variables are not a JSON object: " + err.Error())
	}

	result, err := validation.ValidateInput(vars, inputSchema)
	if err != nil {
		return nil, errors.NewInvalidQuestionInputError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidQuestionInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	return &Input{Question: vars["question"].(string)}, nil
}

// Execute translates the question. It cannot fail: the pipeline always
// yields a query, and analytics problems are only logged.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	start := time.Now()
	result := h.translator.Translate(ctx, input.Question)
	h.obs.RecordTranslation(ctx, string(result.Domain), string(result.Source), time.Since(start))

	h.record(ctx, result)

	return &Output{
		RequestID:         result.RequestID,
		Question:          result.Question,
		Domain:            result.Domain,
		Entities:          result.Entities,
		Filters:           result.Filters,
		SparqlQuery:       result.Query,
		Confidence:        result.Confidence,
		Source:            result.Source,
		Attempts:          result.Attempts,
		FallbackReason:    result.FallbackReason,
		FallbackErrorCode: string(errors.FallbackErrorCode(result.FallbackReason)),
	}
}

func (h *Handler) record(ctx context.Context, result models.PipelineResult) {
	if h.recorder == nil {
		return
	}
	// The translation may have used up the job deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), analyticsTimeout)
	defer cancel()

	if err := h.recorder.Record(ctx, result); err != nil {
		stdErr := errors.NewAnalyticsWriteFailedError(err)
		h.logger.Warn("analytics write failed", map[string]interface{}{
			"requestId": result.RequestID,
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output, start time.Time) {
	ctx := context.Background()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, errors.NewJobCompletionFailedError(err), start)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeJobCompletionFailed)).Inc()
		h.obs.RecordJobProcessed(ctx, TaskType, "failed")
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")

	h.logger.Info("question translated", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"requestId":  output.RequestID,
		"domain":     string(output.Domain),
		"source":     string(output.Source),
		"confidence": output.Confidence,
	})
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, start time.Time) {
	ctx := context.Background()
	res := h.errors.HandleJobError(ctx, client, job, err)

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, res.BPMN.Code).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
}
