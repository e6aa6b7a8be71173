// internal/workers/ai-conversation/classify-question/handler.go
package classifyquestion

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ecotourism-workers/internal/common/errors"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/common/metrics"
	"ecotourism-workers/internal/common/validation"
	"ecotourism-workers/internal/translator/pipeline"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "classify-question"

// Analyzer is satisfied by *pipeline.Translator.
type Analyzer interface {
	Analyze(question string) pipeline.Analysis
}

type Handler struct {
	config   *Config
	analyzer Analyzer
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, analyzer Analyzer, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		analyzer: analyzer,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.GetVariables())
	if err != nil {
		res := h.errors.HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, res.BPMN.Code).Inc()
		return
	}

	output := h.Execute(input)

	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		res := h.errors.HandleJobError(ctx, client, job, errors.NewJobCompletionFailedError(err))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, res.BPMN.Code).Inc()
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeJobCompletionFailed)).Inc()
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.logger.Info("question classified", map[string]interface{}{
		"jobKey":   job.GetKey(),
		"domain":   string(output.Domain),
		"entities": len(output.Entities),
		"filters":  len(output.Filters),
	})
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

func (h *Handler) Execute(input *Input) *Output {
	a := h.analyzer.Analyze(input.Question)
	return &Output{
		Domain:   a.Domain,
		Entities: a.Entities,
		Filters:  a.Filters,
	}
}
