// internal/workers/data-access/synthesize-sparql/handler.go
package synthesizesparql

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ecotourism-workers/internal/common/errors"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/common/metrics"
	"ecotourism-workers/internal/common/validation"
	"ecotourism-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "synthesize-sparql"

// Synthesizer is satisfied by *sparql.Synthesizer.
type Synthesizer interface {
	Synthesize(domain models.QueryDomain, entities models.Entities, filters models.FilterMap) string
}

type Handler struct {
	config *Config
	synth  Synthesizer
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, synth Synthesizer, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		synth:  synth,
		errors: errors.NewErrorHandler(log),
		logger: log,
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
	h.logger.Info("query synthesized", map[string]interface{}{
		"jobKey": job.GetKey(),
		"domain": string(output.Domain),
	})
}

func parseInput(variables string) (*Input, error) {
	var vars map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &vars); err != nil {
		return nil, errors.NewInvalidSynthesisInputError("job variables are not a JSON object: " + err.Error())
	}
	result, err := validation.ValidateInput(vars, inputSchema)
	if err != nil {
		return nil, errors.NewInvalidSynthesisInputError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidSynthesisInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidSynthesisInputError(err.Error())
	}
	return &input, nil
}

// Execute renders the template query. Filter values outside the vocabulary
// never reach the query text.
func (h *Handler) Execute(input *Input) *Output {
	return &Output{
		Domain:      input.Domain,
		SparqlQuery: h.synth.Synthesize(input.Domain, input.Entities, input.Filters),
	}
}
