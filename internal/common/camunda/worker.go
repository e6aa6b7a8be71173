package camunda

import (
	"time"

	"ecotourism-workers/internal/common/config"
	"ecotourism-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registration binds a job type to its handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// Plan resolves which registrations run and with what settings, in order.
func Plan(cfg *config.Config, regs []Registration) []Planned {
	var out []Planned
	for _, r := range regs {
		wcfg := config.GetWorkerConfig(cfg, r.TaskType)
		if !wcfg.Enabled {
			continue
		}
		out = append(out, Planned{Registration: r, Config: wcfg})
	}
	return out
}

type Planned struct {
	Registration
	Config config.WorkerConfig
}

// Pool owns the open job workers.
type Pool struct {
	workers []worker.JobWorker
	log     logger.Logger
}

// Start opens one job worker per planned registration.
func Start(client zbc.Client, planned []Planned, log logger.Logger) *Pool {
	p := &Pool{log: log}
	for _, pl := range planned {
		jw := client.NewJobWorker().
			JobType(pl.TaskType).
			Handler(pl.Handler).
			MaxJobsActive(pl.Config.MaxJobsActive).
			Timeout(time.Duration(pl.Config.Timeout) * time.Millisecond).
			Open()
		p.workers = append(p.workers, jw)

		log.Info("worker started", map[string]interface{}{
			"taskType":      pl.TaskType,
			"maxJobsActive": pl.Config.MaxJobsActive,
			"timeout_ms":    pl.Config.Timeout,
		})
	}
	return p
}

func (p *Pool) Len() int {
	return len(p.workers)
}

// Stop closes every worker and waits for in-flight jobs.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.Close()
		w.AwaitClose()
	}
	p.log.Info("workers stopped", map[string]interface{}{"count": len(p.workers)})
}
