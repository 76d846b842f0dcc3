package accumulator

import (
	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/rabbitmq"

	"github.com/robfig/cron"
)

const refreshWorkerName = "RootRefreshWorker"

// RefreshWorker periodically pulls the source's current roots into the
// accepted window.
type RefreshWorker struct {
	window *RootWindow
	source RootSource
	cron   *cron.Cron
}

func NewRefreshWorker(window *RootWindow, source RootSource) rabbitmq.WorkerService {
	return &RefreshWorker{
		window: window,
		source: source,
		cron:   cron.New(),
	}
}

func (rw *RefreshWorker) GetServiceName() string {
	return refreshWorkerName
}

func (rw *RefreshWorker) StartService() {
	err := rw.cron.AddFunc("@every 15s", func() { rw.refresh() })
	if err != nil {
		logger.Default().Errorf(err, "Could not add function to %s", refreshWorkerName)
	}

	rw.cron.Start()
}

func (rw *RefreshWorker) refresh() {
	if err := rw.window.Refresh(rw.source); err != nil {
		logger.Default().Errorf(err, "Failed to refresh accepted root window")
	}
}
