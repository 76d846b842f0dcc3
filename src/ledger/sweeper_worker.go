package ledger

import (
	"context"
	"time"

	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/rabbitmq"

	"github.com/robfig/cron"
)

const sweeperWorkerName = "NullifierSweeperWorker"

// SweeperWorker removes expired nullifier records on a schedule. A record may
// only disappear after its TTL has strictly elapsed; until the sweep runs the
// pair stays blocked, so there is no window where a key is half expired.
type SweeperWorker struct {
	repository Repository
	schedule   string
	cron       *cron.Cron
}

func NewSweeperWorker(repository Repository) rabbitmq.WorkerService {
	return &SweeperWorker{
		repository: repository,
		schedule:   "@every 1m",
		cron:       cron.New(),
	}
}

func (sw *SweeperWorker) GetServiceName() string {
	return sweeperWorkerName
}

func (sw *SweeperWorker) StartService() {
	err := sw.cron.AddFunc(sw.schedule, func() { sw.sweep() })
	if err != nil {
		logger.Default().Errorf(err, "Could not add function to %s", sweeperWorkerName)
	}

	sw.cron.Start()
}

func (sw *SweeperWorker) sweep() {
	sweepLogger := logger.Default()

	swept, err := sw.repository.SweepExpired(context.Background(), time.Now())
	if err != nil {
		sweepLogger.Error(err, "Nullifier expiry sweep failed")
		return
	}
	if swept > 0 {
		sweepLogger.Infof("Swept %d expired nullifier records", swept)
	}
}
