package queues

import (
	"context"
	"encoding/json"

	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/rabbitmq"
	"personhood-verifier/pkg/reasoncodes"
	"personhood-verifier/src/pipeline"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	verificationWorkerName = "VerificationWorker"

	verificationConsumerAlias = "VerificationConsumer"
	resultPublisherAlias      = "VerificationResultPublisher"
	failurePublisherAlias     = "VerificationFailurePublisher"
)

// VerificationWorker consumes queued proof submissions and publishes one
// result per job. Transport glue only: every decision is the pipeline's.
type VerificationWorker struct {
	pipeline *pipeline.Pipeline
	consumer rabbitmq.IRabbitmqConsumer
}

func NewVerificationWorker(p *pipeline.Pipeline) rabbitmq.WorkerService {
	return &VerificationWorker{
		pipeline: p,
		consumer: rabbitmq.GetConsumer(verificationConsumerAlias),
	}
}

func (vw *VerificationWorker) GetServiceName() string {
	return verificationWorkerName
}

func (vw *VerificationWorker) StartService() {
	workerLogger := logger.Default()
	resultPublisher := rabbitmq.GetPublisher(resultPublisherAlias)
	failurePublisher := rabbitmq.GetPublisher(failurePublisherAlias)

	vw.consumer.StartConsuming(func(d amqp.Delivery) {
		var job VerificationJobDto
		if err := json.Unmarshal(d.Body, &job); err != nil {
			failure := VerificationFailureDto{
				Error:       err.Error(),
				ReasonCode:  string(reasoncodes.ErrUnmarshal),
				RequestBody: d.Body,
			}
			_ = failurePublisher.Publish(failure)
			return
		}

		if job.EventId == "" {
			job.EventId = uuid.NewString()
		}

		req, err := job.Request.MapToDomain()
		if err != nil {
			failure := VerificationFailureDto{
				EventId:     job.EventId,
				Error:       err.Error(),
				ReasonCode:  string(reasoncodes.MalformedRequest),
				RequestBody: d.Body,
			}
			_ = failurePublisher.Publish(failure)
			return
		}

		outcome := vw.pipeline.Verify(context.Background(), req)

		result := VerificationResultDto{
			EventId: job.EventId,
			Status:  outcome.Status.String(),
			Reason:  string(outcome.Reason),
		}
		if err := resultPublisher.Publish(result); err != nil {
			workerLogger.Errorf(err, "Can't publish verification result for %s", job.EventId)
			return
		}

		workerLogger.Infof("Processed verification job %s: %s", job.EventId, result.Status)
	})
}
