package main

import (
	"personhood-verifier/pkg/appbuilder"
	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/rabbitmq"
	"personhood-verifier/pkg/rest"
	"personhood-verifier/src/accumulator"
	"personhood-verifier/src/batch"
	"personhood-verifier/src/cache"
	"personhood-verifier/src/database"
	"personhood-verifier/src/ledger"
	"personhood-verifier/src/pipeline"
	"personhood-verifier/src/queues"
	"personhood-verifier/src/verify"
	"personhood-verifier/src/zkp"

	"github.com/consensys/gnark/backend/groth16"
)

const loggerPublisherAlias = "LoggerPublisher"

// @title           Proof-of-Personhood Verifier API
// @version         1.0
// @description     Verifies zero-knowledge personhood proofs with at-most-once semantics per action
// @BasePath /v1
func main() {
	var (
		verifyHandler *verify.Handler
		verifyPipe    *pipeline.Pipeline
		backgrounders []rabbitmq.WorkerService
	)

	appbuilder.New[VerifierServiceConfigJson, VerifierServiceConfig]().
		InitLogger(logger.GlobalLoggerConfig{
			Args: []struct {
				Key   string
				Value string
			}{
				{"application", "personhood-verifier"},
				{"version", "1.0.0"},
			},
		}).
		LoadConfig("config.json").
		WithOption(func(a *appbuilder.AppBuilder[VerifierServiceConfigJson, VerifierServiceConfig]) {
			core := a.Config.CoreConf

			// ----- DATABASE + MIGRATIONS -----
			db := database.ConnectToDatabase(a.Config.DatabaseConf.Path)
			repository := ledger.NewRepository(db)

			// ----- PROOF VERIFIER -----
			vk := loadOrGenerateVerifyingKey(core.VerifyingKeyPath)
			groth16Verifier := zkp.NewGroth16Verifier(vk)
			verifier := zkp.NewBoundedVerifier(groth16Verifier, core.MaxConcurrentVerifications)

			// ----- ACCEPTED ROOT WINDOW -----
			source, err := accumulator.NewMerkleAccumulator()
			if err != nil {
				logger.Default().Fatal(err, "Could not build enrollment accumulator")
			}
			window := accumulator.NewRootWindow(core.RootWindowSize)
			if err := window.Refresh(source); err != nil {
				logger.Default().Fatal(err, "Could not seed accepted root window")
			}

			// ----- VERIFICATION CORE -----
			results := cache.NewResultCache(core.CacheCapacity, core.CacheTTL)
			verifyPipe = pipeline.New(window, verifier, repository, results, pipeline.Config{
				NullifierTTL:   core.NullifierTTL,
				RequestTimeout: core.RequestTimeout,
			})
			coordinator := batch.NewCoordinator(verifyPipe)
			verifyHandler = verify.NewHandler(verifyPipe, coordinator, results, groth16Verifier)

			backgrounders = append(backgrounders,
				ledger.NewSweeperWorker(repository),
				accumulator.NewRefreshWorker(window, source),
			)
		}).

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries().
		WithOption(func(a *appbuilder.AppBuilder[VerifierServiceConfigJson, VerifierServiceConfig]) {
			// ----- LOG FORWARDING -----
			if logPublisher := rabbitmq.GetPublisher(loggerPublisherAlias); logPublisher != nil {
				logger.AddSinkToLoggerInstance(logger.Default(), rabbitmq.CreateRabbitmqLoggerSink(logPublisher))
			}

			backgrounders = append(backgrounders, queues.NewVerificationWorker(verifyPipe))
			a.AddWorkerServices(backgrounders...)

			// ----- ROUTES -----
			a.AddGinRoutes(
				rest.NewRoute(rest.POST, "v1", "verify", verifyHandler.VerifyProof),
				rest.NewRoute(rest.POST, "v1", "verify/batch", verifyHandler.VerifyBatch),
				rest.NewRoute(rest.GET, "v1", "stats", verifyHandler.GetStats),
			)
		}).
		AddSwagger().
		InitGinRouter().
		Build().
		Start()
}

// loadOrGenerateVerifyingKey loads ceremony output when configured, otherwise
// falls back to a locally-generated development key.
func loadOrGenerateVerifyingKey(path string) groth16.VerifyingKey {
	mainLogger := logger.Default()

	if path != "" {
		vk, err := zkp.LoadVerifyingKey(path)
		if err == nil {
			mainLogger.Infof("Loaded verifying key from %s", path)
			return vk
		}
		mainLogger.Warnf("Could not load verifying key from %s: %v. Generating development keys.", path, err)
	} else {
		mainLogger.Warn("No verifying key configured. Generating development keys.")
	}

	keys, err := zkp.GenerateKeys()
	if err != nil {
		mainLogger.Fatal(err, "Development key generation failed")
	}

	if path != "" {
		if err := zkp.SaveVerifyingKey(keys.VerifyingKey, path); err != nil {
			mainLogger.Errorf(err, "Could not persist generated verifying key to %s", path)
		}
	}
	return keys.VerifyingKey
}
