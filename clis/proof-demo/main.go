package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"personhood-verifier/src/accumulator"
	"personhood-verifier/src/batch"
	"personhood-verifier/src/cache"
	"personhood-verifier/src/ledger"
	"personhood-verifier/src/model"
	"personhood-verifier/src/pipeline"
	"personhood-verifier/src/zkp"
)

// proof-demo runs the full enroll -> prove -> verify loop in process. Useful
// for smoke-testing circuit changes without a server, a database or a queue.
func main() {
	action := flag.String("action", "demo-vote", "Action id scoping the nullifier")
	signal := flag.String("signal", "yes", "Signal bound into the proof")
	identities := flag.Int("identities", 3, "Number of identities to enroll")
	flag.Parse()

	if *identities < 1 {
		fmt.Fprintln(os.Stderr, "-identities must be at least 1")
		os.Exit(1)
	}

	log.Println("Compiling circuit and generating development keys (slow, one-off)...")
	keys, err := zkp.GenerateKeys()
	if err != nil {
		log.Fatal(err)
	}

	source, err := accumulator.NewMerkleAccumulator()
	if err != nil {
		log.Fatal(err)
	}

	secrets := make([]model.Hash, *identities)
	for i := range secrets {
		secret, err := zkp.NewIdentitySecret()
		if err != nil {
			log.Fatal(err)
		}
		commitment, err := zkp.IdentityCommitment(secret)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := source.Enroll(commitment); err != nil {
			log.Fatal(err)
		}
		secrets[i] = secret
	}
	log.Printf("Enrolled %d identities", *identities)

	root, err := source.Root()
	if err != nil {
		log.Fatal(err)
	}

	window := accumulator.NewRootWindow(8)
	if err := window.Refresh(source); err != nil {
		log.Fatal(err)
	}

	verifier := zkp.NewBoundedVerifier(zkp.NewGroth16Verifier(keys.VerifyingKey), 4)
	pipe := pipeline.New(window, verifier, ledger.NewMemoryRepository(), cache.NewResultCache(128, time.Hour), pipeline.Config{
		NullifierTTL:   time.Hour,
		RequestTimeout: 30 * time.Second,
	})
	coordinator := batch.NewCoordinator(pipe)

	prover := zkp.NewProver(keys)

	witness, err := source.InclusionProof(0)
	if err != nil {
		log.Fatal(err)
	}
	witness.IdentitySecret = secrets[0]

	log.Printf("Proving membership for action %q, signal %q...", *action, *signal)
	proof, nullifier, err := prover.Prove(*action, []byte(*signal), root, witness)
	if err != nil {
		log.Fatal(err)
	}

	request := &model.VerificationRequest{
		ActionId:      *action,
		Signal:        []byte(*signal),
		Root:          root,
		NullifierHash: nullifier,
		Proof:         proof,
		SubmittedAt:   time.Now(),
	}

	outcome := pipe.Verify(context.Background(), request)
	log.Printf("First submission: %s %s", outcome.Status, outcome.Reason)

	// Same bytes again: served from the cache.
	outcome = pipe.Verify(context.Background(), request)
	log.Printf("Duplicate submission: %s %s", outcome.Status, outcome.Reason)

	// Fresh proof, same identity and action: the ledger collapses it.
	proof2, _, err := prover.Prove(*action, []byte(*signal+"!"), root, witness)
	if err != nil {
		log.Fatal(err)
	}
	replay := &model.VerificationRequest{
		ActionId:      *action,
		Signal:        []byte(*signal + "!"),
		Root:          root,
		NullifierHash: nullifier,
		Proof:         proof2,
		SubmittedAt:   time.Now(),
	}

	results := coordinator.SubmitBatch(context.Background(), []*model.VerificationRequest{replay})
	log.Printf("Second proof, same identity: %s %s", results[0].Status, results[0].Reason)
}
