package verify

import (
	"net/http"

	"personhood-verifier/pkg/reasoncodes"
	"personhood-verifier/src/batch"
	"personhood-verifier/src/cache"
	"personhood-verifier/src/model"
	"personhood-verifier/src/pipeline"

	"github.com/gin-gonic/gin"
)

// VerifyCounter reports how many pairing checks ran since startup.
type VerifyCounter interface {
	VerifyCount() uint64
}

type Handler struct {
	Pipeline    *pipeline.Pipeline
	Coordinator *batch.Coordinator
	Cache       *cache.ResultCache
	Counter     VerifyCounter
}

func NewHandler(p *pipeline.Pipeline, c *batch.Coordinator, rc *cache.ResultCache, counter VerifyCounter) *Handler {
	return &Handler{Pipeline: p, Coordinator: c, Cache: rc, Counter: counter}
}

type StatsDto struct {
	Cache         cache.Stats `json:"cache"`
	Verifications uint64      `json:"verifications"`
}

// VerifyProof godoc
// @Summary      Verify a proof-of-personhood submission
// @Description  Runs a zero-knowledge membership proof through the verification pipeline
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        body  body      VerificationRequestDto  true  "Verification request"
// @Success      200  {object}  VerificationResultDto
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  VerificationResultDto
// @Router       /v1/verify [post]
func (h *Handler) VerifyProof(c *gin.Context) {
	var dto VerificationRequestDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	req, err := dto.MapToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.Pipeline.Verify(c.Request.Context(), req)
	c.JSON(statusCodeFor(outcome), MapOutcomeToDto(outcome))
}

// VerifyBatch godoc
// @Summary      Verify a batch of proof submissions
// @Description  Verifies requests concurrently; one result per request, in input order
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        body  body      []VerificationRequestDto  true  "Verification requests"
// @Success      200  {array}  VerificationResultDto
// @Failure      400  {object}  map[string]string
// @Router       /v1/verify/batch [post]
func (h *Handler) VerifyBatch(c *gin.Context) {
	var dtos []VerificationRequestDto
	if err := c.ShouldBindJSON(&dtos); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	requests := make([]*model.VerificationRequest, len(dtos))
	for i, dto := range dtos {
		req, err := dto.MapToDomain()
		if err != nil {
			// A malformed entry rejects only itself; siblings still run.
			requests[i] = &model.VerificationRequest{}
			continue
		}
		requests[i] = req
	}

	outcomes := h.Coordinator.SubmitBatch(c.Request.Context(), requests)

	results := make([]VerificationResultDto, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = MapOutcomeToDto(outcome)
	}
	c.JSON(http.StatusOK, results)
}

// GetStats godoc
// @Summary      Verification statistics
// @Description  Cache hit/miss counters and the number of pairing checks run
// @Tags         Verification
// @Produce      json
// @Success      200  {object}  StatsDto
// @Router       /v1/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats := StatsDto{Cache: h.Cache.Stats()}
	if h.Counter != nil {
		stats.Verifications = h.Counter.VerifyCount()
	}
	c.JSON(http.StatusOK, stats)
}

func statusCodeFor(outcome model.Outcome) int {
	switch outcome.Status {
	case model.Accepted:
		return http.StatusOK
	case model.TimedOut:
		return http.StatusGatewayTimeout
	case model.Unavailable:
		return http.StatusServiceUnavailable
	}

	if outcome.Reason == reasoncodes.MalformedRequest {
		return http.StatusBadRequest
	}
	return http.StatusConflict
}
