package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardwise/credit-card-api/internal/api/metrics"
	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /apply without creating duplicates.
const HeaderIdempotencyKey = "Idempotency-Key"

type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply records a credit card application.
//
// @Summary      Apply for a card
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string        false  "Replays the first result for a repeated key"
// @Param        body             body      applyRequest  true   "Application"
// @Success      201              {object}  applicationResponse
// @Success      200              {object}  applicationResponse  "Idempotent replay"
// @Failure      400              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		metrics.ApplicationsTotal.WithLabelValues("invalid").Inc()
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		metrics.ApplicationsTotal.WithLabelValues("invalid").Inc()
		return domain.NewValidationError(err.Error())
	}

	result, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		UserID:         req.UserID,
		CardID:         req.CardID,
		ApprovalOdds:   float64(req.ApprovalOdds),
		Status:         req.Status,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		if domain.IsValidation(err) {
			metrics.ApplicationsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.ApplicationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if result.AlreadyExisted {
		metrics.ApplicationsTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, toApplicationResponse(result.Application))
	}
	metrics.ApplicationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toApplicationResponse(result.Application))
}

// List returns every application submitted by a user.
//
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Param        userId  query     string  false  "User id"
// @Success      200     {array}   applicationResponse
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /applications [get]
// @Router       /applications/{userId} [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		userID = c.QueryParam("userId")
	}

	apps, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.ApplicationsListed.Observe(float64(len(apps)))
	return c.JSON(http.StatusOK, toApplicationResponses(apps))
}
