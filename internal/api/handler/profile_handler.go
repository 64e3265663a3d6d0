package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardwise/credit-card-api/internal/api/metrics"
	"github.com/cardwise/credit-card-api/internal/core/domain"
	"github.com/cardwise/credit-card-api/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Update changes a user's annual income and credit score.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "New financials"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /profile/update [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
		return domain.NewValidationError(err.Error())
	}

	modified, err := h.service.UpdateProfile(c.Request().Context(), ports.ProfileUpdateInput{
		UserID:       req.UserID,
		AnnualIncome: req.AnnualIncome.Int(),
		CreditScore:  req.CreditScore.Int(),
	})
	if err != nil {
		if domain.IsValidation(err) {
			metrics.ProfileUpdatesTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.ProfileUpdatesTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if modified {
		metrics.ProfileUpdatesTotal.WithLabelValues("modified").Inc()
	} else {
		metrics.ProfileUpdatesTotal.WithLabelValues("unchanged").Inc()
	}
	return c.JSON(http.StatusOK, updateProfileResponse{Success: modified})
}

// Get returns a user's public profile.
//
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  profileResponse
// @Failure      404     {object}  map[string]string
// @Router       /profile/{userId} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := h.service.GetProfile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}
