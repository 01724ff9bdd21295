package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/Otigef/weather-dashboard/internal/models"
	"github.com/Otigef/weather-dashboard/internal/render"
	"github.com/Otigef/weather-dashboard/internal/services/session"
)

// DashboardResponse is the rendered dashboard state.
type DashboardResponse struct {
	Phase       string             `json:"phase" example:"content"`
	City        string             `json:"city" example:"Paris"`
	IsFavorite  bool               `json:"is_favorite" example:"true"`
	Favorites   []string           `json:"favorites"`
	Suggestions []string           `json:"suggestions"`
	Error       string             `json:"error,omitempty" example:""`
	Weather     *render.ReportView `json:"weather,omitempty"`
}

// SearchRequest carries an explicit search.
type SearchRequest struct {
	City string `json:"city" example:"Paris"`
}

// InputRequest carries one autocomplete keystroke.
type InputRequest struct {
	Query string `json:"query" example:"Par"`
}

// FavoritesResponse reports the favorites list after a mutation.
type FavoritesResponse struct {
	Favorites  []string `json:"favorites"`
	IsFavorite bool     `json:"is_favorite" example:"false"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: city"`
}

func urlDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

func toDashboardResponse(snap session.Snapshot) DashboardResponse {
	resp := DashboardResponse{
		Phase:       string(snap.Phase),
		City:        snap.City,
		IsFavorite:  snap.IsFavorite,
		Favorites:   snap.Favorites,
		Suggestions: snap.Suggestions,
		Error:       snap.ErrorMessage,
	}

	if snap.HasReport && snap.Phase == session.PhaseContent {
		view := render.BuildReportView(snap.City, snap.Report)
		resp.Weather = &view
	}

	return resp
}

// GetDashboard godoc
// @Summary Get the dashboard state
// @Description Returns the current UI phase, rendered weather view, suggestion list and favorites
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Current dashboard state"
// @Router /dashboard [get]
func (r *routes) handleDashboard(c *fiber.Ctx) error {
	return c.JSON(toDashboardResponse(r.session.Snapshot()))
}

// Search godoc
// @Summary Search weather for a city
// @Description Triggers an explicit weather search; the response reflects the resulting phase (content or error)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SearchRequest true "City to search"
// @Success 200 {object} DashboardResponse "Resulting dashboard state"
// @Failure 400 {object} ErrorResponse "Bad request - missing city"
// @Router /search [post]
func (r *routes) handleSearch(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	snap, err := r.session.Search(c.Context(), req.City)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: city",
		})
	}

	return c.JSON(toDashboardResponse(snap))
}

// Input godoc
// @Summary Feed an autocomplete keystroke
// @Description Restarts the suggestion debounce timer; suggestions appear on the dashboard once the input settles
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body InputRequest true "Partial city name"
// @Success 202 {object} DashboardResponse "Accepted; current state"
// @Router /input [post]
func (r *routes) handleInput(c *fiber.Ctx) error {
	var req InputRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	r.session.Input(req.Query)

	return c.Status(fiber.StatusAccepted).JSON(toDashboardResponse(r.session.Snapshot()))
}

// GetSuggestions godoc
// @Summary Get the current suggestion list
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse "Current dashboard state including suggestions"
// @Router /suggestions [get]
func (r *routes) handleSuggestions(c *fiber.Ctx) error {
	snap := r.session.Snapshot()
	return c.JSON(fiber.Map{"suggestions": snap.Suggestions})
}

// ToggleFavorite godoc
// @Summary Toggle the current city as a favorite
// @Description Adds the current city to favorites, or removes it if already present. Removal requires confirm=true.
// @Tags Favorites
// @Produce json
// @Param confirm query boolean false "Confirmation flag, required for removal"
// @Success 200 {object} FavoritesResponse "Favorites after the toggle"
// @Failure 409 {object} ErrorResponse "Removal not confirmed"
// @Failure 422 {object} ErrorResponse "No current city"
// @Router /favorites/toggle [post]
func (r *routes) handleToggleFavorite(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm")

	if err := r.session.ToggleFavorite(confirmed); err != nil {
		if errors.Is(err, models.ErrConfirmationRequired) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error: "Removing a favorite requires confirm=true",
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	snap := r.session.Snapshot()
	return c.JSON(FavoritesResponse{
		Favorites:  snap.Favorites,
		IsFavorite: snap.IsFavorite,
	})
}

// RemoveFavorite godoc
// @Summary Remove a favorite city
// @Description Removes the named city from favorites (case-insensitive). Requires confirm=true.
// @Tags Favorites
// @Produce json
// @Param city path string true "City to remove"
// @Param confirm query boolean false "Confirmation flag"
// @Success 200 {object} FavoritesResponse "Favorites after the removal"
// @Failure 409 {object} ErrorResponse "Removal not confirmed"
// @Router /favorites/{city} [delete]
func (r *routes) handleRemoveFavorite(c *fiber.Ctx) error {
	city, err := urlDecode(c.Params("city"))
	if err != nil || city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: city",
		})
	}

	if err := r.session.RemoveFavorite(city, c.QueryBool("confirm")); err != nil {
		if errors.Is(err, models.ErrConfirmationRequired) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error: "Removing a favorite requires confirm=true",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	snap := r.session.Snapshot()
	return c.JSON(FavoritesResponse{
		Favorites:  snap.Favorites,
		IsFavorite: snap.IsFavorite,
	})
}
