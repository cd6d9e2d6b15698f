package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/QuiambaoMichael/safetap-backend/internal/api/dto"
	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
	"github.com/QuiambaoMichael/safetap-backend/internal/service"
	apperrors "github.com/QuiambaoMichael/safetap-backend/pkg/util"
)

// ConcernsHandler manages concern endpoints.
type ConcernsHandler struct {
	service *service.ConcernService
}

// NewConcernsHandler constructs handler.
func NewConcernsHandler(concernService *service.ConcernService) *ConcernsHandler {
	return &ConcernsHandler{service: concernService}
}

// Submit POST /api/concerns.
func (h *ConcernsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitConcernRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	concern, err := h.service.Submit(c.UserContext(), service.SubmitConcernInput{
		Category:                 req.Category,
		Description:              req.Description,
		SupplementaryDescription: req.SupplementaryDescription,
		Location:                 req.Location,
		SubmitterEmail:           req.SubmitterEmail,
		SubmitterName:            req.SubmitterName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": concernDetail(concern)})
}

// List GET /api/concerns.
func (h *ConcernsHandler) List(c *fiber.Ctx) error {
	query, err := parseConcernListQuery(c)
	if err != nil {
		return err
	}

	if c.Query("view") == "full" {
		concerns, err := h.service.ListDetailed(c.UserContext(), query)
		if err != nil {
			return err
		}
		items := make([]dto.ConcernDetailResponse, 0, len(concerns))
		for i := range concerns {
			items = append(items, concernDetail(&concerns[i]))
		}
		return c.JSON(fiber.Map{"data": items})
	}

	summaries, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	items := make([]dto.ConcernSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.ConcernSummaryResponse{
			ID:        summary.ID,
			Category:  summary.Category,
			Location:  summary.Location,
			Status:    summary.Status,
			CreatedAt: summary.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/concerns/:id.
func (h *ConcernsHandler) Get(c *fiber.Ctx) error {
	concern, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": concernDetail(concern)})
}

// Resolve PATCH /api/concerns/:id/resolve.
func (h *ConcernsHandler) Resolve(c *fiber.Ctx) error {
	concern, err := h.service.Resolve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": concernDetail(concern)})
}

func parseConcernListQuery(c *fiber.Ctx) (service.ListQuery, error) {
	query := service.ListQuery{SortOrder: c.Query("sort")}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ConcernStatus(statusStr)
		query.Status = &status
	}
	if category := c.Query("category"); category != "" {
		query.Category = &category
	}
	if from := c.Query("from_date"); from != "" {
		parsed, err := parseDay(from)
		if err != nil {
			return service.ListQuery{}, apperrors.NewValidationError("invalid from_date", map[string]any{"from_date": from})
		}
		query.FromDate = &parsed
	}
	if to := c.Query("to_date"); to != "" {
		parsed, err := parseDay(to)
		if err != nil {
			return service.ListQuery{}, apperrors.NewValidationError("invalid to_date", map[string]any{"to_date": to})
		}
		query.ToDate = &parsed
	}
	return query, nil
}

func parseDay(val string) (time.Time, error) {
	return time.Parse("2006-01-02", val)
}

func concernDetail(concern *domain.Concern) dto.ConcernDetailResponse {
	return dto.ConcernDetailResponse{
		ID:                       concern.ID,
		Category:                 concern.Category,
		Description:              concern.Description,
		SupplementaryDescription: concern.SupplementaryDescription,
		Location:                 concern.Location,
		SubmitterEmail:           concern.SubmitterEmail,
		SubmitterName:            concern.SubmitterName,
		Status:                   concern.Status,
		CreatedAt:                concern.CreatedAt,
		UpdatedAt:                concern.UpdatedAt,
	}
}
