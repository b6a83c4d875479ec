package handler

import (
	"errors"

	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/ports"
	"parcel-tracker/internal/features/parcel/service"

	"github.com/gofiber/fiber/v2"
)

// ParcelHandler handles HTTP requests for parcel tracking operations.
type ParcelHandler struct {
	parcelService *service.ParcelService
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelService *service.ParcelService) *ParcelHandler {
	return &ParcelHandler{
		parcelService: parcelService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DetectionResponse lists the carriers whose tracking-ID format accepts the
// given code, in priority order.
type DetectionResponse struct {
	// TrackingID is the candidate tracking code.
	TrackingID string `json:"tracking_id"`
	// Candidates are the matching carriers, most specific format first.
	Candidates []domain.Carrier `json:"candidates"`
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// GetParcel godoc
// @Summary Look up a parcel
// @Description Fetches the parcel from the selected carrier and returns its normalized status and history
// @Tags parcels
// @Accept json
// @Produce json
// @Param id path string true "Tracking ID"
// @Param carrier query string true "Carrier identifier (e.g. dhl, gls)"
// @Param postalCode query string false "Recipient postal code, required by some carriers"
// @Success 200 {object} domain.Parcel
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /parcels/{id} [get]
func (h *ParcelHandler) GetParcel(c *fiber.Ctx) error {
	trackingID := c.Params("id")
	if trackingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking id is required",
			RayID:   rayID(c),
		})
	}

	carrier := domain.Carrier(c.Query("carrier"))
	if carrier == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "carrier query parameter is required",
			RayID:   rayID(c),
		})
	}

	parcel, err := h.parcelService.GetParcel(c.UserContext(), trackingID, c.Query("postalCode"), carrier)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCarrierNotSupported):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "carrier not supported",
				RayID:   rayID(c),
			})
		case errors.Is(err, ports.ErrPostalCodeRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: "postal code is required for this carrier",
				RayID:   rayID(c),
			})
		case errors.Is(err, ports.ErrNetwork):
			return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
				Message: "carrier unreachable",
				RayID:   rayID(c),
			})
		case errors.Is(err, ports.ErrParcelNonExistent):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "parcel does not exist",
				RayID:   rayID(c),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(parcel)
}

// ListCarriers godoc
// @Summary List supported carriers
// @Description Returns every supported carrier with its postal-code capability flags
// @Tags carriers
// @Produce json
// @Success 200 {array} service.CarrierInfo
// @Router /carriers [get]
func (h *ParcelHandler) ListCarriers(c *fiber.Ctx) error {
	return c.JSON(h.parcelService.Carriers())
}

// DetectCarrier godoc
// @Summary Detect candidate carriers for a tracking ID
// @Description Returns the carriers whose tracking-ID format accepts the given code, without any network I/O
// @Tags carriers
// @Produce json
// @Param id path string true "Tracking ID"
// @Success 200 {object} DetectionResponse
// @Failure 400 {object} ErrorResponse
// @Router /carriers/detect/{id} [get]
func (h *ParcelHandler) DetectCarrier(c *fiber.Ctx) error {
	trackingID := c.Params("id")
	if trackingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking id is required",
			RayID:   rayID(c),
		})
	}

	candidates := h.parcelService.DetectCarrier(trackingID)
	if candidates == nil {
		candidates = []domain.Carrier{}
	}

	return c.JSON(DetectionResponse{
		TrackingID: trackingID,
		Candidates: candidates,
	})
}
