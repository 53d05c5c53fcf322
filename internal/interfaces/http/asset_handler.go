package http

import (
	"github.com/gofiber/fiber/v2"

	appasset "github.com/jhoicas/Alquileres-api/internal/application/asset"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// AssetHandler maneja las peticiones HTTP de alta y consulta de equipos.
type AssetHandler struct {
	uc *appasset.UseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *appasset.UseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Register alta de un equipo (POST /api/assets).
func (h *AssetHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.Register(c.Context(), appasset.RegisterInput{
		Code:         in.Code,
		DepotNotes:   in.DepotNotes,
		RegisteredAt: in.RegisteredAt,
		Actor:        GetActor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetResponse(a))
}

// GetByID consulta por id (GET /api/assets/:id).
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAssetResponse(a))
}

// GetByCode consulta por código (GET /api/assets/code/:code).
func (h *AssetHandler) GetByCode(c *fiber.Ctx) error {
	a, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toAssetResponse(a))
}

// List listado con filtro de estado opcional (GET /api/assets?state=...).
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), c.Query("state"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssetResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "assets": out})
}

func toAssetResponse(a *entity.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:            a.ID,
		Code:          a.Code,
		LocationState: a.LocationState,
		StateLabel:    entity.StateLabel(a.LocationState),

		RentalClient: a.RentalClient,
		RentalSite:   a.RentalSite,
		RentalStart:  a.RentalStart,
		RentalEnd:    a.RentalEnd,

		MaintenanceCompany:     a.MaintenanceCompany,
		MaintenanceSite:        a.MaintenanceSite,
		MaintenanceArrival:     a.MaintenanceArrival,
		MaintenanceDeparture:   a.MaintenanceDeparture,
		MaintenanceDescription: a.MaintenanceDescription,

		DepotNotes:      a.DepotNotes,
		InspectionStart: a.InspectionStart,

		AvailableForRent: a.AvailableForRent,

		WasReplaced:       a.WasReplaced,
		ReplacedByAssetID: a.ReplacedByAssetID,
		ReplacementReason: a.ReplacementReason,

		CreatedAt:    a.CreatedAt,
		RegisteredAt: a.RegisteredAt,
	}
}
