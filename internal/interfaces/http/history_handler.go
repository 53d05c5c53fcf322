package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	apphistory "github.com/jhoicas/Alquileres-api/internal/application/history"
)

// HistoryHandler expone el historial unificado de un equipo.
type HistoryHandler struct {
	uc *apphistory.UseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *apphistory.UseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// GetHistory historial fusionado (GET /api/assets/code/:code/history).
// Query: from, to (RFC3339 o YYYY-MM-DD), types (coma-separado). Para
// historiales grandes el llamador debe acotar el rango de fechas.
func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	filter := apphistory.Filter{}
	if v := c.Query("from"); v != "" {
		d, err := parseQueryDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from: fecha inválida"})
		}
		filter.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := parseQueryDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to: fecha inválida"})
		}
		filter.To = &d
	}
	if v := c.Query("types"); v != "" {
		filter.Types = strings.Split(v, ",")
	}

	code := c.Params("code")
	result, err := h.uc.GetHistory(c.Context(), code, filter)
	if err != nil {
		return writeError(c, err)
	}

	events := make([]dto.HistoryEventDTO, 0, len(result.Events))
	for _, ev := range result.Events {
		events = append(events, dto.HistoryEventDTO{
			ID:          ev.ID,
			Date:        ev.Date,
			Type:        ev.Type,
			Title:       ev.Title,
			Description: ev.Description,
			Detail:      ev.Detail,
			User:        ev.User,
		})
	}
	return c.JSON(dto.HistoryResponse{
		AssetCode:    code,
		Events:       events,
		SourceErrors: result.SourceErrors,
	})
}

func parseQueryDate(v string) (time.Time, error) {
	if d, err := time.Parse(time.RFC3339, v); err == nil {
		return d, nil
	}
	return time.Parse("2006-01-02", v)
}
