package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	applifecycle "github.com/jhoicas/Alquileres-api/internal/application/lifecycle"
	domlifecycle "github.com/jhoicas/Alquileres-api/internal/domain/lifecycle"
)

// LifecycleHandler maneja transiciones de estado, sustituciones y conciliación
// de retiros pendientes.
type LifecycleHandler struct {
	coordinator *applifecycle.SubstitutionCoordinator
	reconciler  *applifecycle.Reconciler
}

// NewLifecycleHandler construye el handler.
func NewLifecycleHandler(coordinator *applifecycle.SubstitutionCoordinator, reconciler *applifecycle.Reconciler) *LifecycleHandler {
	return &LifecycleHandler{coordinator: coordinator, reconciler: reconciler}
}

// Transition traslado ordinario (POST /api/assets/:id/transitions).
func (h *LifecycleHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.coordinator.Move(c.Context(), applifecycle.TransitionInput{
		AssetID:   c.Params("id"),
		FromState: in.FromState,
		ToState:   in.ToState,
		Actor:     GetActor(c),
		EventDate: parseEventDate(in.EventDate),
		Payload: applifecycle.TransitionPayload{
			RentalClient: in.RentalClient,
			RentalSite:   in.RentalSite,
			RentalStart:  in.RentalStart,
			RentalEnd:    in.RentalEnd,

			MaintenanceCompany:     in.MaintenanceCompany,
			MaintenanceSite:        in.MaintenanceSite,
			MaintenanceArrival:     in.MaintenanceArrival,
			MaintenanceDeparture:   in.MaintenanceDeparture,
			MaintenanceDescription: in.MaintenanceDescription,

			DepotNotes: in.DepotNotes,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransitionResponse{
		AssetCode:     result.Asset.Code,
		FromState:     result.FromState,
		ToState:       result.ToState,
		Summary:       result.Summary,
		CycleArchived: result.CycleArchived,
		CycleNumber:   result.CycleNumber,
	})
}

// Substitute sustitución (POST /api/assets/:id/substitutions). El predecesor
// pasa a revisión y el sucesor hereda cliente/obra.
func (h *LifecycleHandler) Substitute(c *fiber.Ctx) error {
	var in dto.SubstitutionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.coordinator.Substitute(c.Context(), applifecycle.SubstitutionInput{
		PredecessorID: c.Params("id"),
		SuccessorCode: in.SuccessorCode,
		Reason:        in.Reason,
		Actor:         GetActor(c),
		EventDate:     parseEventDate(in.EventDate),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"predecessor_code": result.PredecessorCode,
		"successor_code":   result.SuccessorCode,
		"inherited_client": result.InheritedClient,
		"inherited_site":   result.InheritedSite,
	})
}

// PendingWithdrawals retiros pendientes (GET /api/assets/code/:code/withdrawals/pending).
func (h *LifecycleHandler) PendingWithdrawals(c *fiber.Ctx) error {
	list, err := h.reconciler.FindPending(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WithdrawalResponse{
			ID:          w.ID,
			AssetCode:   w.AssetCode,
			ProductName: w.ProductName,
			Quantity:    w.Quantity.String(),
			Reason:      w.Reason,
			Site:        w.Site,
			Company:     w.Company,
			CreatedAt:   w.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "withdrawals": out})
}

// Reconcile aplica una resolución total sobre los retiros pendientes
// (POST /api/assets/code/:code/withdrawals/reconcile).
func (h *LifecycleHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	archived, err := h.reconciler.Resolve(c.Context(), c.Params("code"), in.Resolution, GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"resolution": in.Resolution, "archived": archived})
}

// parseEventDate interpreta la fecha retroactiva del cuerpo. Texto que no se
// puede interpretar se trata como ausente (fallo abierto): el traslado sigue
// con el timestamp de sistema en lugar de bloquearse. La regla de no-futuro la
// aplica el motor sobre la fecha ya interpretada.
func parseEventDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	d, ok := domlifecycle.ParseDate(value)
	if !ok {
		return nil
	}
	return &d
}
