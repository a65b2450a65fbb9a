package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/activity"
	"github.com/jhoicas/pos-api/internal/application/dto"
)

// ActivityHandler expone el feed de actividad reciente y el resumen del dashboard.
type ActivityHandler struct {
	feed    *activity.FeedUseCase
	summary *activity.SummaryUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(feed *activity.FeedUseCase, summary *activity.SummaryUseCase) *ActivityHandler {
	return &ActivityHandler{feed: feed, summary: summary}
}

// Feed godoc
// @Summary      Feed de actividad reciente (ventas + movimientos manuales)
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas"  default(20)
// @Success      200    {array}  dto.ActivityItemResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) Feed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	items, err := h.feed.Feed(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ActivityItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ToActivityItemResponse(item))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del día: ventas, ingresos y productos con stock bajo
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *ActivityHandler) Summary(c *fiber.Ctx) error {
	s, err := h.summary.Summarize(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SummaryResponse{
		SalesToday:    s.SalesToday,
		RevenueToday:  s.RevenueToday,
		LowStockCount: s.LowStockCount,
	})
}
