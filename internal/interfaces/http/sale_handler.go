package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/payment"
)

// SaleHandler maneja el checkout y las consultas de ventas (protegido).
type SaleHandler struct {
	commit  *sales.CommitSaleUseCase
	queries *sales.QueryUseCase
	receipt *sales.ReceiptPDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(commit *sales.CommitSaleUseCase, queries *sales.QueryUseCase, receipt *sales.ReceiptPDFUseCase) *SaleHandler {
	return &SaleHandler{commit: commit, queries: queries, receipt: receipt}
}

// Commit godoc
// @Summary      Cometer una venta (checkout atómico)
// @Description  Valida stock, concilia pagos, descuenta inventario y persiste la venta en una transacción. Reintentos con el mismo Idempotency-Key devuelven la venta ya confirmada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia del intento"
// @Param        body  body  dto.CommitSaleRequest  true  "Carrito, tipo de documento y pagos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El header gana sobre el campo del body.
	key := c.Get("Idempotency-Key")
	if key == "" {
		key = in.IdempotencyKey
	}

	items := make([]sales.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	entries := make([]payment.Entry, 0, len(in.Payments))
	for _, p := range in.Payments {
		entries = append(entries, payment.Entry{Kind: p.Kind, Amount: p.Amount})
	}

	actor := sales.Actor{ID: GetUserID(c), Name: GetUserName(c), Role: GetRole(c)}
	sale, err := h.commit.Commit(c.Context(), actor, sales.CommitInput{
		Items:          items,
		DocumentType:   in.DocumentType,
		Payments:       entries,
		IsCredit:       in.IsCredit,
		Observations:   in.Observations,
		IdempotencyKey: key,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale))
}

// List godoc
// @Summary      Historial de ventas (más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.queries.GetAll(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.ToSaleResponse(&list[i]))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.queries.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// GetPDF godoc
// @Summary      Descargar el recibo de una venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, err := h.receipt.GeneratePDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="recibo-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
