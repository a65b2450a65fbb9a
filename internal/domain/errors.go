package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrProductInactive    = errors.New("producto inactivo, no vendible")
	ErrOutOfStock         = errors.New("stock insuficiente")
	ErrPaymentMismatch    = errors.New("los pagos no cuadran con el total")
	ErrInvalidAmount      = errors.New("monto de pago inválido")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// OutOfStockError lleva el producto ofensor y el faltante, para que el caller
// pueda armar un mensaje de usuario. errors.Is(err, ErrOutOfStock) == true.
type OutOfStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.ProductName, e.Requested, e.Available)
}

func (e *OutOfStockError) Unwrap() error { return ErrOutOfStock }

// Shortfall devuelve cuántas unidades faltan para cubrir lo solicitado.
func (e *OutOfStockError) Shortfall() int64 { return e.Requested - e.Available }

// PaymentMismatchError lleva el pagado calculado y el total de la venta.
// errors.Is(err, ErrPaymentMismatch) == true.
type PaymentMismatchError struct {
	Paid  decimal.Decimal
	Total decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("los pagos no cuadran: pagado %s, total %s", e.Paid.StringFixed(2), e.Total.StringFixed(2))
}

func (e *PaymentMismatchError) Unwrap() error { return ErrPaymentMismatch }

// InvalidAmountError identifica la entrada de pago rechazada (monto negativo).
type InvalidAmountError struct {
	Kind   string
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("monto inválido en pago %s: %s", e.Kind, e.Amount.String())
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }
