package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// fakeRepo implementa ProductRepository y MovementRepository en memoria.
type fakeRepo struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []entity.Movement
}

func newFakeRepo(products ...*entity.Product) *fakeRepo {
	r := &fakeRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *fakeRepo) Update(ctx context.Context, p *entity.Product) error { return nil }

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return nil, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *fakeRepo) List(ctx context.Context) ([]entity.Product, error) { return nil, nil }
func (r *fakeRepo) CountLowStock(ctx context.Context) (int, error)     { return 0, nil }

func (r *fakeRepo) Append(ctx context.Context, m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.Seq = int64(len(r.movements) + 1)
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeRepo) ListAll(ctx context.Context, limit, offset int) ([]entity.Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Movement, len(r.movements))
	copy(out, r.movements)
	return out, nil
}

func (r *fakeRepo) ListManual(ctx context.Context, limit int) ([]entity.Movement, error) {
	return nil, nil
}

// fakeTxRunner pasa los mismos repos sin transacción real: suficiente para
// ejercer la lógica del caso de uso (la atomicidad la prueba el adaptador
// PostgreSQL real).
type fakeTxRunner struct{ repo *fakeRepo }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	return fn(r.repo, r.repo)
}

var bodeguero = inventory.Actor{ID: "u1", Name: "Super Admin", Role: entity.RoleAdmin}

func newProduct(id string, stock int64) *entity.Product {
	return &entity.Product{ID: id, Name: "Producto " + id, Stock: stock, Status: entity.StatusActive}
}

func TestRegisterMovement_Entrada(t *testing.T) {
	repo := newFakeRepo(newProduct("p1", 10))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo, inventory.Policy{})

	mov, err := uc.RegisterMovement(context.Background(), bodeguero, inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementIn,
		Quantity:  5,
		Reason:    "Reposición semanal",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Equal(t, "Producto p1", mov.ProductName)
	assert.Empty(t, mov.SaleID, "movimiento manual no referencia venta")

	p, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, int64(15), p.Stock)

	movs, _ := repo.ListAll(context.Background(), 10, 0)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(5), movs[0].Delta())
}

func TestRegisterMovement_SalidaDentroDeStock(t *testing.T) {
	repo := newFakeRepo(newProduct("p1", 10))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo, inventory.Policy{})

	mov, err := uc.RegisterMovement(context.Background(), bodeguero, inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementOut,
		Quantity:  4,
		Reason:    "Merma",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), mov.Delta())

	p, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, int64(6), p.Stock)
}

func TestRegisterMovement_SalidaExcesiva_PoliticaEstricta(t *testing.T) {
	// Por defecto una salida manual no puede dejar stock negativo.
	repo := newFakeRepo(newProduct("p1", 3))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo, inventory.Policy{})

	_, err := uc.RegisterMovement(context.Background(), bodeguero, inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementOut,
		Quantity:  5,
	})
	require.ErrorIs(t, err, domain.ErrOutOfStock)

	p, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, int64(3), p.Stock)
	movs, _ := repo.ListAll(context.Background(), 10, 0)
	assert.Empty(t, movs, "el log no crece en un movimiento rechazado")
}

func TestRegisterMovement_SalidaExcesiva_BackorderPermitido(t *testing.T) {
	// Con INVENTORY_ALLOW_NEGATIVE_STOCK la salida manual puede dejar
	// stock negativo (backorder). Las ventas nunca.
	repo := newFakeRepo(newProduct("p1", 3))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo,
		inventory.Policy{AllowNegativeStock: true})

	_, err := uc.RegisterMovement(context.Background(), bodeguero, inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementOut,
		Quantity:  5,
	})
	require.NoError(t, err)

	p, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, int64(-2), p.Stock)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	repo := newFakeRepo(newProduct("p1", 3))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo, inventory.Policy{})
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, bodeguero, inventory.MovementInput{
		ProductID: "p1", Type: "transfer", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, bodeguero, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementIn, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, bodeguero, inventory.MovementInput{
		ProductID: "no-existe", Type: entity.MovementIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	viewer := inventory.Actor{ID: "u3", Role: entity.RoleViewer}
	_, err = uc.RegisterMovement(ctx, viewer, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLedger_ApplyDelta(t *testing.T) {
	repo := newFakeRepo(newProduct("p1", 10))
	ledger := inventory.NewLedgerUseCase(&fakeTxRunner{repo: repo}, repo)
	ctx := context.Background()

	newStock, err := ledger.ApplyDelta(ctx, "p1", -3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), newStock)

	newStock, err = ledger.ApplyDelta(ctx, "p1", 8)
	require.NoError(t, err)
	assert.Equal(t, int64(15), newStock)

	stock, err := ledger.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), stock)

	_, err = ledger.ApplyDelta(ctx, "fantasma", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = ledger.Get(ctx, "fantasma")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLedger_ApplyDeltaSinPiso(t *testing.T) {
	// El libro no impone piso: un delta que deja stock negativo es válido;
	// la política de piso vive en los casos de uso que lo componen.
	repo := newFakeRepo(newProduct("p1", 2))
	ledger := inventory.NewLedgerUseCase(&fakeTxRunner{repo: repo}, repo)

	newStock, err := ledger.ApplyDelta(context.Background(), "p1", -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), newStock)
}

func TestRegisterMovement_DeltaApareadoConAppend(t *testing.T) {
	// Cada mutación de stock exitosa deja exactamente un registro en el log
	// cuyo delta coincide con el cambio aplicado.
	repo := newFakeRepo(newProduct("p1", 10))
	uc := inventory.NewRegisterMovementUseCase(&fakeTxRunner{repo: repo}, repo, inventory.Policy{})
	ctx := context.Background()

	entradas := []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementIn, Quantity: 4, Reason: "Compra"},
		{ProductID: "p1", Type: entity.MovementOut, Quantity: 6, Reason: "Merma"},
		{ProductID: "p1", Type: entity.MovementOut, Quantity: 1, Reason: "Muestra"},
	}
	stock := int64(10)
	for _, in := range entradas {
		before := stock
		_, err := uc.RegisterMovement(ctx, bodeguero, in)
		require.NoError(t, err)
		p, _ := repo.GetByID(ctx, "p1")
		stock = p.Stock

		movs, _ := repo.ListAll(ctx, 10, 0)
		last := movs[len(movs)-1]
		assert.Equal(t, stock-before, last.Delta())
	}

	movs, _ := repo.ListAll(ctx, 10, 0)
	assert.Len(t, movs, len(entradas))
	assert.Equal(t, int64(7), stock)
}
