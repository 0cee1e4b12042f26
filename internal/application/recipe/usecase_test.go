package recipe_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianrc/panaderia-api/internal/application/dto"
	"github.com/julianrc/panaderia-api/internal/application/recipe"
	"github.com/julianrc/panaderia-api/internal/domain"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products = append(f.products, p); return nil }
func (f *fakeProductRepo) GetByID(id string, activeOnly bool) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id && !(activeOnly && p.DeletedAt != nil) {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if activeOnly && p.DeletedAt != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeProductRepo) Count(activeOnly bool) (int, error) {
	total := 0
	for _, p := range f.products {
		if activeOnly && p.DeletedAt != nil {
			continue
		}
		total++
	}
	return total, nil
}
func (f *fakeProductRepo) SoftDelete(id string, at time.Time) error {
	for _, p := range f.products {
		if p.ID == id {
			p.DeletedAt = &at
		}
	}
	return nil
}

type fakeRecipeRepo struct {
	rows []*entity.ProductStockItem
}

func (f *fakeRecipeRepo) Create(r *entity.ProductStockItem) error { f.rows = append(f.rows, r); return nil }
func (f *fakeRecipeRepo) Get(productID, stockItemID string, activeOnly bool) (*entity.ProductStockItem, error) {
	for _, r := range f.rows {
		if r.ProductID == productID && r.StockItemID == stockItemID && !(activeOnly && r.DeletedAt != nil) {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeRecipeRepo) ListByProduct(productID string, activeOnly bool) ([]*entity.ProductStockItem, error) {
	var out []*entity.ProductStockItem
	for _, r := range f.rows {
		if r.ProductID == productID && !(activeOnly && r.DeletedAt != nil) {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeRecipeRepo) Update(*entity.ProductStockItem) error { return nil }
func (f *fakeRecipeRepo) SoftDelete(productID, stockItemID string, at time.Time) error {
	for _, r := range f.rows {
		if r.ProductID == productID && r.StockItemID == stockItemID && r.DeletedAt == nil {
			r.DeletedAt = &at
		}
	}
	return nil
}
func (f *fakeRecipeRepo) CountActiveProductsByStockItem(string) (int, error) { return 0, nil }

type fakeItemRepo struct {
	items []*entity.StockItem
}

func (f *fakeItemRepo) Create(i *entity.StockItem) error { f.items = append(f.items, i); return nil }
func (f *fakeItemRepo) GetByID(id string, activeOnly bool) (*entity.StockItem, error) {
	for _, it := range f.items {
		if it.ID == id && !(activeOnly && it.IsDeleted()) {
			return it, nil
		}
	}
	return nil, nil
}
func (f *fakeItemRepo) GetByName(string, bool) (*entity.StockItem, error)    { return nil, nil }
func (f *fakeItemRepo) Update(*entity.StockItem) error                       { return nil }
func (f *fakeItemRepo) UpdateQuantity(string, decimal.Decimal, string) error { return nil }
func (f *fakeItemRepo) GetForUpdate(string) (*entity.StockItem, error)       { return nil, nil }
func (f *fakeItemRepo) List(bool, int, int) ([]*entity.StockItem, error)     { return f.items, nil }
func (f *fakeItemRepo) Count(bool) (int, error)                              { return len(f.items), nil }
func (f *fakeItemRepo) SoftDelete(string, time.Time) error                   { return nil }
func (f *fakeItemRepo) Restore(string) error                                 { return nil }

type fakeItemBrandRepo struct {
	rows []*entity.StockItemBrand
}

func (f *fakeItemBrandRepo) Create(r *entity.StockItemBrand) error { f.rows = append(f.rows, r); return nil }
func (f *fakeItemBrandRepo) Get(stockItemID, brandID string, activeOnly bool) (*entity.StockItemBrand, error) {
	for _, r := range f.rows {
		if r.StockItemID == stockItemID && r.BrandID == brandID && !(activeOnly && r.DeletedAt != nil) {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeItemBrandRepo) GetPreferred(stockItemID string) (*entity.StockItemBrand, error) {
	for _, r := range f.rows {
		if r.StockItemID == stockItemID && r.IsPreferred && r.DeletedAt == nil {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeItemBrandRepo) ListByStockItem(stockItemID string, activeOnly bool) ([]*entity.StockItemBrand, error) {
	return nil, nil
}
func (f *fakeItemBrandRepo) Update(*entity.StockItemBrand) error            { return nil }
func (f *fakeItemBrandRepo) ClearPreferred(string) error                    { return nil }
func (f *fakeItemBrandRepo) SetPreferred(string, string) error              { return nil }
func (f *fakeItemBrandRepo) SoftDelete(string, string, time.Time) error     { return nil }

type fakeBrandRepo struct {
	brands []*entity.Brand
}

func (f *fakeBrandRepo) Create(b *entity.Brand) error { f.brands = append(f.brands, b); return nil }
func (f *fakeBrandRepo) GetByID(id string, activeOnly bool) (*entity.Brand, error) {
	for _, b := range f.brands {
		if b.ID == id && !(activeOnly && b.DeletedAt != nil) {
			return b, nil
		}
	}
	return nil, nil
}
func (f *fakeBrandRepo) Update(*entity.Brand) error { return nil }
func (f *fakeBrandRepo) List(bool, int, int) ([]*entity.Brand, error) {
	return f.brands, nil
}
func (f *fakeBrandRepo) Count(bool) (int, error)            { return len(f.brands), nil }
func (f *fakeBrandRepo) SoftDelete(string, time.Time) error { return nil }
func (f *fakeBrandRepo) Restore(string) error               { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: pan dulce = 2 kg de harina ($100/kg preferida) + 3 l de leche ($50/l)
// ──────────────────────────────────────────────────────────────────────────────

type recipeFixture struct {
	uc            *recipe.RecipeUseCase
	productID     string
	flourID       string
	milkID        string
	flourBrandID  string
	milkBrandID   string
	itemBrandRepo *fakeItemBrandRepo
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()
	productRepo := &fakeProductRepo{}
	recipeRepo := &fakeRecipeRepo{}
	itemRepo := &fakeItemRepo{}
	itemBrandRepo := &fakeItemBrandRepo{}
	brandRepo := &fakeBrandRepo{}

	fx := &recipeFixture{
		uc:            recipe.NewRecipeUseCase(productRepo, recipeRepo, itemRepo, itemBrandRepo, brandRepo),
		productID:     uuid.New().String(),
		flourID:       uuid.New().String(),
		milkID:        uuid.New().String(),
		flourBrandID:  uuid.New().String(),
		milkBrandID:   uuid.New().String(),
		itemBrandRepo: itemBrandRepo,
	}

	require.NoError(t, productRepo.Create(&entity.Product{ID: fx.productID, Name: "Pan dulce", Active: true}))
	require.NoError(t, itemRepo.Create(&entity.StockItem{ID: fx.flourID, Name: "Harina de trigo", UnitOfMeasure: "kg"}))
	require.NoError(t, itemRepo.Create(&entity.StockItem{ID: fx.milkID, Name: "Leche entera", UnitOfMeasure: "l"}))
	require.NoError(t, brandRepo.Create(&entity.Brand{ID: fx.flourBrandID, Name: "Molinos del Sur", Active: true}))
	require.NoError(t, brandRepo.Create(&entity.Brand{ID: fx.milkBrandID, Name: "Lácteos El Prado", Active: true}))
	require.NoError(t, itemBrandRepo.Create(&entity.StockItemBrand{
		ID: uuid.New().String(), StockItemID: fx.flourID, BrandID: fx.flourBrandID,
		PriceBeforeTax: dec("84.03"), PriceAfterTax: dec("100"), IsPreferred: true,
	}))
	require.NoError(t, itemBrandRepo.Create(&entity.StockItemBrand{
		ID: uuid.New().String(), StockItemID: fx.milkID, BrandID: fx.milkBrandID,
		PriceBeforeTax: dec("42.02"), PriceAfterTax: dec("50"), IsPreferred: true,
	}))

	return fx
}

func (fx *recipeFixture) addIngredient(t *testing.T, stockItemID, qty string) {
	t.Helper()
	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID: stockItemID,
		Quantity:    dec(qty),
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRecipeUseCase_CostoConDesglosePorIngrediente(t *testing.T) {
	fx := newRecipeFixture(t)
	fx.addIngredient(t, fx.flourID, "2")
	fx.addIngredient(t, fx.milkID, "3")

	out, err := fx.uc.GetCost(fx.productID)
	require.NoError(t, err)

	assert.True(t, out.TotalCost.Equal(dec("350")), "2*100 + 3*50 = 350, obtenido %s", out.TotalCost)
	require.Len(t, out.Breakdown, 2)
	assert.Equal(t, "Harina de trigo", out.Breakdown[0].StockItemName)
	assert.Equal(t, "Molinos del Sur", out.Breakdown[0].BrandName)
	assert.True(t, out.Breakdown[0].LineCost.Equal(dec("200")))
	assert.True(t, out.Breakdown[1].LineCost.Equal(dec("150")))
}

func TestRecipeUseCase_OverrideDeMarcaEnLaReceta(t *testing.T) {
	fx := newRecipeFixture(t)

	// Marca alternativa de harina más barata, asociada pero no preferida
	cheapBrandID := uuid.New().String()
	require.NoError(t, fx.itemBrandRepo.Create(&entity.StockItemBrand{
		ID: uuid.New().String(), StockItemID: fx.flourID, BrandID: cheapBrandID,
		PriceBeforeTax: dec("67.23"), PriceAfterTax: dec("80"),
	}))

	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID:      fx.flourID,
		Quantity:         dec("2"),
		PreferredBrandID: &cheapBrandID,
	})
	require.NoError(t, err)

	out, err := fx.uc.GetCost(fx.productID)
	require.NoError(t, err)
	assert.True(t, out.TotalCost.Equal(dec("160")),
		"el override de la receta manda sobre la marca preferida: 2*80 = 160")
	assert.Equal(t, cheapBrandID, out.Breakdown[0].BrandID)
}

func TestRecipeUseCase_IngredienteSinPrecioEsUnpriceable(t *testing.T) {
	fx := newRecipeFixture(t)

	// Insumo sin marca asociada: imposible costearlo
	saltID := uuid.New().String()
	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID: saltID,
		Quantity:    dec("1"),
	})
	require.Error(t, err, "no se puede agregar un insumo inexistente")

	// Insumo real pero sin ninguna marca preferida ni override
	fx.addIngredient(t, fx.flourID, "2")
	for _, r := range fx.itemBrandRepo.rows {
		r.IsPreferred = false
	}

	_, err = fx.uc.GetCost(fx.productID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnpriceable,
		"sin precio resoluble el costo falla explícitamente, nunca asume cero")
}

func TestRecipeUseCase_OverrideBorradoCaeALaPreferida(t *testing.T) {
	fx := newRecipeFixture(t)

	cheapBrandID := uuid.New().String()
	require.NoError(t, fx.itemBrandRepo.Create(&entity.StockItemBrand{
		ID: uuid.New().String(), StockItemID: fx.flourID, BrandID: cheapBrandID,
		PriceBeforeTax: dec("67.23"), PriceAfterTax: dec("80"),
	}))
	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID:      fx.flourID,
		Quantity:         dec("2"),
		PreferredBrandID: &cheapBrandID,
	})
	require.NoError(t, err)

	// La asociación del override se elimina: el costo cae a la preferida
	now := time.Now()
	for _, r := range fx.itemBrandRepo.rows {
		if r.BrandID == cheapBrandID {
			r.DeletedAt = &now
		}
	}

	out, err := fx.uc.GetCost(fx.productID)
	require.NoError(t, err)
	assert.True(t, out.TotalCost.Equal(dec("200")), "cae a la preferida: 2*100 = 200")
}

func TestRecipeUseCase_AddIngredientValidaciones(t *testing.T) {
	fx := newRecipeFixture(t)

	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID: fx.flourID, Quantity: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe fallar")

	// Override con marca no asociada al insumo
	strangeBrand := uuid.New().String()
	_, err = fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID: fx.flourID, Quantity: dec("1"), PreferredBrandID: &strangeBrand,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la marca debe estar asociada al insumo")
}

func TestRecipeUseCase_IngredienteDuplicadoEsConflicto(t *testing.T) {
	fx := newRecipeFixture(t)
	fx.addIngredient(t, fx.flourID, "2")

	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID: fx.flourID, Quantity: dec("1"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRecipeUseCase_UpdateIngredientLimpiaOverrideConVacio(t *testing.T) {
	fx := newRecipeFixture(t)

	_, err := fx.uc.AddIngredient(fx.productID, dto.AddIngredientRequest{
		StockItemID:      fx.flourID,
		Quantity:         dec("2"),
		PreferredBrandID: &fx.flourBrandID,
	})
	require.NoError(t, err)

	empty := ""
	out, err := fx.uc.UpdateIngredient(fx.productID, fx.flourID, dto.UpdateIngredientRequest{
		PreferredBrandID: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, out.PreferredBrandID, "cadena vacía limpia el override de marca")
}

func TestRecipeUseCase_GetRecipeResuelveNombresYUnidades(t *testing.T) {
	fx := newRecipeFixture(t)
	fx.addIngredient(t, fx.flourID, "2")
	fx.addIngredient(t, fx.milkID, "3")

	out, err := fx.uc.GetRecipe(fx.productID)
	require.NoError(t, err)
	assert.Equal(t, "Pan dulce", out.Product.Name)
	require.Len(t, out.Ingredients, 2)
	assert.Equal(t, "Harina de trigo", out.Ingredients[0].StockItemName)
	assert.Equal(t, "kg", out.Ingredients[0].UnitOfMeasure)
	assert.Equal(t, "l", out.Ingredients[1].UnitOfMeasure)
}

func TestRecipeUseCase_RemoveIngredientSaleDelCosto(t *testing.T) {
	fx := newRecipeFixture(t)
	fx.addIngredient(t, fx.flourID, "2")
	fx.addIngredient(t, fx.milkID, "3")

	require.NoError(t, fx.uc.RemoveIngredient(fx.productID, fx.milkID))

	out, err := fx.uc.GetCost(fx.productID)
	require.NoError(t, err)
	assert.True(t, out.TotalCost.Equal(dec("200")), "solo queda la harina: 2*100")
	assert.Len(t, out.Breakdown, 1)
}

func TestRecipeUseCase_ListProductsReportaElTotal(t *testing.T) {
	fx := newRecipeFixture(t)

	_, err := fx.uc.CreateProduct(dto.CreateProductRequest{Name: "Croissant", Price: dec("4500")})
	require.NoError(t, err)
	_, err = fx.uc.CreateProduct(dto.CreateProductRequest{Name: "Baguette", Price: dec("3200")})
	require.NoError(t, err)

	// El fixture ya trae un producto
	out, err := fx.uc.ListProducts(dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 3, out.Page.Total)
}

func TestRecipeUseCase_ProductoInexistenteEsNotFound(t *testing.T) {
	fx := newRecipeFixture(t)

	_, err := fx.uc.GetCost(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fx.uc.GetRecipe(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
