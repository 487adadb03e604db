package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/domain"
	"stockroom/internal/services"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strptr(s string) *string { return &s }
func idptr(n int64) *int64    { return &n }

func product(name, price string, qty int64) domain.Product {
	return domain.Product{
		Name:            name,
		SKU:             name,
		Price:           dec(price),
		Quantity:        qty,
		InitialQuantity: qty,
		Status:          domain.ProductAvailable,
	}
}

func TestProductStatisticsEmptySet(t *testing.T) {
	stats := services.ComputeProductStatistics(nil, nil, time.Now())

	if stats.TotalProducts != 0 {
		t.Fatalf("totalProducts = %d", stats.TotalProducts)
	}
	if !stats.AveragePrice.IsZero() || !stats.AverageAreaUsed.IsZero() || !stats.AverageQuantityPerProduct.IsZero() {
		t.Fatalf("averages over empty set must be zero: %+v", stats)
	}
	if stats.MostExpensiveProduct != "None" || stats.LeastExpensiveProduct != "None" {
		t.Fatalf("extremes over empty set must be None: %+v", stats)
	}
}

func TestProductStatisticsAverages(t *testing.T) {
	products := []domain.Product{
		product("a", "10.00", 2),
		product("b", "20.00", 3),
		product("c", "15.00", 5),
	}
	stats := services.ComputeProductStatistics(products, nil, time.Now())

	if !stats.AveragePrice.Equal(dec("15.00")) {
		t.Fatalf("averagePrice = %s, want 15.00", stats.AveragePrice)
	}
	// 10*2 + 20*3 + 15*5 = 155
	if !stats.TotalPriceValue.Equal(dec("155")) {
		t.Fatalf("totalPriceValue = %s, want 155", stats.TotalPriceValue)
	}
	if stats.TotalQuantity != 10 || stats.TotalInitialQuantity != 10 {
		t.Fatalf("quantities = %d/%d, want 10/10", stats.TotalQuantity, stats.TotalInitialQuantity)
	}
	// 10/3 = 3.333... -> 3.33
	if !stats.AverageQuantityPerProduct.Equal(dec("3.33")) {
		t.Fatalf("averageQuantityPerProduct = %s, want 3.33", stats.AverageQuantityPerProduct)
	}
	if stats.MostExpensiveProduct != "b" || stats.LeastExpensiveProduct != "a" {
		t.Fatalf("extremes = %s/%s", stats.MostExpensiveProduct, stats.LeastExpensiveProduct)
	}
}

// Pins the rounding mode: the mean of two 1.005 prices must round half-up
// to 1.01, which float arithmetic would miss.
func TestProductStatisticsRoundingHalfUp(t *testing.T) {
	products := []domain.Product{
		product("a", "1.005", 1),
		product("b", "1.005", 1),
	}
	stats := services.ComputeProductStatistics(products, nil, time.Now())

	if !stats.AveragePrice.Equal(dec("1.01")) {
		t.Fatalf("averagePrice = %s, want 1.01", stats.AveragePrice)
	}
}

func TestProductStatisticsGroupingsAndExpiry(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	a := product("a", "5", 1)
	a.InventoryID = idptr(1)
	a.ExpirationDate = strptr(yesterday)
	b := product("b", "6", 1)
	b.InventoryID = idptr(1)
	b.ExpirationDate = strptr(tomorrow)
	c := product("c", "7", 1)
	c.Status = domain.ProductUnavailable
	c.Area = decimal.NullDecimal{Decimal: dec("12.5"), Valid: true}

	names := map[int64]string{1: "Main warehouse"}
	stats := services.ComputeProductStatistics([]domain.Product{a, b, c}, names, time.Now())

	if stats.TotalExpiredProducts != 1 {
		t.Fatalf("totalExpiredProducts = %d, want 1", stats.TotalExpiredProducts)
	}
	if stats.TotalProductsWithoutInventories != 1 {
		t.Fatalf("totalProductsWithoutInventories = %d, want 1", stats.TotalProductsWithoutInventories)
	}
	if stats.InventoryCounts["Main warehouse"] != 2 {
		t.Fatalf("inventoryCounts = %v", stats.InventoryCounts)
	}
	if stats.StatusCounts[domain.ProductAvailable] != 2 || stats.StatusCounts[domain.ProductUnavailable] != 1 {
		t.Fatalf("statusCounts = %v", stats.StatusCounts)
	}
	// null area contributes 0
	if !stats.TotalAreaUsed.Equal(dec("12.5")) {
		t.Fatalf("totalAreaUsed = %s, want 12.5", stats.TotalAreaUsed)
	}
}

func inventory(id int64, area, available string) domain.Inventory {
	return domain.Inventory{
		ID:            id,
		Name:          "inv",
		Status:        domain.InventoryActive,
		InventoryType: domain.TypeWarehouse,
		Area:          dec(area),
		AvailableArea: dec(available),
	}
}

func TestInventoryStatisticsEmptySet(t *testing.T) {
	stats := services.ComputeInventoryStatistics(nil, nil, time.Now())
	if stats.TotalInventories != 0 {
		t.Fatalf("totalInventories = %d", stats.TotalInventories)
	}
	if !stats.AverageUtilization.IsZero() || !stats.AverageProductsPerInventory.IsZero() {
		t.Fatalf("averages over empty set must be zero: %+v", stats)
	}
}

func TestInventoryStatisticsUtilization(t *testing.T) {
	// area=100, available=40 -> utilization 1 - 0.40 = 0.60
	stats := services.ComputeInventoryStatistics([]domain.Inventory{inventory(1, "100", "40")}, nil, time.Now())

	if !stats.AverageUtilization.Equal(dec("0.6")) {
		t.Fatalf("averageUtilization = %s, want 0.6", stats.AverageUtilization)
	}
	if stats.EmptyInventories != 1 {
		t.Fatalf("emptyInventories = %d, want 1", stats.EmptyInventories)
	}
}

func TestInventoryStatisticsContents(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	full := inventory(1, "100", "0")
	addr := "12 Dock Rd"
	full.Address = &addr
	inactive := inventory(2, "50", "50")
	inactive.Status = domain.InventoryInactive
	inactive.InventoryType = domain.TypeStore

	expired := product("expired", "5", 3) // qty 3 < 10 -> low stock too
	expired.InventoryID = idptr(1)
	expired.ExpirationDate = strptr(yesterday)
	stocked := product("stocked", "5", 50)
	stocked.InventoryID = idptr(1)

	stats := services.ComputeInventoryStatistics(
		[]domain.Inventory{full, inactive},
		[]domain.Product{expired, stocked},
		time.Now(),
	)

	if stats.TotalInventories != 2 {
		t.Fatalf("totalInventories = %d", stats.TotalInventories)
	}
	if !stats.TotalArea.Equal(dec("150")) || !stats.TotalAvailableArea.Equal(dec("50")) {
		t.Fatalf("areas = %s/%s", stats.TotalArea, stats.TotalAvailableArea)
	}
	if stats.InventoriesWithExpiredProducts != 1 {
		t.Fatalf("inventoriesWithExpiredProducts = %d, want 1", stats.InventoriesWithExpiredProducts)
	}
	if stats.InventoriesWithLowStock != 1 {
		t.Fatalf("inventoriesWithLowStock = %d, want 1", stats.InventoriesWithLowStock)
	}
	if stats.EmptyInventories != 1 {
		t.Fatalf("emptyInventories = %d, want 1", stats.EmptyInventories)
	}
	if stats.FullyStockedInventories != 1 {
		t.Fatalf("fullyStockedInventories = %d, want 1", stats.FullyStockedInventories)
	}
	if stats.InventoriesWithoutLocations != 1 {
		t.Fatalf("inventoriesWithoutLocations = %d, want 1", stats.InventoriesWithoutLocations)
	}
	if stats.StatusCounts[domain.InventoryActive] != 1 || stats.TypeCounts[domain.TypeStore] != 1 {
		t.Fatalf("groupings = %v / %v", stats.StatusCounts, stats.TypeCounts)
	}
	// 2 contained products / 2 inventories = 1.00
	if !stats.AverageProductsPerInventory.Equal(dec("1")) {
		t.Fatalf("averageProductsPerInventory = %s, want 1", stats.AverageProductsPerInventory)
	}
}
