package services

import (
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/repos"

	"github.com/shopspring/decimal"
)

// lowStockThreshold marks an inventory as low on stock when any contained
// product's quantity drops below it.
const lowStockThreshold = 10

type ProductStatistics struct {
	TotalProducts                   int64            `json:"totalProducts"`
	TotalPriceValue                 decimal.Decimal  `json:"totalPriceValue"`
	TotalAreaUsed                   decimal.Decimal  `json:"totalAreaUsed"`
	AveragePrice                    decimal.Decimal  `json:"averagePrice"`
	AverageAreaUsed                 decimal.Decimal  `json:"averageAreaUsed"`
	StatusCounts                    map[string]int64 `json:"statusCounts"`
	InventoryCounts                 map[string]int64 `json:"inventoryCounts"`
	TotalExpiredProducts            int64            `json:"totalExpiredProducts"`
	TotalProductsWithoutInventories int64            `json:"totalProductsWithoutInventories"`
	TotalQuantity                   int64            `json:"totalQuantity"`
	TotalInitialQuantity            int64            `json:"totalInitialQuantity"`
	AverageQuantityPerProduct       decimal.Decimal  `json:"averageQuantityPerProduct"`
	MostExpensiveProduct            string           `json:"mostExpensiveProduct"`
	LeastExpensiveProduct           string           `json:"leastExpensiveProduct"`
}

type InventoryStatistics struct {
	TotalInventories               int64            `json:"totalInventories"`
	TotalArea                      decimal.Decimal  `json:"totalArea"`
	TotalAvailableArea             decimal.Decimal  `json:"totalAvailableArea"`
	StatusCounts                   map[string]int64 `json:"statusCounts"`
	TypeCounts                     map[string]int64 `json:"typeCounts"`
	AverageUtilization             decimal.Decimal  `json:"averageUtilization"`
	InventoriesWithExpiredProducts int64            `json:"inventoriesWithExpiredProducts"`
	AverageProductsPerInventory    decimal.Decimal  `json:"averageProductsPerInventory"`
	InventoriesWithLowStock        int64            `json:"inventoriesWithLowStock"`
	EmptyInventories               int64            `json:"emptyInventories"`
	FullyStockedInventories        int64            `json:"fullyStockedInventories"`
	InventoriesWithoutLocations    int64            `json:"inventoriesWithoutLocations"`
}

// StatsService recomputes descriptive metrics over full collection snapshots
// on every request; nothing is cached or maintained incrementally.
type StatsService struct {
	Products    *repos.ProductRepo
	Inventories *repos.InventoryRepo
}

func NewStatsService(products *repos.ProductRepo, inventories *repos.InventoryRepo) *StatsService {
	return &StatsService{Products: products, Inventories: inventories}
}

func (s *StatsService) ProductStatistics() (*ProductStatistics, error) {
	products, err := s.Products.All()
	if err != nil {
		return nil, err
	}
	inventories, err := s.Inventories.All()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(inventories))
	for _, inv := range inventories {
		names[inv.ID] = inv.Name
	}
	stats := ComputeProductStatistics(products, names, time.Now())
	return &stats, nil
}

func (s *StatsService) InventoryStatistics() (*InventoryStatistics, error) {
	inventories, err := s.Inventories.All()
	if err != nil {
		return nil, err
	}
	products, err := s.Products.All()
	if err != nil {
		return nil, err
	}
	stats := ComputeInventoryStatistics(inventories, products, time.Now())
	return &stats, nil
}

// expiredBefore treats a date-only value as expired once it is strictly in
// the past relative to now.
func expiredBefore(date *string, now time.Time) bool {
	if date == nil {
		return false
	}
	t, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return false
	}
	return t.Before(now)
}

func ComputeProductStatistics(products []domain.Product, inventoryNames map[int64]string, now time.Time) ProductStatistics {
	stats := ProductStatistics{
		TotalProducts:         int64(len(products)),
		StatusCounts:          map[string]int64{},
		InventoryCounts:       map[string]int64{},
		MostExpensiveProduct:  "None",
		LeastExpensiveProduct: "None",
	}

	var priceSum decimal.Decimal
	var most, least *domain.Product
	for i := range products {
		p := &products[i]

		stats.TotalPriceValue = stats.TotalPriceValue.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
		priceSum = priceSum.Add(p.Price)
		if p.Area.Valid {
			stats.TotalAreaUsed = stats.TotalAreaUsed.Add(p.Area.Decimal)
		}
		stats.StatusCounts[p.Status]++
		if p.InventoryID != nil {
			stats.InventoryCounts[inventoryNames[*p.InventoryID]]++
		} else {
			stats.TotalProductsWithoutInventories++
		}
		if expiredBefore(p.ExpirationDate, now) {
			stats.TotalExpiredProducts++
		}
		stats.TotalQuantity += p.Quantity
		stats.TotalInitialQuantity += p.InitialQuantity

		// Ties keep the first product in iteration order.
		if most == nil || p.Price.GreaterThan(most.Price) {
			most = p
		}
		if least == nil || p.Price.LessThan(least.Price) {
			least = p
		}
	}

	if stats.TotalProducts > 0 {
		n := decimal.NewFromInt(stats.TotalProducts)
		stats.AveragePrice = priceSum.Div(n).Round(2)
		stats.AverageAreaUsed = stats.TotalAreaUsed.Div(n).Round(2)
		stats.AverageQuantityPerProduct = decimal.NewFromInt(stats.TotalQuantity).Div(n).Round(2)
		stats.MostExpensiveProduct = most.Name
		stats.LeastExpensiveProduct = least.Name
	}
	return stats
}

func ComputeInventoryStatistics(inventories []domain.Inventory, products []domain.Product, now time.Time) InventoryStatistics {
	stats := InventoryStatistics{
		TotalInventories: int64(len(inventories)),
		StatusCounts:     map[string]int64{},
		TypeCounts:       map[string]int64{},
	}

	type contents struct {
		count    int64
		expired  bool
		lowStock bool
	}
	byInventory := map[int64]*contents{}
	for i := range products {
		p := &products[i]
		if p.InventoryID == nil {
			continue
		}
		c := byInventory[*p.InventoryID]
		if c == nil {
			c = &contents{}
			byInventory[*p.InventoryID] = c
		}
		c.count++
		if expiredBefore(p.ExpirationDate, now) {
			c.expired = true
		}
		if p.Quantity < lowStockThreshold {
			c.lowStock = true
		}
	}

	var utilizationSum decimal.Decimal
	var containedProducts int64
	for i := range inventories {
		inv := &inventories[i]

		stats.TotalArea = stats.TotalArea.Add(inv.Area)
		stats.TotalAvailableArea = stats.TotalAvailableArea.Add(inv.AvailableArea)
		stats.StatusCounts[inv.Status]++
		stats.TypeCounts[inv.InventoryType]++

		// Area > 0 is enforced at write time; a zero row contributes zero
		// utilization rather than dividing by it.
		if inv.Area.IsPositive() {
			utilizationSum = utilizationSum.Add(decimal.NewFromInt(1).Sub(inv.AvailableArea.Div(inv.Area)))
		}
		if inv.AvailableArea.IsZero() {
			stats.FullyStockedInventories++
		}
		if inv.Address == nil || *inv.Address == "" {
			stats.InventoriesWithoutLocations++
		}

		c := byInventory[inv.ID]
		if c == nil || c.count == 0 {
			stats.EmptyInventories++
			continue
		}
		containedProducts += c.count
		if c.expired {
			stats.InventoriesWithExpiredProducts++
		}
		if c.lowStock {
			stats.InventoriesWithLowStock++
		}
	}

	if stats.TotalInventories > 0 {
		n := decimal.NewFromInt(stats.TotalInventories)
		stats.AverageUtilization = utilizationSum.Div(n).Round(2)
		stats.AverageProductsPerInventory = decimal.NewFromInt(containedProducts).Div(n).Round(2)
	}
	return stats
}
