package domain

import "github.com/shopspring/decimal"

// Inventory status and type enums, stored as their string names.
const (
	InventoryActive   = "ACTIVE"
	InventoryInactive = "INACTIVE"

	TypeWarehouse = "WAREHOUSE"
	TypeStore     = "STORE"
	TypeOnline    = "ONLINE"

	ProductAvailable   = "AVAILABLE"
	ProductUnavailable = "UNAVAILABLE"
)

type Inventory struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	UserID        int64           `db:"user_id"`
	Status        string          `db:"status"`
	InventoryType string          `db:"inventory_type"`
	Address       *string         `db:"address"`
	Area          decimal.Decimal `db:"area"`
	AvailableArea decimal.Decimal `db:"available_area"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     *string         `db:"updated_at"`
}

type Product struct {
	ID              int64               `db:"id"`
	Name            string              `db:"name"`
	Description     string              `db:"description"`
	SKU             string              `db:"sku"`
	Price           decimal.Decimal     `db:"price"`
	Quantity        int64               `db:"quantity"`
	InitialQuantity int64               `db:"initial_quantity"`
	Area            decimal.NullDecimal `db:"area"`
	Status          string              `db:"status"`
	InventoryID     *int64              `db:"inventory_id"`
	UserID          int64               `db:"user_id"`
	ExpirationDate  *string             `db:"expiration_date"`
	ProductionDate  *string             `db:"production_date"`
	CreatedAt       string              `db:"created_at"`
	UpdatedAt       *string             `db:"updated_at"`
}

type InventoryDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	UserID        int64           `json:"userId"`
	Status        string          `json:"status"`
	InventoryType string          `json:"inventoryType"`
	Address       *string         `json:"address"`
	Area          decimal.Decimal `json:"area"`
	AvailableArea decimal.Decimal `json:"availableArea"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     *string         `json:"updatedAt"`
}

func (i Inventory) DTO() InventoryDTO {
	return InventoryDTO{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		UserID:        i.UserID,
		Status:        i.Status,
		InventoryType: i.InventoryType,
		Address:       i.Address,
		Area:          i.Area,
		AvailableArea: i.AvailableArea,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

type ProductDTO struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	SKU             string              `json:"sku"`
	Price           decimal.Decimal     `json:"price"`
	Quantity        int64               `json:"quantity"`
	InitialQuantity int64               `json:"initialQuantity"`
	Area            decimal.NullDecimal `json:"area"`
	Status          string              `json:"status"`
	InventoryID     *int64              `json:"inventoryId"`
	UserID          int64               `json:"userId"`
	ExpirationDate  *string             `json:"expirationDate"`
	ProductionDate  *string             `json:"productionDate"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       *string             `json:"updatedAt"`
}

func (p Product) DTO() ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Price:           p.Price,
		Quantity:        p.Quantity,
		InitialQuantity: p.InitialQuantity,
		Area:            p.Area,
		Status:          p.Status,
		InventoryID:     p.InventoryID,
		UserID:          p.UserID,
		ExpirationDate:  p.ExpirationDate,
		ProductionDate:  p.ProductionDate,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
