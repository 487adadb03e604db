package services

import (
	"database/sql"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"github.com/shopspring/decimal"
)

type ProductService struct {
	Products    *repos.ProductRepo
	Inventories *repos.InventoryRepo
}

func NewProductService(products *repos.ProductRepo, inventories *repos.InventoryRepo) *ProductService {
	return &ProductService{Products: products, Inventories: inventories}
}

type ProductInput struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	SKU             string              `json:"sku"`
	Price           decimal.Decimal     `json:"price"`
	Quantity        int64               `json:"quantity"`
	InitialQuantity *int64              `json:"initialQuantity"`
	Area            decimal.NullDecimal `json:"area"`
	Status          string              `json:"status"`
	InventoryID     *int64              `json:"inventoryId"`
	ExpirationDate  *string             `json:"expirationDate"`
	ProductionDate  *string             `json:"productionDate"`
}

func (s *ProductService) validate(in *ProductInput) error {
	if _, ok := validate.Name(in.Name); !ok {
		return BadRequest("Name is required and must be at most 100 characters")
	}
	if _, ok := validate.SKU(in.SKU); !ok {
		return BadRequest("SKU is required and must be at most 50 characters")
	}
	if !in.Price.IsPositive() {
		return BadRequest("Price must be greater than 0")
	}
	if in.Quantity < 0 {
		return BadRequest("Quantity cannot be negative")
	}
	if in.Area.Valid && in.Area.Decimal.IsNegative() {
		return BadRequest("Area cannot be negative")
	}
	if in.Status == "" {
		in.Status = domain.ProductAvailable
	}
	if !validate.ProductStatus(in.Status) {
		return BadRequest("Status must be AVAILABLE or UNAVAILABLE")
	}
	if in.ExpirationDate != nil && !validate.Date(*in.ExpirationDate) {
		return BadRequest("Expiration date must be a YYYY-MM-DD date")
	}
	if in.ProductionDate != nil && !validate.Date(*in.ProductionDate) {
		return BadRequest("Production date must be a YYYY-MM-DD date")
	}
	return nil
}

// resolveInventory confirms a referenced inventory exists before the product
// row is written.
func (s *ProductService) resolveInventory(id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.Inventories.ByID(*id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NotFound("Inventory not found with ID: %d", *id)
		}
		return err
	}
	return nil
}

func (s *ProductService) Create(userID int64, in ProductInput) (*domain.Product, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	if err := s.resolveInventory(in.InventoryID); err != nil {
		return nil, err
	}
	// Initial quantity is captured once, at creation.
	initial := in.Quantity
	if in.InitialQuantity != nil {
		initial = *in.InitialQuantity
	}

	p := &domain.Product{
		Name:            in.Name,
		Description:     in.Description,
		SKU:             in.SKU,
		Price:           in.Price,
		Quantity:        in.Quantity,
		InitialQuantity: initial,
		Area:            in.Area,
		Status:          in.Status,
		InventoryID:     in.InventoryID,
		UserID:          userID,
		ExpirationDate:  in.ExpirationDate,
		ProductionDate:  in.ProductionDate,
	}
	if err := s.Products.Create(p); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, Conflict("SKU is already in use.")
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) All() ([]domain.ProductDTO, error) {
	products, err := s.Products.All()
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

func (s *ProductService) ByUser(userID int64) ([]domain.ProductDTO, error) {
	products, err := s.Products.ByUser(userID)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

func (s *ProductService) ByInventory(inventoryID int64) ([]domain.ProductDTO, error) {
	products, err := s.Products.ByInventory(inventoryID)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

func toProductDTOs(products []domain.Product) []domain.ProductDTO {
	out := make([]domain.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, p.DTO())
	}
	return out
}

func (s *ProductService) ByID(id int64) (*domain.Product, error) {
	p, err := s.Products.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Product not found with ID: %d", id)
	}
	return p, err
}

func (s *ProductService) owned(id, userID int64) (*domain.Product, error) {
	p, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, NotFound("Product not found with ID: %d", id)
	}
	return p, nil
}

func (s *ProductService) Update(id, userID int64, in ProductInput) (*domain.Product, error) {
	p, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	if err := s.resolveInventory(in.InventoryID); err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.SKU = in.SKU
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Area = in.Area
	p.Status = in.Status
	p.InventoryID = in.InventoryID
	p.ExpirationDate = in.ExpirationDate
	p.ProductionDate = in.ProductionDate

	if err := s.Products.Update(p); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, Conflict("SKU is already in use.")
		}
		return nil, err
	}
	return s.ByID(id)
}

func (s *ProductService) Delete(id, userID int64) error {
	if _, err := s.owned(id, userID); err != nil {
		return err
	}
	n, err := s.Products.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound("Product not found with ID: %d", id)
	}
	return nil
}
