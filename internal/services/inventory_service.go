package services

import (
	"database/sql"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/repos"
	"stockroom/internal/validate"

	"github.com/shopspring/decimal"
)

type InventoryService struct {
	Inventories *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inventories: inv}
}

type InventoryInput struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Status        string           `json:"status"`
	InventoryType string           `json:"inventoryType"`
	Address       *string          `json:"address"`
	Area          decimal.Decimal  `json:"area"`
	AvailableArea *decimal.Decimal `json:"availableArea"`
}

// validateAreas enforces 0 < area and 0 <= availableArea <= area.
func validateAreas(area, available decimal.Decimal) error {
	if !area.IsPositive() {
		return BadRequest("Area must be greater than 0")
	}
	if available.IsNegative() {
		return BadRequest("Available area cannot be negative")
	}
	if available.GreaterThan(area) {
		return BadRequest("Available area cannot exceed total area")
	}
	return nil
}

func (s *InventoryService) Create(userID int64, in InventoryInput) (*domain.Inventory, error) {
	if _, ok := validate.Name(in.Name); !ok {
		return nil, BadRequest("Name is required and must be at most 100 characters")
	}
	status := in.Status
	if status == "" {
		status = domain.InventoryActive
	}
	if !validate.InventoryStatus(status) {
		return nil, BadRequest("Status must be ACTIVE or INACTIVE")
	}
	invType := in.InventoryType
	if invType == "" {
		invType = domain.TypeWarehouse
	}
	if !validate.InventoryType(invType) {
		return nil, BadRequest("Inventory type must be WAREHOUSE, STORE or ONLINE")
	}
	// Available area defaults to the full area at creation.
	available := in.Area
	if in.AvailableArea != nil {
		available = *in.AvailableArea
	}
	if err := validateAreas(in.Area, available); err != nil {
		return nil, err
	}

	inv := &domain.Inventory{
		Name:          in.Name,
		Description:   in.Description,
		UserID:        userID,
		Status:        status,
		InventoryType: invType,
		Address:       in.Address,
		Area:          in.Area,
		AvailableArea: available,
	}
	if err := s.Inventories.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) All() ([]domain.InventoryDTO, error) {
	invs, err := s.Inventories.All()
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inv.DTO())
	}
	return out, nil
}

func (s *InventoryService) ByUser(userID int64) ([]domain.InventoryDTO, error) {
	invs, err := s.Inventories.ByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inv.DTO())
	}
	return out, nil
}

func (s *InventoryService) ByID(id int64) (*domain.Inventory, error) {
	inv, err := s.Inventories.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("Inventory not found with ID: %d", id)
	}
	return inv, err
}

// owned loads the inventory and hides rows belonging to other users behind
// the same NotFound the missing-id path returns.
func (s *InventoryService) owned(id, userID int64) (*domain.Inventory, error) {
	inv, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if inv.UserID != userID {
		return nil, NotFound("Inventory not found with ID: %d", id)
	}
	return inv, nil
}

func (s *InventoryService) Update(id, userID int64, in InventoryInput) (*domain.Inventory, error) {
	inv, err := s.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if _, ok := validate.Name(in.Name); !ok {
		return nil, BadRequest("Name is required and must be at most 100 characters")
	}
	if !validate.InventoryStatus(in.Status) {
		return nil, BadRequest("Status must be ACTIVE or INACTIVE")
	}
	if !validate.InventoryType(in.InventoryType) {
		return nil, BadRequest("Inventory type must be WAREHOUSE, STORE or ONLINE")
	}
	available := in.Area
	if in.AvailableArea != nil {
		available = *in.AvailableArea
	}
	if err := validateAreas(in.Area, available); err != nil {
		return nil, err
	}

	inv.Name = in.Name
	inv.Description = in.Description
	inv.Status = in.Status
	inv.InventoryType = in.InventoryType
	inv.Address = in.Address
	inv.Area = in.Area
	inv.AvailableArea = available

	if err := s.Inventories.Update(inv); err != nil {
		return nil, err
	}
	return s.ByID(id)
}

func (s *InventoryService) Delete(id, userID int64) error {
	if _, err := s.owned(id, userID); err != nil {
		return err
	}
	n, err := s.Inventories.Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound("Inventory not found with ID: %d", id)
	}
	return nil
}
