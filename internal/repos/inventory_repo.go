package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventoryCols = `id,name,description,user_id,status,inventory_type,address,area,available_area,created_at,updated_at`

func (r *InventoryRepo) Create(inv *domain.Inventory) error {
	res, err := r.db.Exec(`
		INSERT INTO inventories(name,description,user_id,status,inventory_type,address,area,available_area)
		VALUES(?,?,?,?,?,?,?,?)`,
		inv.Name, inv.Description, inv.UserID, inv.Status, inv.InventoryType, inv.Address,
		inv.Area.String(), inv.AvailableArea.String())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = id
	return r.db.Get(inv, `SELECT `+inventoryCols+` FROM inventories WHERE id=?`, id)
}

func (r *InventoryRepo) All() ([]domain.Inventory, error) {
	var out []domain.Inventory
	err := r.db.Select(&out, `SELECT `+inventoryCols+` FROM inventories ORDER BY id`)
	return out, err
}

func (r *InventoryRepo) ByUser(userID int64) ([]domain.Inventory, error) {
	var out []domain.Inventory
	err := r.db.Select(&out, `SELECT `+inventoryCols+` FROM inventories WHERE user_id=? ORDER BY id`, userID)
	return out, err
}

func (r *InventoryRepo) ByID(id int64) (*domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.Get(&inv, `SELECT `+inventoryCols+` FROM inventories WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InventoryRepo) Update(inv *domain.Inventory) error {
	_, err := r.db.Exec(`
		UPDATE inventories
		SET name=?, description=?, status=?, inventory_type=?, address=?, area=?, available_area=?,
		    updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		inv.Name, inv.Description, inv.Status, inv.InventoryType, inv.Address,
		inv.Area.String(), inv.AvailableArea.String(), inv.ID)
	return err
}

// Delete detaches contained products (inventory_id NULL) before removing the
// row. Returns the number of inventory rows removed.
func (r *InventoryRepo) Delete(id int64) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE products SET inventory_id=NULL, updated_at=CURRENT_TIMESTAMP WHERE inventory_id=?`, id); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM inventories WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	return n, tx.Commit()
}
