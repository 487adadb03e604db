package repos

import (
	"stockroom/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id,name,description,sku,price,quantity,initial_quantity,area,status,inventory_id,user_id,expiration_date,production_date,created_at,updated_at`

func (r *ProductRepo) Create(p *domain.Product) error {
	res, err := r.db.Exec(`
		INSERT INTO products(name,description,sku,price,quantity,initial_quantity,area,status,
		                     inventory_id,user_id,expiration_date,production_date)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.SKU, p.Price.String(), p.Quantity, p.InitialQuantity, p.Area,
		p.Status, p.InventoryID, p.UserID, p.ExpirationDate, p.ProductionDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return r.db.Get(p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
}

func (r *ProductRepo) All() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) ByUser(userID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE user_id=? ORDER BY id`, userID)
	return out, err
}

func (r *ProductRepo) ByInventory(inventoryID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE inventory_id=? ORDER BY id`, inventoryID)
	return out, err
}

func (r *ProductRepo) ByID(id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET name=?, description=?, sku=?, price=?, quantity=?, area=?, status=?,
		    inventory_id=?, expiration_date=?, production_date=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		p.Name, p.Description, p.SKU, p.Price.String(), p.Quantity, p.Area, p.Status,
		p.InventoryID, p.ExpirationDate, p.ProductionDate, p.ID)
	return err
}

// Delete returns the number of rows removed so callers can distinguish a
// missing id without a prior read.
func (r *ProductRepo) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
