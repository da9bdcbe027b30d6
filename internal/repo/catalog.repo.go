package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// ErrStockConflict is returned when a guarded decrement matches no row,
// meaning a concurrent order consumed the stock after the pre-check.
var ErrStockConflict = errors.New("stock changed concurrently")

type CatalogRepo interface {
	FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductVariant, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, variantID uuid.UUID, quantity int) error
	FindVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error)
	DecrementVoucherStock(ctx context.Context, tx *sql.Tx, voucherID uuid.UUID) error
}

type catalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepo {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.ProductVariant, error) {
	query := `
		SELECT v.id, v.product_id, v.name, v.sku, v.price, v.stock,
		       p.id, p.name, p.description, p.pre_order_rule
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = ANY($1::uuid[])
	`
	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		var p domain.Product
		var rawRule []byte
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.Name,
			&v.SKU,
			&v.Price,
			&v.Stock,
			&p.ID,
			&p.Name,
			&p.Description,
			&rawRule,
		); err != nil {
			return nil, err
		}
		p.PreOrderRule = domain.ParsePreOrderRule(rawRule)
		v.Product = &p
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// DecrementStock only succeeds while enough stock remains. The guard in
// the WHERE clause is what keeps committed stock non-negative under
// concurrent checkouts: the second transaction blocks on the row lock,
// re-evaluates the predicate after the first commits, and matches
// nothing.
func (r *catalogRepo) DecrementStock(ctx context.Context, tx *sql.Tx, variantID uuid.UUID, quantity int) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE product_variants SET stock = stock - $2 WHERE id = $1 AND stock >= $2",
		variantID, quantity,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *catalogRepo) FindVoucherByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	var v domain.Voucher
	err := r.db.QueryRowContext(ctx,
		"SELECT id, code, discount_type, discount_value, valid_until, stock FROM vouchers WHERE code = $1",
		code,
	).Scan(
		&v.ID,
		&v.Code,
		&v.DiscountType,
		&v.DiscountValue,
		&v.ValidUntil,
		&v.Stock,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}
	return &v, nil
}

func (r *catalogRepo) DecrementVoucherStock(ctx context.Context, tx *sql.Tx, voucherID uuid.UUID) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE vouchers SET stock = stock - 1 WHERE id = $1 AND stock > 0",
		voucherID,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrStockConflict
	}
	return nil
}
