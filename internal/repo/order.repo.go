package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type OrderRepo interface {
	// InsertOrder writes the whole order graph (order, details,
	// delivery, payments) on the caller's transaction.
	InsertOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) InsertOrder(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, order_number, status, subtotal, total_discount, total_final, voucher_id, order_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID,
		order.OrderNumber,
		order.Status,
		order.Subtotal,
		order.TotalDiscount,
		order.TotalFinal,
		order.VoucherID,
		order.OrderDate,
	)
	if err != nil {
		return err
	}

	for _, detail := range order.OrderDetails {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_details (id, order_id, variant_id, quantity, price_at_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			detail.ID, detail.OrderID, detail.VariantID, detail.Quantity, detail.PriceAtOrder,
		)
		if err != nil {
			return err
		}
	}

	if order.Delivery != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO deliveries (id, order_id, address, recipient_name, recipient_phone, delivery_fee, status, delivery_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.Delivery.ID,
			order.Delivery.OrderID,
			order.Delivery.Address,
			order.Delivery.RecipientName,
			order.Delivery.RecipientPhone,
			order.Delivery.DeliveryFee,
			order.Delivery.Status,
			order.Delivery.DeliveryDate,
		)
		if err != nil {
			return err
		}
	}

	for _, payment := range order.Payments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (id, order_id, payment_method, amount, payment_date, status)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			payment.ID, payment.OrderID, payment.PaymentMethod, payment.Amount, payment.PaymentDate, payment.Status,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	var voucherID uuid.NullUUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id, order_number, status, subtotal, total_discount, total_final, voucher_id, order_date
		 FROM orders WHERE id = $1`,
		id,
	).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.Status,
		&order.Subtotal,
		&order.TotalDiscount,
		&order.TotalFinal,
		&voucherID,
		&order.OrderDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}
	if voucherID.Valid {
		order.VoucherID = &voucherID.UUID
	}
	if err := r.loadRelations(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_number, status, subtotal, total_discount, total_final, voucher_id, order_date
		 FROM orders ORDER BY order_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var voucherID uuid.NullUUID
		if err := rows.Scan(
			&order.ID,
			&order.OrderNumber,
			&order.Status,
			&order.Subtotal,
			&order.TotalDiscount,
			&order.TotalFinal,
			&voucherID,
			&order.OrderDate,
		); err != nil {
			return nil, err
		}
		if voucherID.Valid {
			order.VoucherID = &voucherID.UUID
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadRelations(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepo) loadRelations(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.id, d.order_id, d.variant_id, d.quantity, d.price_at_order,
		        v.id, v.product_id, v.name, v.sku, v.price, v.stock,
		        p.id, p.name, p.description, p.pre_order_rule
		 FROM order_details d
		 JOIN product_variants v ON v.id = d.variant_id
		 JOIN products p ON p.id = v.product_id
		 WHERE d.order_id = $1`,
		order.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.OrderDetails = nil
	for rows.Next() {
		var detail domain.OrderDetail
		var variant domain.ProductVariant
		var product domain.Product
		var rawRule []byte
		if err := rows.Scan(
			&detail.ID,
			&detail.OrderID,
			&detail.VariantID,
			&detail.Quantity,
			&detail.PriceAtOrder,
			&variant.ID,
			&variant.ProductID,
			&variant.Name,
			&variant.SKU,
			&variant.Price,
			&variant.Stock,
			&product.ID,
			&product.Name,
			&product.Description,
			&rawRule,
		); err != nil {
			return err
		}
		product.PreOrderRule = domain.ParsePreOrderRule(rawRule)
		variant.Product = &product
		detail.Variant = &variant
		order.OrderDetails = append(order.OrderDetails, detail)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var delivery domain.Delivery
	err = r.db.QueryRowContext(ctx,
		`SELECT id, order_id, address, recipient_name, recipient_phone, delivery_fee, status, delivery_date
		 FROM deliveries WHERE order_id = $1`,
		order.ID,
	).Scan(
		&delivery.ID,
		&delivery.OrderID,
		&delivery.Address,
		&delivery.RecipientName,
		&delivery.RecipientPhone,
		&delivery.DeliveryFee,
		&delivery.Status,
		&delivery.DeliveryDate,
	)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil {
		order.Delivery = &delivery
	}

	payRows, err := r.db.QueryContext(ctx,
		`SELECT id, order_id, payment_method, amount, payment_date, status
		 FROM payments WHERE order_id = $1 ORDER BY payment_date`,
		order.ID,
	)
	if err != nil {
		return err
	}
	defer payRows.Close()

	order.Payments = nil
	for payRows.Next() {
		var payment domain.Payment
		if err := payRows.Scan(
			&payment.ID,
			&payment.OrderID,
			&payment.PaymentMethod,
			&payment.Amount,
			&payment.PaymentDate,
			&payment.Status,
		); err != nil {
			return err
		}
		order.Payments = append(order.Payments, payment)
	}
	if err := payRows.Err(); err != nil {
		return err
	}

	if order.VoucherID != nil {
		var voucher domain.Voucher
		err = r.db.QueryRowContext(ctx,
			`SELECT id, code, discount_type, discount_value, valid_until, stock FROM vouchers WHERE id = $1`,
			*order.VoucherID,
		).Scan(
			&voucher.ID,
			&voucher.Code,
			&voucher.DiscountType,
			&voucher.DiscountValue,
			&voucher.ValidUntil,
			&voucher.Stock,
		)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			order.Voucher = &voucher
		}
	}

	return nil
}
