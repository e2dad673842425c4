package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/entities"
	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		EnsureUserSchema(ctx context.Context, namespace string) error
		InsertInvoiceAndItems(ctx context.Context, namespace string, invoice *entities.Invoice, items []entities.LineItem) (int64, error)
		GetInvoiceByFileName(ctx context.Context, namespace string, fileName string) (*entities.Invoice, []entities.LineItem, error)
		ListAll(ctx context.Context, namespace string) ([]entities.Invoice, []entities.LineItem, error)
		CountInvoices(ctx context.Context, namespace string) (int64, error)
		DeleteByFileName(ctx context.Context, namespace string, fileName string) error
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// EnsureUserSchema lazily creates the two per-user tables. Idempotent; called
// before every write path.
func (r *receiptRepository) EnsureUserSchema(ctx context.Context, namespace string) error {
	if !ValidNamespace(namespace) {
		return domain.ErrInvalidNamespace
	}

	createInvoices := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		invoice_file_name TEXT,
		category TEXT,
		invoice_number TEXT,
		invoice_date DATE,
		due_date DATE,
		seller_information TEXT,
		buyer_information TEXT,
		purchase_order_number TEXT,
		subtotal NUMERIC,
		service_charges NUMERIC,
		net_total NUMERIC,
		discount TEXT,
		tax NUMERIC,
		tax_rate TEXT,
		shipping_costs NUMERIC,
		grand_total NUMERIC,
		currency TEXT,
		payment_terms TEXT,
		payment_method TEXT,
		bank_information TEXT,
		invoice_notes TEXT,
		shipping_address TEXT,
		billing_address TEXT
	)`, invoiceTable(namespace))

	createLineItems := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		invoice_file_name TEXT,
		invoice_id BIGINT REFERENCES %s(id),
		product_service TEXT,
		quantity INTEGER,
		unit_price NUMERIC
	)`, lineItemTable(namespace), invoiceTable(namespace))

	if err := r.db.WithContext(ctx).Exec(createInvoices).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(createLineItems).Error
}

// InsertInvoiceAndItems persists one header row plus its line items as a
// single transaction and returns the generated header id. A failure on any
// item rolls the header back.
func (r *receiptRepository) InsertInvoiceAndItems(ctx context.Context, namespace string, invoice *entities.Invoice, items []entities.LineItem) (int64, error) {
	if !ValidNamespace(namespace) {
		return 0, domain.ErrInvalidNamespace
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(invoiceTable(namespace)).Create(invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].InvoiceID = invoice.ID
			items[i].InvoiceFileName = invoice.InvoiceFileName
			if err := tx.Table(lineItemTable(namespace)).Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return invoice.ID, nil
}

func (r *receiptRepository) GetInvoiceByFileName(ctx context.Context, namespace string, fileName string) (*entities.Invoice, []entities.LineItem, error) {
	if !ValidNamespace(namespace) {
		return nil, nil, domain.ErrInvalidNamespace
	}

	var invoice entities.Invoice
	err := r.db.WithContext(ctx).Table(invoiceTable(namespace)).
		Where("invoice_file_name = ?", fileName).
		Order("id asc").
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isUndefinedTable(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []entities.LineItem
	if err := r.db.WithContext(ctx).Table(lineItemTable(namespace)).
		Where("invoice_file_name = ?", fileName).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}

	return &invoice, items, nil
}

func (r *receiptRepository) ListAll(ctx context.Context, namespace string) ([]entities.Invoice, []entities.LineItem, error) {
	if !ValidNamespace(namespace) {
		return nil, nil, domain.ErrInvalidNamespace
	}

	var invoices []entities.Invoice
	if err := r.db.WithContext(ctx).Table(invoiceTable(namespace)).
		Order("id asc").Find(&invoices).Error; err != nil {
		if isUndefinedTable(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []entities.LineItem
	if err := r.db.WithContext(ctx).Table(lineItemTable(namespace)).
		Order("id asc").Find(&items).Error; err != nil {
		if isUndefinedTable(err) {
			return invoices, nil, nil
		}
		return nil, nil, err
	}

	return invoices, items, nil
}

// CountInvoices treats a missing table as zero rows, not as an error, so
// first-time users read as empty.
func (r *receiptRepository) CountInvoices(ctx context.Context, namespace string) (int64, error) {
	if !ValidNamespace(namespace) {
		return 0, domain.ErrInvalidNamespace
	}

	var count int64
	err := r.db.WithContext(ctx).Table(invoiceTable(namespace)).Count(&count).Error
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// DeleteByFileName removes the line items and then the header in one
// transaction. Unknown filenames are a no-op.
func (r *receiptRepository) DeleteByFileName(ctx context.Context, namespace string, fileName string) error {
	if !ValidNamespace(namespace) {
		return domain.ErrInvalidNamespace
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(lineItemTable(namespace)).
			Where("invoice_file_name = ?", fileName).
			Delete(&entities.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Table(invoiceTable(namespace)).
			Where("invoice_file_name = ?", fileName).
			Delete(&entities.Invoice{}).Error
	})
	if err != nil && isUndefinedTable(err) {
		return nil
	}
	return err
}

// isUndefinedTable matches Postgres SQLSTATE 42P01 (relation does not exist).
func isUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "42P01") || strings.Contains(msg, "does not exist")
}
