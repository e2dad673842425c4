package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is one digitized receipt header. Rows live in per-user tables
// (invoices_<namespace>), so there is no static TableName; repositories bind
// the struct with db.Table(...).
type Invoice struct {
	ID                  int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvoiceFileName     string          `gorm:"column:invoice_file_name" json:"invoice_file_name"`
	Category            *string         `gorm:"column:category" json:"category,omitempty"`
	InvoiceNumber       *string         `gorm:"column:invoice_number" json:"invoice_number,omitempty"`
	InvoiceDate         *time.Time      `gorm:"column:invoice_date;type:date" json:"invoice_date,omitempty"`
	DueDate             *time.Time      `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	SellerInformation   *string         `gorm:"column:seller_information" json:"seller_information,omitempty"`
	BuyerInformation    *string         `gorm:"column:buyer_information" json:"buyer_information,omitempty"`
	PurchaseOrderNumber *string         `gorm:"column:purchase_order_number" json:"purchase_order_number,omitempty"`
	Subtotal            decimal.Decimal `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	ServiceCharges      decimal.Decimal `gorm:"column:service_charges;type:numeric" json:"service_charges"`
	NetTotal            decimal.Decimal `gorm:"column:net_total;type:numeric" json:"net_total"`
	Discount            *string         `gorm:"column:discount" json:"discount,omitempty"`
	Tax                 decimal.Decimal `gorm:"column:tax;type:numeric" json:"tax"`
	TaxRate             *string         `gorm:"column:tax_rate" json:"tax_rate,omitempty"`
	ShippingCosts       decimal.Decimal `gorm:"column:shipping_costs;type:numeric" json:"shipping_costs"`
	GrandTotal          decimal.Decimal `gorm:"column:grand_total;type:numeric" json:"grand_total"`
	Currency            *string         `gorm:"column:currency" json:"currency,omitempty"`
	PaymentTerms        *string         `gorm:"column:payment_terms" json:"payment_terms,omitempty"`
	PaymentMethod       *string         `gorm:"column:payment_method" json:"payment_method,omitempty"`
	BankInformation     *string         `gorm:"column:bank_information" json:"bank_information,omitempty"`
	InvoiceNotes        *string         `gorm:"column:invoice_notes" json:"invoice_notes,omitempty"`
	ShippingAddress     *string         `gorm:"column:shipping_address" json:"shipping_address,omitempty"`
	BillingAddress      *string         `gorm:"column:billing_address" json:"billing_address,omitempty"`
}

// LineItem is one product/service line. The parent's filename is denormalized
// so items can be fetched without a join.
type LineItem struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InvoiceFileName string          `gorm:"column:invoice_file_name" json:"invoice_file_name"`
	InvoiceID       int64           `gorm:"column:invoice_id" json:"invoice_id"`
	ProductService  *string         `gorm:"column:product_service" json:"product_service,omitempty"`
	Quantity        int             `gorm:"column:quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric" json:"unit_price"`
}
