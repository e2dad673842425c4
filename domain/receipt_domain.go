package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/Goutham-IITJ/Project-Raseed/entities"
)

var (
	MessageSuccessUploadReceipt  = "receipt uploaded and processed successfully"
	MessageSuccessGetReceipt     = "receipt retrieved successfully"
	MessageSuccessListReceipts   = "receipts retrieved successfully"
	MessageSuccessDeleteReceipt  = "receipt deleted successfully"
	MessageSuccessManualEntry    = "receipt saved successfully"
	MessageSuccessCategoryReport = "category report retrieved successfully"

	MessageFailedUploadReceipt  = "failed to upload receipt"
	MessageFailedProcessReceipt = "failed to process receipt"
	MessageFailedGetReceipt     = "failed to retrieve receipt"
	MessageFailedListReceipts   = "failed to retrieve receipts"
	MessageFailedDeleteReceipt  = "failed to delete receipt"
	MessageFailedManualEntry    = "failed to save receipt"

	ErrReceiptProcessingFailed = errors.New("receipt processing failed")
	ErrInvalidReceiptFormat    = errors.New("invalid receipt file format")
	ErrExtractionFailed        = errors.New("extraction failed")
)

type (
	UploadReceiptRequest struct {
		Receipt *multipart.FileHeader `json:"receipt" form:"receipt" validate:"required"`
	}

	UploadReceiptResponse struct {
		InvoiceID int64  `json:"invoice_id"`
		FileName  string `json:"file_name"`
		FileURL   string `json:"file_url"`
		Category  string `json:"category"`
		ItemCount int    `json:"item_count"`
	}

	ManualEntryItem struct {
		ProductService string  `json:"product_service" validate:"required"`
		Quantity       int     `json:"quantity" validate:"omitempty,min=1"`
		UnitPrice      float64 `json:"unit_price" validate:"omitempty,min=0"`
	}

	ManualEntryRequest struct {
		FileName          string            `json:"file_name" validate:"required"`
		Category          string            `json:"category"`
		InvoiceNumber     string            `json:"invoice_number"`
		InvoiceDate       string            `json:"invoice_date"`
		DueDate           string            `json:"due_date"`
		SellerInformation string            `json:"seller_information"`
		BuyerInformation  string            `json:"buyer_information"`
		Subtotal          float64           `json:"subtotal"`
		Tax               float64           `json:"tax"`
		GrandTotal        float64           `json:"grand_total"`
		Currency          string            `json:"currency"`
		InvoiceNotes      string            `json:"invoice_notes"`
		Items             []ManualEntryItem `json:"items"`
	}

	ReceiptResponse struct {
		Invoice *entities.Invoice   `json:"invoice"`
		Items   []entities.LineItem `json:"items"`
	}

	ReceiptListResponse struct {
		Invoices []entities.Invoice  `json:"invoices"`
		Items    []entities.LineItem `json:"items"`
		IsEmpty  bool                `json:"is_empty"`
	}

	CategorySpend struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Receipts int     `json:"receipts"`
	}

	CategoryReportResponse struct {
		Categories  []CategorySpend `json:"categories"`
		TotalSpend  float64         `json:"total_spend"`
		GeneratedAt time.Time       `json:"generated_at"`
	}
)
