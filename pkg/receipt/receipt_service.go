package receipt

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/entities"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils/storage"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/extraction"
	"github.com/shopspring/decimal"
)

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userEmail string) (domain.UploadReceiptResponse, error)
		Ingest(ctx context.Context, record map[string]any, sourcePath string, items []string, quantities []any, prices []any, userEmail string) (int64, error)
		ManualEntry(ctx context.Context, req domain.ManualEntryRequest, userEmail string) (int64, error)
		GetReceipt(ctx context.Context, fileName string, userEmail string) (domain.ReceiptResponse, error)
		ListAll(ctx context.Context, userEmail string) (domain.ReceiptListResponse, error)
		IsEmpty(ctx context.Context, userEmail string) (bool, error)
		DeleteReceipt(ctx context.Context, fileName string, userEmail string) error
		CategoryReport(ctx context.Context, userEmail string) (domain.CategoryReportResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		extractor         extraction.ExtractionService
		blobs             storage.Provider
		cache             *queryCache
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, extractor extraction.ExtractionService, blobs storage.Provider) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		extractor:         extractor,
		blobs:             blobs,
		cache:             newQueryCache(),
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userEmail string) (domain.UploadReceiptResponse, error) {
	file, err := req.Receipt.Open()
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	mimeType := mimeTypeFor(req.Receipt.Filename, req.Receipt.Header.Get("Content-Type"))
	if !storage.Allowed(mimeType) {
		return domain.UploadReceiptResponse{}, domain.ErrInvalidReceiptFormat
	}

	fileName := BaseName(req.Receipt.Filename)
	storedPath, err := s.blobs.Upload(userEmail, fileName, data, mimeType)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	extracted, err := s.extractor.ExtractReceipt(ctx, data, mimeType)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrReceiptProcessingFailed
	}

	invoiceID, err := s.Ingest(ctx, extracted.Record, storedPath, extracted.Items, extracted.Quantities, extracted.Prices, userEmail)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	category := ""
	if c := ToText(extracted.Record["category"]); c != nil {
		category = *c
	}

	return domain.UploadReceiptResponse{
		InvoiceID: invoiceID,
		FileName:  fileName,
		FileURL:   s.blobs.PublicLink(userEmail, fileName),
		Category:  category,
		ItemCount: len(extracted.Items),
	}, nil
}

// Ingest persists one extracted record plus its item sequences. The three
// sequences are zipped over the item names; missing quantities default to 1
// and missing prices to 0.0. The write runs in one transaction and ends by
// invalidating the namespace's cached reads.
func (s *receiptService) Ingest(ctx context.Context, record map[string]any, sourcePath string, items []string, quantities []any, prices []any, userEmail string) (int64, error) {
	namespace := Namespace(userEmail)

	if err := s.receiptRepository.EnsureUserSchema(ctx, namespace); err != nil {
		return 0, err
	}

	invoice, err := buildInvoice(record, BaseName(sourcePath))
	if err != nil {
		return 0, err
	}

	lineItems := make([]entities.LineItem, 0, len(items))
	for i, name := range items {
		item := entities.LineItem{
			ProductService: ToText(name),
			Quantity:       1,
			UnitPrice:      decimal.Zero,
		}
		if i < len(quantities) {
			item.Quantity = ToInteger(quantities[i])
		}
		if i < len(prices) {
			price, err := ToDecimal(prices[i])
			if err != nil {
				return 0, err
			}
			item.UnitPrice = price
		}
		lineItems = append(lineItems, item)
	}

	invoiceID, err := s.receiptRepository.InsertInvoiceAndItems(ctx, namespace, invoice, lineItems)
	if err != nil {
		return 0, err
	}

	s.cache.invalidate(namespace)
	return invoiceID, nil
}

func (s *receiptService) ManualEntry(ctx context.Context, req domain.ManualEntryRequest, userEmail string) (int64, error) {
	record := map[string]any{
		"category":           req.Category,
		"invoice_number":     req.InvoiceNumber,
		"invoice_date":       req.InvoiceDate,
		"due_date":           req.DueDate,
		"seller_information": req.SellerInformation,
		"buyer_information":  req.BuyerInformation,
		"subtotal":           req.Subtotal,
		"tax":                req.Tax,
		"grand_total":        req.GrandTotal,
		"currency":           req.Currency,
		"invoice_notes":      req.InvoiceNotes,
	}

	items := make([]string, 0, len(req.Items))
	quantities := make([]any, 0, len(req.Items))
	prices := make([]any, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.ProductService)
		quantities = append(quantities, it.Quantity)
		prices = append(prices, it.UnitPrice)
	}

	return s.Ingest(ctx, record, req.FileName, items, quantities, prices, userEmail)
}

func (s *receiptService) GetReceipt(ctx context.Context, fileName string, userEmail string) (domain.ReceiptResponse, error) {
	namespace := Namespace(userEmail)

	if cached, ok := s.cache.get(namespace, "get_receipt", fileName); ok {
		return cached.(domain.ReceiptResponse), nil
	}

	invoice, items, err := s.receiptRepository.GetInvoiceByFileName(ctx, namespace, fileName)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	res := domain.ReceiptResponse{Invoice: invoice, Items: items}
	s.cache.set(namespace, "get_receipt", fileName, res)
	return res, nil
}

func (s *receiptService) ListAll(ctx context.Context, userEmail string) (domain.ReceiptListResponse, error) {
	namespace := Namespace(userEmail)

	if cached, ok := s.cache.get(namespace, "list_all", ""); ok {
		return cached.(domain.ReceiptListResponse), nil
	}

	invoices, items, err := s.receiptRepository.ListAll(ctx, namespace)
	if err != nil {
		return domain.ReceiptListResponse{}, err
	}

	res := domain.ReceiptListResponse{
		Invoices: invoices,
		Items:    items,
		IsEmpty:  len(invoices) == 0,
	}
	s.cache.set(namespace, "list_all", "", res)
	return res, nil
}

func (s *receiptService) IsEmpty(ctx context.Context, userEmail string) (bool, error) {
	namespace := Namespace(userEmail)

	if cached, ok := s.cache.get(namespace, "is_empty", ""); ok {
		return cached.(bool), nil
	}

	count, err := s.receiptRepository.CountInvoices(ctx, namespace)
	if err != nil {
		return false, err
	}

	empty := count == 0
	s.cache.set(namespace, "is_empty", "", empty)
	return empty, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, fileName string, userEmail string) error {
	namespace := Namespace(userEmail)

	if err := s.receiptRepository.DeleteByFileName(ctx, namespace, fileName); err != nil {
		return err
	}

	// The stored file goes with its rows. Both backends treat a missing
	// blob as already deleted.
	if err := s.blobs.Delete(userEmail, fileName); err != nil {
		return err
	}

	s.cache.invalidate(namespace)
	return nil
}

func (s *receiptService) CategoryReport(ctx context.Context, userEmail string) (domain.CategoryReportResponse, error) {
	list, err := s.ListAll(ctx, userEmail)
	if err != nil {
		return domain.CategoryReportResponse{}, err
	}

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	grand := decimal.Zero
	for _, inv := range list.Invoices {
		category := "Uncategorized"
		if inv.Category != nil && *inv.Category != "" {
			category = *inv.Category
		}
		totals[category] = totals[category].Add(inv.GrandTotal)
		counts[category]++
		grand = grand.Add(inv.GrandTotal)
	}

	categories := make([]domain.CategorySpend, 0, len(totals))
	for category, total := range totals {
		categories = append(categories, domain.CategorySpend{
			Category: category,
			Total:    total.InexactFloat64(),
			Receipts: counts[category],
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Total > categories[j].Total
	})

	return domain.CategoryReportResponse{
		Categories:  categories,
		TotalSpend:  grand.InexactFloat64(),
		GeneratedAt: time.Now(),
	}, nil
}

// BaseName extracts the final path component regardless of the host
// separator convention, so a Windows upload path never becomes the lookup
// key. filepath.Base alone would keep "C:\..." prefixes on Linux.
func BaseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func buildInvoice(record map[string]any, fileName string) (*entities.Invoice, error) {
	invoice := &entities.Invoice{
		InvoiceFileName:     fileName,
		Category:            ToText(record["category"]),
		InvoiceNumber:       ToText(record["invoice_number"]),
		InvoiceDate:         ToDate(record["invoice_date"]),
		DueDate:             ToDate(record["due_date"]),
		SellerInformation:   ToText(record["seller_information"]),
		BuyerInformation:    ToText(record["buyer_information"]),
		PurchaseOrderNumber: ToText(record["purchase_order_number"]),
		Discount:            ToText(record["discount"]),
		TaxRate:             ToText(record["tax_rate"]),
		Currency:            ToText(record["currency"]),
		PaymentTerms:        ToText(record["payment_terms"]),
		PaymentMethod:       ToText(record["payment_method"]),
		BankInformation:     ToText(record["bank_information"]),
		InvoiceNotes:        ToText(record["invoice_notes"]),
		ShippingAddress:     ToText(record["shipping_address"]),
		BillingAddress:      ToText(record["billing_address"]),
	}

	var err error
	if invoice.Subtotal, err = ToDecimal(record["subtotal"]); err != nil {
		return nil, err
	}
	if invoice.ServiceCharges, err = ToDecimal(record["service_charges"]); err != nil {
		return nil, err
	}
	if invoice.NetTotal, err = ToDecimal(record["net_total"]); err != nil {
		return nil, err
	}
	if invoice.Tax, err = ToDecimal(record["tax"]); err != nil {
		return nil, err
	}
	if invoice.ShippingCosts, err = ToDecimal(record["shipping_costs"]); err != nil {
		return nil, err
	}
	if invoice.GrandTotal, err = ToDecimal(record["grand_total"]); err != nil {
		return nil, err
	}
	return invoice, nil
}

func mimeTypeFor(filename, contentType string) string {
	if contentType != "" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
