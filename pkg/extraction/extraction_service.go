package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"
)

const (
	maxRetries = 3
	retryDelay = 5 * time.Second
)

const extractionPrompt = `You are an expert financial analyst for Project Raseed.
Extract data from this receipt.

Format output strictly as a JSON object. No Markdown.

Keys required:
invoice_number, invoice_date (YYYY-MM-DD), due_date (YYYY-MM-DD),
seller_information, buyer_information, purchase_order_number,
products_services (Return as a JSON LIST of strings),
quantities (Return as a JSON LIST of numbers),
unit_prices (Return as a JSON LIST of numbers),
subtotal, service_charges, net_total, discount, tax, tax_rate,
shipping_costs, grand_total, currency, payment_terms, payment_method,
bank_information, invoice_notes, shipping_address, billing_address,
category (Classify as one of: Groceries, Dining, Transport, Shopping, Utilities, Entertainment, Health, Other)

If a value is not found, use null.`

type (
	// ExtractedReceipt carries the raw record plus the three item sequences,
	// already equalized in length (quantities padded with 1, prices with 0.0).
	ExtractedReceipt struct {
		Record     map[string]any
		Items      []string
		Quantities []any
		Prices     []any
	}

	ExtractionService interface {
		ExtractReceipt(ctx context.Context, imageData []byte, mimeType string) (*ExtractedReceipt, error)
	}

	extractionService struct {
		client *genai.Client
		model  string
	}
)

func NewExtractionService(ctx context.Context) (ExtractionService, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}

	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &extractionService{client: client, model: model}, nil
}

// ExtractReceipt sends the receipt image to Gemini and decodes the structured
// record. Transient failures are retried a bounded number of times with a
// fixed delay, matching the upstream rate-limit behavior.
func (s *extractionService) ExtractReceipt(ctx context.Context, imageData []byte, mimeType string) (*ExtractedReceipt, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(extractionPrompt),
			genai.NewPartFromBytes(imageData, mimeType),
		}, genai.RoleUser),
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
		if err != nil {
			lastErr = err
			log.Warnf("gemini extraction attempt %d/%d failed: %v", attempt, maxRetries, err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}
		return parseResponse(responseText(resp))
	}
	return nil, lastErr
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// parseResponse cleans markdown fences from the model output, decodes the
// record and normalizes the item sequences.
func parseResponse(raw string) (*ExtractedReceipt, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var record map[string]any
	if err := json.Unmarshal([]byte(clean), &record); err != nil {
		// Fallback: slice from the first { to the last }.
		start := strings.Index(clean, "{")
		end := strings.LastIndex(clean, "}")
		if start == -1 || end == -1 || end <= start {
			return nil, domain.ErrExtractionFailed
		}
		if err := json.Unmarshal([]byte(clean[start:end+1]), &record); err != nil {
			return nil, domain.ErrExtractionFailed
		}
	}

	items := normalizeToStrings(record["products_services"])
	quantities := normalizeToList(record["quantities"])
	prices := normalizeToList(record["unit_prices"])

	// Equalize lengths so the zip downstream never drops an item.
	for len(quantities) < len(items) {
		quantities = append(quantities, 1)
	}
	for len(prices) < len(items) {
		prices = append(prices, 0.0)
	}

	return &ExtractedReceipt{
		Record:     record,
		Items:      items,
		Quantities: quantities,
		Prices:     prices,
	}, nil
}

// normalizeToList accepts either a native JSON array or a delimited string
// ("Apple, Banana", possibly with stray brackets and quotes) and returns the
// elements as raw values.
func normalizeToList(v any) []any {
	switch val := v.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, 0, len(val))
		for _, x := range val {
			if x != nil {
				out = append(out, x)
			}
		}
		return out
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" || strings.EqualFold(trimmed, "null") {
			return []any{}
		}
		cleaner := strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")
		trimmed = cleaner.Replace(trimmed)
		var out []any
		for _, part := range strings.Split(trimmed, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []any{}
}

func normalizeToStrings(v any) []string {
	raw := normalizeToList(v)
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		if s, ok := x.(string); ok {
			out = append(out, s)
			continue
		}
		b, _ := json.Marshal(x)
		out = append(out, string(b))
	}
	return out
}
