package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/receipt"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

const maxResultRows = 50

type (
	// AgentService answers natural-language questions about a user's stored
	// receipts by generating one read-only SQL statement, executing it
	// against the user's two tables and phrasing the rows as an answer.
	AgentService interface {
		Ask(ctx context.Context, question string, userEmail string) (domain.ChatResponse, error)
	}

	agentService struct {
		db     *gorm.DB
		client *genai.Client
		model  string
	}
)

func NewAgentService(ctx context.Context, db *gorm.DB) (AgentService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: utils.GetConfig("GEMINI_API_KEY")})
	if err != nil {
		return nil, err
	}

	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &agentService{db: db, client: client, model: model}, nil
}

func (s *agentService) Ask(ctx context.Context, question string, userEmail string) (domain.ChatResponse, error) {
	if strings.TrimSpace(question) == "" {
		return domain.ChatResponse{}, domain.ErrEmptyChatQuestion
	}

	namespace := receipt.Namespace(userEmail)
	if !receipt.ValidNamespace(namespace) {
		return domain.ChatResponse{}, domain.ErrInvalidNamespace
	}

	query, err := s.generateQuery(ctx, question, namespace)
	if err != nil {
		return domain.ChatResponse{}, err
	}

	if err := GuardQuery(query, namespace); err != nil {
		return domain.ChatResponse{}, err
	}

	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return domain.ChatResponse{}, err
	}
	if len(rows) > maxResultRows {
		rows = rows[:maxResultRows]
	}

	answer, err := s.phraseAnswer(ctx, question, rows)
	if err != nil {
		return domain.ChatResponse{}, err
	}

	return domain.ChatResponse{
		Question: question,
		Answer:   answer,
		Query:    query,
	}, nil
}

func (s *agentService) generateQuery(ctx context.Context, question, namespace string) (string, error) {
	prompt := fmt.Sprintf(`You are 'Raseed', an expert home finance assistant querying a PostgreSQL database of receipts.

DATABASE SCHEMA:
- invoices_%[1]s: receipt headers. Columns: id, invoice_file_name, category, invoice_number, invoice_date (DATE), due_date (DATE), seller_information, buyer_information, purchase_order_number, subtotal, service_charges, net_total, discount, tax, tax_rate, shipping_costs, grand_total, currency, payment_terms, payment_method, bank_information, invoice_notes, shipping_address, billing_address.
- line_items_%[1]s: purchased products. Columns: id, invoice_file_name, invoice_id (references invoices_%[1]s.id), product_service, quantity, unit_price.

INSTRUCTIONS:
1. If asked about a spending category such as Groceries or Dining, filter on the 'category' column.
2. If asked "Do I have X?", look for recent purchases of X in line_items_%[1]s.product_service.
3. Only query the two tables above. Never touch any other table.
4. Output EXACTLY ONE PostgreSQL SELECT statement and nothing else. No markdown, no explanation, no semicolon.

Question: %s`, namespace, question)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", domain.ErrGeminiUnavailable
	}

	query := strings.TrimSpace(text)
	query = strings.TrimPrefix(query, "```sql")
	query = strings.TrimPrefix(query, "```")
	query = strings.TrimSuffix(query, "```")
	query = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), ";"))
	if query == "" {
		return "", domain.ErrAgentNoAnswer
	}
	return query, nil
}

func (s *agentService) phraseAnswer(ctx context.Context, question string, rows []map[string]interface{}) (string, error) {
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are 'Raseed', a home finance assistant. A user asked: %q

The SQL result rows (JSON) are:
%s

Answer the question naturally and concisely using only these rows. Mention amounts with their currency symbol when present. If the rows are empty, say you found no matching receipts.`, question, rowsJSON)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return "", domain.ErrGeminiUnavailable
	}
	if strings.TrimSpace(answer) == "" {
		return "", domain.ErrAgentNoAnswer
	}
	return strings.TrimSpace(answer), nil
}

func (s *agentService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domain.ErrAgentNoAnswer
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

var (
	forbiddenKeywords = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|copy|vacuum|call|do|execute|set|listen|notify)\b`)
	tableReference    = regexp.MustCompile(`(?i)\b(invoices_[a-z0-9_]+|line_items_[a-z0-9_]+)`)
)

// GuardQuery rejects any generated statement that is not a single SELECT
// touching only the caller's two tables. Generated SQL is untrusted input;
// nothing that fails this check reaches the database.
func GuardQuery(query, namespace string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.ErrUnsafeQuery
	}
	if strings.Contains(trimmed, ";") {
		return domain.ErrUnsafeQuery
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return domain.ErrUnsafeQuery
	}
	if forbiddenKeywords.MatchString(trimmed) {
		return domain.ErrUnsafeQuery
	}

	ns := strings.ToLower(namespace)
	allowed := map[string]bool{
		"invoices_" + ns:   true,
		"line_items_" + ns: true,
	}
	for _, ref := range tableReference.FindAllString(strings.ToLower(trimmed), -1) {
		if !allowed[ref] {
			return domain.ErrUnsafeQuery
		}
	}
	return nil
}
