package agent

import (
	"testing"
)

func TestGuardQuery(t *testing.T) {
	const ns = "user_at_mail_dot_com"

	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{
			name:  "plain select",
			query: "SELECT seller_information, grand_total FROM invoices_user_at_mail_dot_com",
		},
		{
			name:  "cte",
			query: "WITH spend AS (SELECT category, SUM(grand_total) t FROM invoices_user_at_mail_dot_com GROUP BY category) SELECT * FROM spend",
		},
		{
			name:  "join across own tables",
			query: "SELECT i.seller_information, l.product_service FROM invoices_user_at_mail_dot_com i JOIN line_items_user_at_mail_dot_com l ON l.invoice_id = i.id",
		},
		{
			name:    "empty",
			query:   "",
			wantErr: true,
		},
		{
			name:    "not a select",
			query:   "EXPLAIN SELECT * FROM invoices_user_at_mail_dot_com",
			wantErr: true,
		},
		{
			name:    "mutation",
			query:   "DELETE FROM invoices_user_at_mail_dot_com",
			wantErr: true,
		},
		{
			name:    "stacked statements",
			query:   "SELECT 1; DROP TABLE invoices_user_at_mail_dot_com",
			wantErr: true,
		},
		{
			name:    "forbidden keyword inside select",
			query:   "SELECT * FROM invoices_user_at_mail_dot_com WHERE id IN (DELETE FROM line_items_user_at_mail_dot_com RETURNING id)",
			wantErr: true,
		},
		{
			name:    "foreign namespace",
			query:   "SELECT * FROM invoices_other_at_mail_dot_com",
			wantErr: true,
		},
		{
			name:    "own and foreign namespace mixed",
			query:   "SELECT * FROM invoices_user_at_mail_dot_com UNION ALL SELECT * FROM invoices_other_at_mail_dot_com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GuardQuery(tt.query, ns)
			if tt.wantErr && err == nil {
				t.Errorf("GuardQuery(%q) passed, want rejection", tt.query)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("GuardQuery(%q) rejected: %v", tt.query, err)
			}
		})
	}
}
