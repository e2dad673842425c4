package extraction

import (
	"testing"
)

func TestParseResponseStripsMarkdownFence(t *testing.T) {
	raw := "```json\n" +
		`{"invoice_number": "INV-1", "grand_total": "42.50", "products_services": ["Milk", "Bread"], "quantities": [1, 2], "unit_prices": [1.5, 2.0]}` +
		"\n```"

	res, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if res.Record["invoice_number"] != "INV-1" {
		t.Errorf("invoice_number = %v, want INV-1", res.Record["invoice_number"])
	}
	if len(res.Items) != 2 {
		t.Errorf("got %d items, want 2", len(res.Items))
	}
}

func TestParseResponseFallsBackToBraces(t *testing.T) {
	raw := `Here is the extracted data: {"invoice_number": "INV-2", "products_services": []} Hope this helps!`

	res, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if res.Record["invoice_number"] != "INV-2" {
		t.Errorf("invoice_number = %v, want INV-2", res.Record["invoice_number"])
	}
}

func TestParseResponseRejectsNonJSON(t *testing.T) {
	if _, err := parseResponse("I could not read this receipt, sorry."); err == nil {
		t.Fatal("prose without a JSON object must fail")
	}
}

func TestParseResponsePadsShortSequences(t *testing.T) {
	raw := `{"products_services": ["Milk", "Bread", "Eggs"], "quantities": [2, 3], "unit_prices": [1.5]}`

	res, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("parseResponse failed: %v", err)
	}
	if len(res.Quantities) != 3 || len(res.Prices) != 3 {
		t.Fatalf("quantities/prices not padded to item count: %d/%d", len(res.Quantities), len(res.Prices))
	}
	if res.Quantities[2] != 1 {
		t.Errorf("padded quantity = %v, want 1", res.Quantities[2])
	}
	if res.Prices[1] != 0.0 || res.Prices[2] != 0.0 {
		t.Errorf("padded prices = %v/%v, want 0.0", res.Prices[1], res.Prices[2])
	}
}

func TestNormalizeToList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"native array", []any{"Apple", "Banana"}, []string{"Apple", "Banana"}},
		{"array with nulls", []any{"Apple", nil, "Banana"}, []string{"Apple", "Banana"}},
		{"delimited string", "Apple, Banana", []string{"Apple", "Banana"}},
		{"bracketed string", `['Apple', "Banana"]`, []string{"Apple", "Banana"}},
		{"null string", "NULL", nil},
		{"empty string", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeToList(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != any(tt.want[i]) {
					t.Errorf("element %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
