package wallet

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Goutham-IITJ/Project-Raseed/entities"
	"github.com/shopspring/decimal"
)

func lineItem(desc string, qty int, price string) entities.LineItem {
	p, _ := decimal.NewFromString(price)
	return entities.LineItem{ProductService: &desc, Quantity: qty, UnitPrice: p}
}

func TestItemsBody(t *testing.T) {
	items := []entities.LineItem{
		lineItem("Milk", 2, "1.50"),
		lineItem("Bread", 1, "2.25"),
	}

	got := ItemsBody(items)
	want := "2x Milk ($1.50)\n1x Bread ($2.25)\n"
	if got != want {
		t.Errorf("ItemsBody = %q, want %q", got, want)
	}
}

func TestItemsBodyEmpty(t *testing.T) {
	if got := ItemsBody(nil); got != "No item details available." {
		t.Errorf("ItemsBody(nil) = %q", got)
	}
}

func TestItemsBodyNilDescription(t *testing.T) {
	items := []entities.LineItem{{Quantity: 1, UnitPrice: decimal.Zero}}
	if got := ItemsBody(items); got != "1x  ($0.00)\n" {
		t.Errorf("ItemsBody = %q", got)
	}
}

func TestItemsBodyTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte prefix "1x " pushes the 2-byte runes off even offsets, so a
	// naive byte cut would land mid-rune
	desc := strings.Repeat("é", 400)
	got := ItemsBody([]entities.LineItem{lineItem(desc, 1, "9.99")})

	if len(got) > itemsBodyMaxChars {
		t.Errorf("body is %d bytes, want at most %d", len(got), itemsBodyMaxChars)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated body is not valid UTF-8")
	}
}

func TestItemsBodyTruncates(t *testing.T) {
	var items []entities.LineItem
	for i := 0; i < 100; i++ {
		items = append(items, lineItem("A very long product description", 1, "9.99"))
	}

	got := ItemsBody(items)
	if len(got) != itemsBodyMaxChars {
		t.Errorf("truncated body is %d chars, want %d", len(got), itemsBodyMaxChars)
	}
	if !strings.HasPrefix(got, "1x A very long product description ($9.99)\n") {
		t.Errorf("unexpected body prefix: %q", got[:50])
	}
}
