package receipt

import (
	"regexp"
	"strings"
)

// identifierPattern is the allow-list for anything interpolated into a table
// name. Namespaces that fail it never reach the SQL layer.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Namespace maps a user's email to the suffix of their invoice tables.
// Pure and deterministic: the same email always lands in the same tables.
func Namespace(email string) string {
	ns := strings.ReplaceAll(email, "@", "_at_")
	ns = strings.ReplaceAll(ns, ".", "_dot_")
	return ns
}

// ValidNamespace reports whether ns is safe to embed in a table identifier.
func ValidNamespace(ns string) bool {
	return identifierPattern.MatchString(ns)
}

func invoiceTable(ns string) string {
	return "invoices_" + ns
}

func lineItemTable(ns string) string {
	return "line_items_" + ns
}
