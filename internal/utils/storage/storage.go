package storage

// Provider abstracts where uploaded receipt files live. Files are grouped per
// user by their raw email and kept under their original name.
type Provider interface {
	Upload(userEmail string, fileName string, data []byte, contentType string) (string, error)
	Delete(userEmail string, fileName string) error
	PublicLink(userEmail string, fileName string) string
}

// AllowImage lists the upload content types accepted for receipts.
var AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf"}

func Allowed(contentType string) bool {
	for _, t := range AllowImage {
		if t == contentType {
			return true
		}
	}
	return false
}
