package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateProfileQR generates a PNG QR code pointing at the public profile of a business
	GenerateProfileQR(businessID string) ([]byte, error)

	// ParseProfileQR parses scanned QR code content and returns the business ID
	ParseProfileQR(qrData string) (string, error)
}
