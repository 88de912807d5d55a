package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"tastelocal/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance. Codes encode
// baseURL followed by the business id.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// ProfileURL is the public page a QR code points to.
func (s *qrcodeService) ProfileURL(businessID string) string {
	return s.baseURL + "/" + url.PathEscape(businessID)
}

// GenerateProfileQR generates a PNG QR code for the public profile of a business
func (s *qrcodeService) GenerateProfileQR(businessID string) ([]byte, error) {
	if businessID == "" {
		return nil, fmt.Errorf("business ID is required")
	}

	qrCode, err := qrcode.New(s.ProfileURL(businessID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseProfileQR parses scanned QR code content and returns the business ID
func (s *qrcodeService) ParseProfileQR(qrData string) (string, error) {
	if !strings.HasPrefix(qrData, s.baseURL+"/") {
		return "", fmt.Errorf("QR code does not point to a business profile")
	}

	rest := strings.TrimPrefix(qrData, s.baseURL+"/")
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	businessID, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("failed to parse QR code URL: %w", err)
	}
	if businessID == "" || strings.Contains(businessID, "/") {
		return "", fmt.Errorf("QR code URL has no business ID")
	}

	return businessID, nil
}
