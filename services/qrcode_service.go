// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode; injectable so tests can stub it.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode renders the given URL (typically the challenge meeting
// link) as a PNG QR code of the given size.
func GenerateQRCode(url string, size int, encode QRCodeEncoder) ([]byte, error) {
	if url == "" {
		return nil, errors.New("url must not be empty")
	}
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if encode == nil {
		encode = qrcode.Encode
	}

	png, err := encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
