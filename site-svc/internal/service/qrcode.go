package service

import (
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(fullURL string) ([]byte, error)
}

// DefaultQRGenerator renders the PNG customers print or share: a QR pointing
// at the site's public URL.
type DefaultQRGenerator struct{}

func (DefaultQRGenerator) Generate(fullURL string) ([]byte, error) {
	return qrcode.Encode("https://"+fullURL, qrcode.Medium, 256)
}
