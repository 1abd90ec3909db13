// Package qr renders admission tokens as scannable PNG images.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"guestpass/internal/domain/ports/adapter"
)

var _ adapter.CodeImager = (*Generator)(nil)

// Generator encodes `<base_url>/redeem/<token>` into a QR PNG.
type Generator struct {
	baseURL string
	size    int
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL, size: 256}
}

func (g *Generator) Image(token string) ([]byte, error) {
	url := fmt.Sprintf("%s/redeem/%s", g.baseURL, token)
	png, err := qrcode.Encode(url, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
