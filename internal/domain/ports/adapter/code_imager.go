package adapter

// CodeImager rasterizes an admission token into a scannable image encoding
// the public redemption URL for that token.
type CodeImager interface {
	Image(token string) ([]byte, error)
}
