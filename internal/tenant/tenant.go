package tenant

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Header carries the tenant key selecting the backing store partition.
const Header = "X-Tenant"

type contextKey struct{}

// DefaultKey is used when no tenant header is present and no default is
// configured.
const DefaultKey = "default"

// WithKey returns a context carrying the tenant key.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, contextKey{}, key)
}

// FromContext extracts the tenant key, falling back to DefaultKey so that
// repositories always operate on a concrete partition.
func FromContext(ctx context.Context) string {
	if key, ok := ctx.Value(contextKey{}).(string); ok && key != "" {
		return key
	}
	return DefaultKey
}

// Middleware resolves the tenant key from the request header and threads it
// through the request context for repositories downstream. The fallback is
// applied when the header is absent.
func Middleware(fallback string) fiber.Handler {
	if fallback == "" {
		fallback = DefaultKey
	}
	return func(c *fiber.Ctx) error {
		key := c.Get(Header)
		if key == "" {
			key = fallback
		}
		c.Locals(Header, key)
		c.SetUserContext(WithKey(c.UserContext(), key))
		return c.Next()
	}
}
