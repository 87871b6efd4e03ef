package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache holds lookups of reference data that changes far less often than it is read
type Cache interface {
	// Get returns the value and whether the key was present and unexpired
	Get(ctx context.Context, key string) (any, bool)
	// Set stores the value. A zero ttl falls back to DefaultExpiration.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

const PrefixTaxRate = "taxrate:v1"

// GenerateKey joins the prefix and params with colons
func GenerateKey(prefix string, params ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range params {
		b.WriteByte(':')
		fmt.Fprint(&b, p)
	}
	return b.String()
}
