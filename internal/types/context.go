package types

import "context"

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxTenantID
	ctxUserID
)

const (
	// DefaultTenantID scopes requests that name no tenant, as in single-tenant deployments
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
)

func stringValue(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

func GetTenantID(ctx context.Context) string  { return stringValue(ctx, ctxTenantID) }
func GetUserID(ctx context.Context) string    { return stringValue(ctx, ctxUserID) }
func GetRequestID(ctx context.Context) string { return stringValue(ctx, ctxRequestID) }

func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, ctxTenantID, tenantID)
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestID, requestID)
}

// HasTenant reports whether work on ctx is scoped to a tenant
func HasTenant(ctx context.Context) bool {
	return ctx != nil && GetTenantID(ctx) != ""
}
