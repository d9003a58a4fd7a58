package diag

import "context"

type contextKeys string

const (
	requestIDKey contextKeys = "requestID"
	operationKey contextKeys = "operation"
)

// ContextWithRequestID - create context with requestID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDValue - returns requestID value taken from context
func RequestIDValue(ctx context.Context) string {
	val := ctx.Value(requestIDKey)
	if val == nil {
		return ""
	}
	return val.(string)
}

// ContextWithOperation - create context that carries a name of a ledger operation
// (e.g propose, receive). The name is added to the log context
func ContextWithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey, operation)
}

// OperationValue - returns operation name taken from context
func OperationValue(ctx context.Context) string {
	val := ctx.Value(operationKey)
	if val == nil {
		return ""
	}
	return val.(string)
}
