package requestdata

import (
	"context"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData carries the authenticated caller identity through the request
// context. Address is the ledger address proven by the bearer token.
type RequestData struct {
	TokenString string
	Address     string
	AdminKey    string
}

// Caller returns the authenticated address, or "" for anonymous requests.
func Caller(ctx context.Context) string {
	rd := GetRequestData(ctx)
	if rd == nil {
		return ""
	}
	return rd.Address
}
