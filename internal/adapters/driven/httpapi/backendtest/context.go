package backendtest

import "context"

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]string) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(ctx context.Context) map[string]string {
	body, _ := ctx.Value(bodyKey{}).(map[string]string)
	if body == nil {
		return map[string]string{}
	}
	return body
}
