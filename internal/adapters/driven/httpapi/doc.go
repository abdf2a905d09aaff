// Package httpapi implements the catalogue backend ports over HTTP.
//
// A single Client serves both driven.CatalogAPI and driven.ClosetAPI. Every
// request carries the caller's context, a fresh X-Request-ID, the
// session_token cookie when one is configured, and waits on a token-bucket
// limiter before it is sent.
//
// Status handling is deliberately coarse: 401 maps to domain.ErrUnauthorized,
// 429 to domain.ErrRateLimited and any other non-2xx status to
// domain.ErrRequestFailed. Bodies that do not decode into the expected shape
// fail with domain.ErrMalformedPayload.
package httpapi
