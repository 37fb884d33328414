// Package http is the REST adapter of the order tracking service.
//
// Server translates echo requests into commands and queries, and maps the
// domain error taxonomy onto status codes:
//   - *order.ValidationError: 400 "Validation Error" listing every violation
//   - *order.DuplicateOrderNumberError: 400 "Duplicate order number"
//   - errs.ErrObjectNotFound: 404 "Order not found"
//   - anything else: 500 "Something went wrong!"
//
// NewRouter wires the server into an echo instance together with CORS,
// request ids, panic recovery, zap request logging, prometheus metrics and
// the embedded OpenAPI document.
package http
