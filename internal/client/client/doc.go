// Package client contains the admin CLI's connection to the toursite server.
//
// # Overview
//
//  1. APIClient talks to the REST API: tours, promotions, posts, bookings
//     and the swap endpoints used for manual ordering.
//  2. HealthClient asks the gRPC health service whether the store is up.
//  3. NewTourStore and NewPromotionStore adapt the API to reorder.Store so
//     admin lists can be reordered optimistically.
//
// # Error Handling
//
// Failures are reported as sentinel errors that callers match with
// errors.Is: ErrUnavailable (network failures, timeouts and 5xx),
// ErrNotFound, ErrInvalidRequest and ErrConflict. The server's message is
// kept in *APIError.
//
// Idempotent requests are retried with exponential backoff while the server
// is unavailable. Mutations are never retried.
package client
