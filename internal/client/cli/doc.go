// Package cli provides the interactive toursite admin client.
//
// It wires configuration, the REST and health clients and an interactive
// REPL. Tours and promotions are shown as reorderable lists: a move is
// applied on screen at once, persisted as a swap of the two items involved,
// and confirmed by reloading the list from the server. The result of each
// move is printed in the session language when it settles.
//
// Key features:
//   - List tours, promotions, posts and booking inquiries
//   - Move tours and promotions (one move at a time)
//   - Switch the display language; missing translations fall back to English
//   - Page through and filter posts
//   - Add and delete tours and posts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
