package cli

import "context"

// Ping reports whether the server's store is reachable.
func (a *App) Ping(ctx context.Context) error {
	if err := a.health.Ping(ctx); err != nil {
		a.say("Server unavailable:", err)
		return err
	}
	a.say("Server OK")
	return nil
}
