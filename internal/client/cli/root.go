package cli

import "context"

// Root runs the REPL on the app's input. The prompt shows the session
// language and whether a move is still being saved.
func (a *App) Root(ctx context.Context) {
	runREPL(ctx, a, a.status, a.in)
}

func (a *App) status() string {
	s := string(a.language())
	if a.tours.Pending() || a.promos.Pending() {
		s += " saving"
	}
	return s
}

func (a *App) Help() {
	a.say("Available commands:")
	a.say("  tours | promos | posts | bookings   list items")
	a.say("  move <tours|promos> <from> <to>     move an item (positions start at 1)")
	a.say("  show <tours|promos|posts> <n>       show one item")
	a.say("  delete <tours|promos|posts> <n>     delete an item")
	a.say("  addtour | addpost                   create an item")
	a.say("  lang <en|id|ru>                     switch the display language")
	a.say("  page <n> | filter [text]            navigate posts")
	a.say("  reload | ping | exit")
}
