package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Help()
	List(ctx context.Context, kind string) error
	Move(ctx context.Context, kind string, from, to int) error
	Show(ctx context.Context, kind string, n int) error
	Delete(ctx context.Context, kind string, n int) error
	AddTour(ctx context.Context) error
	AddPost(ctx context.Context) error
	SetLanguage(code string) error
	SetPage(n int) error
	SetFilter(text string)
	Reload(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the admin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Positions are 1-based, as
// printed by the list commands. The loop exits on scanner EOF, when ctx is
// done, or when the user types "exit" or "quit".
//
// Commands:
//
//	help                               show available commands
//	tours | promos | posts | bookings  list items
//	move <tours|promos> <from> <to>    reorder
//	show <list> <n>                    show one item
//	delete <list> <n>                  delete an item
//	addtour | addpost                  create an item
//	lang <code>                        switch the display language
//	page <n>                           go to a page of posts
//	filter [text]                      filter posts, empty to clear
//	reload                             reload tours and promotions
//	ping                               check the server
//	exit | quit                        leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("toursite %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.Help()

		case kindTours, kindPromos, kindPosts, kindBookings:
			if cmd == kindPosts && len(args) > 0 {
				printlnFn("Usage: posts (use page and filter to navigate)")
				continue
			}
			_ = a.List(ctx, cmd)

		case "move", "mv":
			if len(args) != 3 {
				printlnFn("Usage: move <tours|promos> <from> <to>")
				continue
			}
			from, to, ok := twoPositions(args[1], args[2])
			if !ok {
				printlnFn("Positions must be numbers")
				continue
			}
			_ = a.Move(ctx, args[0], from, to)

		case "show", "delete":
			if len(args) != 2 {
				printlnFn(fmt.Sprintf("Usage: %s <tours|promos|posts> <n>", cmd))
				continue
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				printlnFn("Position must be a number")
				continue
			}
			if cmd == "show" {
				_ = a.Show(ctx, args[0], n)
			} else {
				_ = a.Delete(ctx, args[0], n)
			}

		case "addtour":
			_ = a.AddTour(ctx)

		case "addpost":
			_ = a.AddPost(ctx)

		case "lang":
			if len(args) != 1 {
				printlnFn("Usage: lang <en|id|ru>")
				continue
			}
			_ = a.SetLanguage(args[0])

		case "page":
			n, err := strconv.Atoi(strings.Join(args, ""))
			if err != nil {
				printlnFn("Usage: page <n>")
				continue
			}
			if a.SetPage(n) == nil {
				_ = a.List(ctx, kindPosts)
			}

		case "filter":
			a.SetFilter(strings.Join(args, " "))
			_ = a.List(ctx, kindPosts)

		case "reload":
			_ = a.Reload(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func twoPositions(a, b string) (int, int, bool) {
	from, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}
