package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// handler runs one REPL command with its arguments.
type handler func(ctx context.Context, args []string) error

// execIface is the command surface the REPL needs. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	handlers() map[string]handler
}

type commandInfo struct {
	name       string
	aliases    []string
	usage      string
	summary    string
	needsLogin bool
}

var commandInfos = []commandInfo{
	{name: "register", summary: "create an account"},
	{name: "login", summary: "sign in"},
	{name: "logout", summary: "sign out", needsLogin: true},
	{name: "whoami", summary: "show the signed-in account", needsLogin: true},
	{name: "passwd", summary: "change your password", needsLogin: true},
	{name: "email", summary: "change your email", needsLogin: true},
	{name: "deleteaccount", summary: "delete your account and all its data", needsLogin: true},

	{name: "categories", aliases: []string{"cats"}, summary: "list categories", needsLogin: true},
	{name: "addcategory", usage: "[name]", summary: "create a category", needsLogin: true},
	{name: "editcategory", usage: "<id|name>", summary: "rename, regroup or re-icon a category", needsLogin: true},
	{name: "rmcategory", usage: "<id|name>", summary: "delete a category, moving its entries", needsLogin: true},

	{name: "list", aliases: []string{"l", "ls"}, usage: "[category, ...]", summary: "list entries", needsLogin: true},
	{name: "appointments", summary: "list entries of appointment categories", needsLogin: true},
	{name: "show", usage: "<id>", summary: "show an entry with its documents", needsLogin: true},
	{name: "add", summary: "create an entry", needsLogin: true},
	{name: "edit", usage: "<id>", summary: "change an entry", needsLogin: true},
	{name: "done", usage: "<id>", summary: "archive an entry", needsLogin: true},
	{name: "reopen", usage: "<id>", summary: "mark an archived entry active again", needsLogin: true},
	{name: "rm", usage: "<id>", summary: "delete an entry and its documents", needsLogin: true},

	{name: "docs", usage: "[entry id]", summary: "list documents", needsLogin: true},
	{name: "attach", usage: "<entry id> <file|url>", summary: "attach a file or link to an entry", needsLogin: true},
	{name: "open", usage: "<document id>", summary: "save or show a document", needsLogin: true},
	{name: "rmdoc", usage: "<document id>", summary: "delete a document", needsLogin: true},

	{name: "overview", aliases: []string{"o"}, summary: "deadlines, upcoming appointments and recent documents", needsLogin: true},
	{name: "settings", usage: "[date DD.MM.YYYY|MM/DD/YYYY] [time 24|12] [popup on|off] [reminders on|off]", summary: "show or change settings"},
	{name: "dismiss", usage: "[id ...]", summary: "hide deadlines from the popup (all when no id)", needsLogin: true},
}

// lookupCommand resolves aliases to the command's canonical entry.
func lookupCommand(name string) (commandInfo, bool) {
	for _, c := range commandInfos {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return commandInfo{}, false
}

func printHelp(loggedIn bool) {
	printlnFn("Available commands:")
	for _, c := range commandInfos {
		if c.needsLogin != loggedIn && c.name != "settings" {
			continue
		}
		name := c.name
		if c.usage != "" {
			name += " " + c.usage
		}
		printlnFn(fmt.Sprintf("  %-40s %s", name, c.summary))
	}
	printlnFn(fmt.Sprintf("  %-40s %s", "exit | quit", "leave the program"))
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token of a line selects the command, the rest are its
// arguments. Commands that need a signed-in user are refused otherwise.
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	handlers := a.handlers()

	for {
		printlnFn(fmt.Sprintf("lifeadmin %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)

		if len(parts) > 0 {
			if quit := dispatch(ctx, a, handlers, parts[0], parts[1:]); quit {
				return
			}
		}
		if readErr != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, handlers map[string]handler, cmd string, args []string) bool {
	switch cmd {
	case "help", "?":
		printHelp(a.isLoggedIn())
		return false
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	}

	info, ok := lookupCommand(cmd)
	h, found := handlers[info.name]
	if !ok || !found {
		printlnFn("Unknown command:", cmd)
		return false
	}
	if info.needsLogin && !a.isLoggedIn() {
		printlnFn(errNotLoggedIn.Error())
		return false
	}
	if err := h(ctx, args); err != nil {
		printlnFn("error:", err)
	}
	return false
}
