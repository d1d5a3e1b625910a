// Command stylegenie is the terminal client for the StyleGenie API:
// authentication, profiles, wardrobe management, outfit recommendations
// and locally saved looks.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/stylegenie/stylegenie-go/config"
	"github.com/stylegenie/stylegenie-go/internal/bootstrap"
	"github.com/stylegenie/stylegenie-go/internal/output"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
	Stdout io.Writer
	Stdin  io.Reader
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2)
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := bootstrap.InitLogger(cfg.LogLevel)

	ctx := context.Background()
	app, err := bootstrap.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("wire application", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmdName, runErr)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate and store the session locally",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create an account (does not log in)",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Invalidate the session server-side and clear local state",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the logged-in user and token expiry",
			run:         runWhoami,
		},
		"token": {
			name:        "token",
			description: "Print a valid access token, refreshing if needed",
			run:         runToken,
		},
		"refresh": {
			name:        "refresh",
			description: "Force an access-token refresh",
			run:         runRefresh,
		},
		"change-password": {
			name:        "change-password",
			description: "Rotate the account password",
			run:         runChangePassword,
		},
		"profile-show": {
			name:        "profile-show",
			description: "Show the role-specific profile",
			run:         runProfileShow,
		},
		"profile-update": {
			name:        "profile-update",
			description: "Update the role-specific profile",
			run:         runProfileUpdate,
		},
		"wardrobe-list": {
			name:        "wardrobe-list",
			description: "List wardrobe items",
			run:         runWardrobeList,
		},
		"wardrobe-show": {
			name:        "wardrobe-show",
			description: "Show one wardrobe item",
			run:         runWardrobeShow,
		},
		"wardrobe-add": {
			name:        "wardrobe-add",
			description: "Add a garment to the wardrobe",
			run:         runWardrobeAdd,
		},
		"wardrobe-update": {
			name:        "wardrobe-update",
			description: "Update a wardrobe item",
			run:         runWardrobeUpdate,
		},
		"wardrobe-remove": {
			name:        "wardrobe-remove",
			description: "Remove a wardrobe item",
			run:         runWardrobeRemove,
		},
		"recommend": {
			name:        "recommend",
			description: "Request outfit recommendations for an occasion",
			run:         runRecommend,
		},
		"stylists": {
			name:        "stylists",
			description: "Browse the stylist directory",
			run:         runStylists,
		},
		"looks-save": {
			name:        "looks-save",
			description: "Save a named outfit locally",
			run:         runLooksSave,
		},
		"looks-list": {
			name:        "looks-list",
			description: "List saved looks",
			run:         runLooksList,
		},
		"looks-remove": {
			name:        "looks-remove",
			description: "Remove a saved look",
			run:         runLooksRemove,
		},
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, "Usage: stylegenie <command> [flags]\n\n")
	fmt.Fprintf(os.Stdout, "Available commands:\n")
	all := commands()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %-18s %s\n", all[name].name, all[name].description)
	}
}

// outputOptions holds the flags shared by every command that prints a
// result.
type outputOptions struct {
	query  string
	asJSON bool
}

func addOutputFlags(fs *flag.FlagSet, cfg config.OutputConfig) *outputOptions {
	opts := &outputOptions{query: cfg.Query}
	fs.StringVar(&opts.query, "query", opts.query, "JMESPath expression applied to the result")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the raw JSON result")
	return opts
}

// wantsJSON reports whether the human-readable table should be skipped.
// A query implies JSON output: filtered results have no fixed shape.
func (o *outputOptions) wantsJSON() bool {
	return o.asJSON || strings.TrimSpace(o.query) != ""
}

func (o *outputOptions) render(w io.Writer, value any) error {
	return output.RenderJSON(w, value, o.query)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// promptSecret reads a value from the terminal when the flag was left
// empty. Secrets stay out of shell history this way.
func promptSecret(ctx *commandContext, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	scanner := bufio.NewScanner(ctx.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		return "", fmt.Errorf("%s is required", label)
	}
	entered := strings.TrimSpace(scanner.Text())
	if entered == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	return entered, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
