package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrEmpty is returned by Execute for a blank line.
var ErrEmpty = errors.New("missing command")

// Command is a terminal command with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and reads flag state and
// the remaining positional arguments from FlagSet.Args().
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. usage is a one-line synopsis shown by help. run is called
// after fs.Parse(args[1:]) succeeds. A nil fs gets an empty flag set.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// NewFlagSet returns a flag set that reports errors instead of exiting and prints nothing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage returns one "name usage" line per command, sorted by name.
func (r *Registry) Usage() []string {
	lines := make([]string, 0, len(r.cmds))
	for _, name := range r.Names() {
		c := r.cmds[name]
		if c.Usage == "" {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, name+" "+c.Usage)
	}
	return lines
}

// Parse splits a terminal line into a command name and its arguments. A leading "/"
// is accepted and ignored.
func Parse(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/")
	return strings.Fields(line)
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Flags are reset to their defaults first, so values do not leak between runs.
// Returns an error for an unknown command, a parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrEmpty
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", name)
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}

// ExecuteLine parses and runs a terminal line.
func (r *Registry) ExecuteLine(line string) error {
	return r.Execute(Parse(line))
}
