package ex

import "github.com/slzatz/vix/vim/registry"

// verbs is filled in init: :g parses its sub-command through it
var verbs *registry.Registry[verbParser]

func init() {
	verbs = newVerbRegistry()
}

func newVerbRegistry() *registry.Registry[verbParser] {
	r := registry.New[verbParser]()

	// Printing
	r.Register("print", parsePrint(false), registry.Info{
		Aliases:     []string{"p"},
		Description: "Print lines",
		Usage:       ":[range]p",
		Category:    "Printing",
		Examples:    []string{":p", ":1,5p", ":%p"},
	})
	r.Register("number", parsePrint(true), registry.Info{
		Aliases:     []string{"nu", "#"},
		Description: "Print lines with their line numbers",
		Usage:       ":[range]nu",
		Category:    "Printing",
		Examples:    []string{":%#", ":.,$nu"},
	})
	r.Register("=", parseLineNumber, registry.Info{
		Description: "Print the line number of the last line (or of the address)",
		Usage:       ":[line]=",
		Category:    "Printing",
		Examples:    []string{":=", ":.="},
	})

	// Editing
	r.Register("delete", parseDelete, registry.Info{
		Aliases:     []string{"d", "de", "del"},
		Description: "Delete lines into the unnamed register",
		Usage:       ":[range]d [count]",
		Category:    "Editing",
		Examples:    []string{":d", ":2,3d", ":d 3", ":%d"},
	})
	r.Register("yank", parseYank, registry.Info{
		Aliases:     []string{"y", "ya"},
		Description: "Yank lines into the unnamed register",
		Usage:       ":[range]y [count]",
		Category:    "Editing",
		Examples:    []string{":y", ":1,$y"},
	})
	r.Register("put", parsePut, registry.Info{
		Aliases:     []string{"pu"},
		Description: "Put the unnamed register below a line (0 puts above the first)",
		Usage:       ":[line]pu",
		Category:    "Editing",
		Examples:    []string{":pu", ":0pu", ":$pu"},
	})
	r.Register("substitute", parseSubstitute, registry.Info{
		Aliases:     []string{"s"},
		Description: "Replace pattern matches; g replaces every match, i ignores case",
		Usage:       ":[range]s/pattern/replacement/[gi] [count]",
		Category:    "Editing",
		Examples:    []string{":s/foo/bar/", ":%s/a/b/g", `:s/\(x\)/<\1>/`, ":s"},
	})
	r.Register("&", parseRepeatSubstitute, registry.Info{
		Description: "Repeat the last substitute; && keeps its flags",
		Usage:       ":[range]&[&][gi] [count]",
		Category:    "Editing",
		Examples:    []string{":&", ":%&&"},
	})
	r.Register("move", parseMove(false), registry.Info{
		Aliases:     []string{"m", "mo"},
		Description: "Move lines below the addressed line",
		Usage:       ":[range]m {address}",
		Category:    "Editing",
		Examples:    []string{":m0", ":2,3m$", ":m+1"},
	})
	r.Register("copy", parseMove(true), registry.Info{
		Aliases:     []string{"co", "t"},
		Description: "Copy lines below the addressed line",
		Usage:       ":[range]t {address}",
		Category:    "Editing",
		Examples:    []string{":t.", ":1,2co$"},
	})
	r.Register("join", parseJoin, registry.Info{
		Aliases:     []string{"j"},
		Description: "Join lines",
		Usage:       ":[range]j [count]",
		Category:    "Editing",
		Examples:    []string{":j", ":1,4j"},
	})
	r.Register(">", parseShift(false), registry.Info{
		Description: "Shift lines right by shiftwidth, once per >",
		Usage:       ":[range]> [count]",
		Category:    "Editing",
		Examples:    []string{":>", ":%>>"},
	})
	r.Register("<", parseShift(true), registry.Info{
		Description: "Shift lines left by shiftwidth, once per <",
		Usage:       ":[range]< [count]",
		Category:    "Editing",
		Examples:    []string{":<", ":2,5<"},
	})

	// Global
	r.Register("global", parseGlobal(false), registry.Info{
		Aliases:     []string{"g"},
		Description: "Run a command on every line matching a pattern (default :p)",
		Usage:       ":[range]g[!]/pattern/[command]",
		Category:    "Global",
		Examples:    []string{":g/TODO/", ":g/^$/d", ":g!/x/d"},
	})
	r.Register("vglobal", parseGlobal(true), registry.Info{
		Aliases:     []string{"v"},
		Description: "Run a command on every line not matching a pattern",
		Usage:       ":[range]v/pattern/[command]",
		Category:    "Global",
		Examples:    []string{":v/keep/d"},
	})

	// Files
	r.Register("read", parseRead, registry.Info{
		Aliases:     []string{"r"},
		Description: "Insert a file below the addressed line",
		Usage:       ":[line]r [file]",
		Category:    "Files",
		Examples:    []string{":r notes.txt", ":0r header.txt"},
	})
	r.Register("write", parseWrite, registry.Info{
		Aliases:     []string{"w"},
		Description: "Write the buffer, or a range of lines, to a file",
		Usage:       ":[range]w[!] [file]",
		Category:    "Files",
		Examples:    []string{":w", ":w copy.txt", ":1,10w part.txt"},
	})
	r.Register("edit", parseEdit, registry.Info{
		Aliases:     []string{"e"},
		Description: "Edit a file; e! discards changes and reloads",
		Usage:       ":e[!] [file]",
		Category:    "Files",
		Examples:    []string{":e other.txt", ":e!"},
	})
	r.Register("wq", parseWriteQuit(true), registry.Info{
		Description: "Write and quit",
		Usage:       ":wq [file]",
		Category:    "Files",
		Examples:    []string{":wq"},
	})
	r.Register("xit", parseWriteQuit(false), registry.Info{
		Aliases:     []string{"x"},
		Description: "Write if modified and quit",
		Usage:       ":x [file]",
		Category:    "Files",
		Examples:    []string{":x"},
	})
	r.Register("quit", parseQuit, registry.Info{
		Aliases:     []string{"q"},
		Description: "Quit; q! discards changes",
		Usage:       ":q[!]",
		Category:    "Files",
		Examples:    []string{":q", ":q!"},
	})

	// Undo
	r.Register("undo", parseUndo, registry.Info{
		Aliases:     []string{"u", "un"},
		Description: "Undo the last change",
		Usage:       ":u",
		Category:    "Undo",
	})
	r.Register("redo", parseRedo, registry.Info{
		Aliases:     []string{"red"},
		Description: "Redo the last undone change",
		Usage:       ":red",
		Category:    "Undo",
	})

	// Options
	r.Register("set", parseSet, registry.Info{
		Aliases:     []string{"se"},
		Description: "Show or change options: ignorecase, wrapscan, shiftwidth, tabstop, undolevels",
		Usage:       ":set [option[=value] | nooption ...]",
		Category:    "Options",
		Examples:    []string{":set", ":set ic", ":set sw=4 nows"},
	})
	r.Register("help", parseHelp, registry.Info{
		Aliases:     []string{"h"},
		Description: "Show help for a command or category",
		Usage:       ":h [topic]",
		Category:    "Options",
		Examples:    []string{":h", ":h s", ":h dd", ":h Editing"},
	})
	return r
}

// Help returns markdown help for ex commands: one command, a category, or
// everything when topic is empty
func Help(topic string) (string, bool) {
	if topic == "" {
		return verbs.FormatAllHelp("Ex commands"), true
	}
	if text, ok := verbs.FormatCommandHelp(topic); ok {
		return text, true
	}
	return verbs.FormatCategoryHelp(topic)
}
