package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Info holds metadata about a command
type Info struct {
	Name        string   // Primary command name
	Aliases     []string // Alternative names for the command
	Description string   // Short description of what the command does
	Usage       string   // Usage syntax (e.g., ":[range]d")
	Category    string   // Category for grouping (e.g., "Motion", "Editing")
	Examples    []string // Usage examples
}

// Registry manages commands with their metadata
type Registry[T any] struct {
	commands map[string]T    // Command name -> handler
	info     map[string]Info // Command name -> metadata
	aliases  map[string]string
}

// New creates an empty registry
func New[T any]() *Registry[T] {
	return &Registry[T]{
		commands: make(map[string]T),
		info:     make(map[string]Info),
		aliases:  make(map[string]string),
	}
}

// Register adds a command with its metadata to the registry
func (r *Registry[T]) Register(name string, fn T, info Info) {
	if info.Name == "" {
		info.Name = name
	}
	r.commands[name] = fn
	r.info[name] = info

	for _, alias := range info.Aliases {
		r.commands[alias] = fn
		r.aliases[alias] = name
	}
}

// Lookup returns the handler registered under name or one of its aliases
func (r *Registry[T]) Lookup(name string) (T, bool) {
	fn, ok := r.commands[name]
	return fn, ok
}

// Primary returns the primary name for name, which may be an alias
func (r *Registry[T]) Primary(name string) string {
	if primary, ok := r.aliases[name]; ok {
		return primary
	}
	return name
}

// Info returns the metadata for a command (by name or alias)
func (r *Registry[T]) Info(name string) (Info, bool) {
	info, ok := r.info[r.Primary(name)]
	return info, ok
}

// Categories returns all commands organized by category
func (r *Registry[T]) Categories() map[string][]Info {
	categories := make(map[string][]Info)
	for _, info := range r.info {
		categories[info.Category] = append(categories[info.Category], info)
	}
	for category := range categories {
		sort.Slice(categories[category], func(i, j int) bool {
			return categories[category][i].Name < categories[category][j].Name
		})
	}
	return categories
}

// Names returns all primary command names (no aliases)
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.info))
	for name := range r.info {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns command suggestions for a typo using simple fuzzy matching
func (r *Registry[T]) Suggest(input string) []string {
	input = strings.ToLower(input)
	var suggestions []string

	for name := range r.commands {
		if strings.HasPrefix(strings.ToLower(name), input) {
			suggestions = append(suggestions, r.Primary(name))
		}
	}

	if len(suggestions) == 0 {
		for name := range r.commands {
			if levenshtein(input, strings.ToLower(name)) <= 1 {
				suggestions = append(suggestions, r.Primary(name))
			}
		}
	}

	sort.Strings(suggestions)
	return dedup(suggestions)
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// FormatCommandHelp returns markdown help for a single command
func (r *Registry[T]) FormatCommandHelp(name string) (string, bool) {
	info, ok := r.Info(name)
	if !ok {
		return "", false
	}

	var help strings.Builder
	fmt.Fprintf(&help, "## `%s`\n\n", info.Name)
	if info.Description != "" {
		fmt.Fprintf(&help, "%s\n\n", info.Description)
	}
	if info.Usage != "" {
		fmt.Fprintf(&help, "Usage: `%s`\n\n", info.Usage)
	}
	if len(info.Aliases) > 0 {
		fmt.Fprintf(&help, "Aliases: %s\n\n", strings.Join(info.Aliases, ", "))
	}
	if len(info.Examples) > 0 {
		help.WriteString("Examples:\n\n")
		for _, example := range info.Examples {
			fmt.Fprintf(&help, "- `%s`\n", example)
		}
		help.WriteString("\n")
	}
	return help.String(), true
}

// FormatCategoryHelp returns markdown help for all commands in a category
func (r *Registry[T]) FormatCategoryHelp(category string) (string, bool) {
	for name, commands := range r.Categories() {
		if !strings.EqualFold(name, category) {
			continue
		}
		var help strings.Builder
		fmt.Fprintf(&help, "## %s\n\n", name)
		writeTable(&help, commands)
		return help.String(), true
	}
	return "", false
}

// FormatAllHelp returns markdown help for all commands, organized by category
func (r *Registry[T]) FormatAllHelp(title string) string {
	var help strings.Builder
	fmt.Fprintf(&help, "# %s\n\n", title)

	categories := r.Categories()
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		fmt.Fprintf(&help, "## %s\n\n", category)
		writeTable(&help, categories[category])
	}
	return help.String()
}

func writeTable(sb *strings.Builder, commands []Info) {
	sb.WriteString("| command | description |\n|---|---|\n")
	for _, cmd := range commands {
		name := cmd.Name
		if len(cmd.Aliases) > 0 {
			name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Fprintf(sb, "| `%s` | %s |\n", strings.ReplaceAll(name, "|", `\|`), cmd.Description)
	}
	sb.WriteString("\n")
}

// levenshtein is the edit distance between two strings, in runes
func levenshtein(a, b string) int {
	s, t := []rune(a), []rune(b)
	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}
	prev := make([]int, len(t)+1)
	cur := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s); i++ {
		cur[0] = i
		for j := 1; j <= len(t); j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(t)]
}
