package main

import (
	"os"
	"strings"

	"stepfolio/internal/cli"
)

// directLookup maps an id prefix to the command that shows it.
var directLookup = []struct {
	prefix string
	cmd    []string
}{
	{"fld-", []string{"folders", "show"}},
	{"task-", []string{"tasks", "show"}},
}

func lookupCommand(s string) []string {
	s = strings.TrimSpace(s)
	for _, d := range directLookup {
		// Permissive: ids are generated but users may paste variants.
		if strings.HasPrefix(s, d.prefix) && len(s) > len(d.prefix) {
			return d.cmd
		}
	}
	return nil
}

func rewriteDirectLookupArgs(argv []string) []string {
	// `stepfolio <fld-id>` works like `stepfolio folders show <fld-id>` (and task ids
	// like `tasks show`). Cobra treats the first non-flag token as a subcommand, so
	// argv is rewritten before parsing. Persistent flags may come first, so look for
	// the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
		"--format":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insert := func(at int, cmd []string) []string {
		out := make([]string, 0, len(argv)+len(cmd))
		out = append(out, argv[:at]...)
		out = append(out, cmd...)
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if cmd := lookupCommand(argv[i+1]); cmd != nil {
					return insert(i+1, cmd)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if cmd := lookupCommand(a); cmd != nil {
			return insert(i, cmd)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
