package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"stepfolio/internal/organizer"

	"github.com/spf13/cobra"
)

// linePrompter reads one line per prompt. An empty line keeps the offered
// default; EOF cancels.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(cmd *cobra.Command, app *App) organizer.Prompter {
	in := app.In
	if in == nil {
		in = os.Stdin
	}
	return &linePrompter{in: bufio.NewReader(in), out: cmd.ErrOrStderr()}
}

func (p *linePrompter) Prompt(label, initial string) (string, bool) {
	if initial != "" {
		fmt.Fprintf(p.out, "%s [%s] ", label, initial)
	} else {
		fmt.Fprintf(p.out, "%s ", label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return initial, true
	}
	return line, true
}
