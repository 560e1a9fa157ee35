package nutriguide

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RunREPL reads questions line by line from in until EOF, "exit" or "x", and
// writes each answer to out. A failed turn is reported and the loop continues.
func RunREPL(ctx context.Context, in io.Reader, out io.Writer, assistant Assistant) error {
	fmt.Fprintln(out, "\nNutriGuide Chat (type 'exit' or 'x' to quit)")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "exit", "x":
			return nil
		case "":
			continue
		}

		answer, err := assistant.Ask(ctx, line)
		if err != nil {
			slog.Error("REPL: Turn failed", "error", err)
			fmt.Fprintf(out, "\nError: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\nNutriGuide:\n%s\n%s\n", answer, strings.Repeat("=", 50))
	}
	return scanner.Err()
}
