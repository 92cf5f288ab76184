package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/irsum/internal/parser"
)

var buttonsKind string

func newButtonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buttons <file>",
		Short: "List the buttons of a capture file",
		Long: `List every button of a capture file without analyzing it.

Works for files that contain only parsed buttons, which analyze rejects.`,
		Args: cobra.ExactArgs(1),
		RunE: runButtons,
	}

	cmd.Flags().StringVarP(&buttonsKind, "kind", "k", "", "only list buttons of this kind (parsed, raw)")

	return cmd
}

func runButtons(cmd *cobra.Command, args []string) error {
	var filter *parser.Kind
	if buttonsKind != "" {
		var kind parser.Kind
		if err := kind.UnmarshalText([]byte(buttonsKind)); err != nil {
			return fmt.Errorf("invalid --kind: %w", err)
		}
		filter = &kind
	}

	file, err := readCapture(args[0], GetGlobalConfig().Analysis.MaxFileSize, newLogger("cli"))
	if err != nil {
		return err
	}

	listButtons(cmd.OutOrStdout(), args[0], file, filter)
	return nil
}

func listButtons(out io.Writer, source string, file *parser.File, filter *parser.Kind) {
	opts := termfmt.DefaultOptions()
	opts.Color = isColorEnabled()
	opts.Emoji = !isEmojiDisabled()

	fmt.Fprintf(out, "%s %s: %s, version %d\n", GetEmoji("file"), source, file.Filetype, file.Version)
	fmt.Fprintf(out, "Found %d buttons:\n", len(file.Buttons))

	items := make([]termfmt.TreeItem, 0, len(file.Buttons))
	for _, button := range file.Buttons {
		kind := button.Body.Kind()
		if filter != nil && kind != *filter {
			continue
		}
		items = append(items, termfmt.TreeItem{
			Label:    GetKindEmoji(kind) + " " + button.Name,
			Value:    "(" + kind.String() + ")",
			Children: describeBody(button.Body),
		})
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "  no buttons match")
		return
	}
	items[len(items)-1].Last = true

	fmt.Fprintln(out, termfmt.TreeViewWithOptions(items, opts))
}

// describeBody returns the body fields as tree children
func describeBody(body parser.Body) []termfmt.TreeItem {
	var children []termfmt.TreeItem
	switch b := body.(type) {
	case *parser.ParsedButton:
		children = []termfmt.TreeItem{
			{Label: "Protocol", Value: b.Protocol},
			{Label: "Address", Value: b.Address},
			{Label: "Command", Value: b.Command},
		}
	case *parser.RawButton:
		children = []termfmt.TreeItem{
			{Label: "Carrier", Value: fmt.Sprintf("%d Hz, duty %.2f", b.Frequency, b.DutyCycle)},
			{Label: "Data", Value: fmt.Sprintf("%d pulses", len(b.Data))},
		}
		if b.FinalOn != nil {
			children = append(children, termfmt.TreeItem{Label: "Final mark", Value: fmt.Sprintf("%d µs", *b.FinalOn)})
		}
	default:
		return nil
	}
	children[len(children)-1].Last = true
	return children
}
