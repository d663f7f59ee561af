package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syampillai/sochart/pkg/board"
	"github.com/syampillai/sochart/pkg/manifest"
	"github.com/syampillai/sochart/pkg/part"
)

// newEmitCmd creates the 'emit' command for rendering option documents.
func newEmitCmd() *cobra.Command {
	var (
		out       string
		prettify  bool
		stream    bool
		overrides []string
	)

	cmd := &cobra.Command{
		Use:   "emit <manifest.toml>",
		Short: "Render a manifest into an option document",
		Long: `Render a TOML manifest into the chart option document.

The manifest is scheduled and validated, then run through one full update
cycle. By default the option document is printed to stdout; with --stream
the whole message sequence (initData messages followed by init) is printed
instead, which is what a rendering client would receive.

Examples:
  sochart emit plan.toml
  sochart emit plan.toml --pretty -o option.json
  sochart emit plan.toml --set animation=false --set tooltip.trigger=axis
  sochart emit plan.toml --stream`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			logger.Debug("manifest loaded", "path", args[0], "groups", len(m.Groups))

			reg := part.NewRegistry()
			_, comps, err := m.Build(reg)
			if err != nil {
				return err
			}

			opts := []board.Option{board.WithLogger(logger)}
			if m.Board != "" {
				opts = append(opts, board.WithName(m.Board))
			}
			for _, ov := range overrides {
				c, err := overrideCustomizer(ov)
				if err != nil {
					return err
				}
				opts = append(opts, board.WithCustomizer(c))
			}

			transport := board.NewMemoryTransport()
			b := board.New(reg, transport, opts...)
			b.Add(comps...)

			prog := newProgress(logger)
			if err := b.Update(ctx); err != nil {
				return err
			}
			prog.done("Rendered option")

			msgs := transport.Drain()
			output, err := renderOutput(msgs, stream, prettify)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, output, 0o644); err != nil {
					return err
				}
				printSuccess("Option written")
				printFile(out)
				return nil
			}
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&prettify, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&stream, "stream", false, "print the full message stream instead of just the option")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override an option path (path=json), repeatable")
	return cmd
}

// overrideCustomizer parses a "path=json" flag value into a customizer.
// Values that are not valid JSON are treated as strings.
func overrideCustomizer(spec string) (board.Customizer, error) {
	path, raw, ok := cutOverride(spec)
	if !ok {
		return nil, fmt.Errorf("invalid --set %q, expected path=value", spec)
	}
	if json.Valid([]byte(raw)) {
		return board.SetRaw(path, raw), nil
	}
	return board.Set(path, raw), nil
}

func cutOverride(spec string) (path, value string, ok bool) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '=' {
			return spec[:i], spec[i+1:], i > 0
		}
	}
	return "", "", false
}

// renderOutput selects and formats the emitted payload.
func renderOutput(msgs []board.Message, stream, prettify bool) ([]byte, error) {
	var output []byte
	if stream {
		var err error
		if output, err = json.Marshal(msgs); err != nil {
			return nil, err
		}
	} else {
		for _, m := range msgs {
			if m.Command == board.CommandInit {
				output = m.Payload
			}
		}
		if output == nil {
			return nil, fmt.Errorf("update produced no option document")
		}
	}
	if prettify {
		output = board.Pretty(output)
	}
	return output, nil
}
