package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources/filesource"
	"github.com/gordon0907/ark-tribe-log/internal/server"
	"github.com/gordon0907/ark-tribe-log/internal/tribelog"
)

type dumpOptions struct {
	format   string
	lenient  bool
	encoding string
	color    bool
}

func newDumpCmd(root *rootOptions) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:   "dump [save-file]",
		Short: "Print the decoded tribe log, most recent first",
		Long: `Decode the tribe log and print it. Without an argument the configured
source is used. Formats: text, json, yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src sources.SaveSource
			if len(args) == 1 {
				src = filesource.NewSource(args[0])
			} else {
				s, err := sources.GlobalRegistry.Open(server.SourceSpec(root.cfg))
				if err != nil {
					return err
				}
				src = s
			}

			data, err := src.Read(cmd.Context())
			if err != nil {
				return err
			}

			encoding := opts.encoding
			if encoding == "" {
				encoding = root.cfg.Decoder.NarrowEncoding
			}
			log, err := tribelog.Decode(data,
				tribelog.WithStrictCount(root.cfg.Decoder.StrictCount && !opts.lenient),
				tribelog.WithNarrowEncoding(tribelog.NarrowEncoding(encoding)),
				tribelog.WithCountMismatchHook(func(declared, actual int) {
					root.logger.Warn().Int("declared", declared).Int("decoded", actual).Msg("tribe log entry count mismatch")
				}),
			)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Describe(), err)
			}
			return writeLog(cmd.OutOrStdout(), log, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "Do not fail when the declared entry count differs")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "Narrow entry encoding: ascii, latin1 (default from config)")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Render RichColor runs with ANSI colors (text format)")
	return cmd
}

func writeLog(w io.Writer, log tribelog.DecodedLog, opts *dumpOptions) error {
	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(log)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(log); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, line := range log {
			if _, err := fmt.Fprintln(w, renderText(line, opts.color)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func renderText(line tribelog.LogLine, color bool) string {
	if !color {
		return line.Text()
	}
	var sb strings.Builder
	for _, s := range line {
		if s.Color == nil {
			sb.WriteString(s.Text)
			continue
		}
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm%s\x1b[0m", s.Color.R, s.Color.G, s.Color.B, s.Text)
	}
	return sb.String()
}
