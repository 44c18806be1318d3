package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benjaminschreck/go-scribe/pkg/scribe"
	"github.com/benjaminschreck/go-scribe/pkg/scribe/docx"
	"github.com/benjaminschreck/go-scribe/pkg/scribe/text"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	root := &cobra.Command{
		Use:   "scribe",
		Short: "Build styled DOCX documents from YAML declarations",
		Long: `Scribe assembles documents declared in YAML (styles, list numbering,
sections, paragraphs, tables) into DOCX files.

Every reference is checked before anything is written: unknown styles,
cyclic basedOn chains, unknown numbering and malformed nodes are all
reported together.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := scribe.ConfigFromEnvironment()
			if configPath != "" {
				loaded, err := scribe.LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				config = loaded
			}
			if logLevel != "" {
				config.LogLevel = strings.ToLower(logLevel)
			}
			if logFormat != "" {
				config.LogFormat = strings.ToLower(logFormat)
			}
			if err := config.Validate(); err != nil {
				return err
			}
			scribe.SetLogger(scribe.NewLogger(os.Stderr, config.LogLevel, config.LogFormat))
			scribe.SetGlobalConfig(config)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			scribe.GetLogger().Sync()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(buildCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(stylesCmd())
	root.AddCommand(versionCmd())
	return root
}

func packagerFor(format string) (scribe.Packager, string, error) {
	switch format {
	case "docx", "":
		return docx.New(), ".docx", nil
	case "text", "txt":
		return text.New(), ".txt", nil
	}
	return nil, "", fmt.Errorf("unknown format %q (want docx or text)", format)
}

func buildCmd() *cobra.Command {
	var (
		output  string
		outDir  string
		format  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build <declaration.yaml>...",
		Short: "Build documents from declarations",
		Long: `Build one or more documents. Declarations are built concurrently,
at most buildConcurrency at a time.

Example:
  scribe build guide.yaml -o guide.docx
  scribe build docs/*.yaml --out-dir dist
  scribe build guide.yaml --format text -o -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output takes a single declaration; use --out-dir for %d", len(args))
			}
			packager, ext, err := packagerFor(format)
			if err != nil {
				return err
			}

			docs := make([]*scribe.Document, len(args))
			for i, path := range args {
				doc, err := scribe.LoadDeclarationFile(path)
				if err != nil {
					return err
				}
				docs[i] = doc
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			outputs, err := scribe.BuildAll(ctx, docs, packager, 0)
			if err != nil {
				return err
			}

			for i, data := range outputs {
				dest := output
				if dest == "" {
					base := strings.TrimSuffix(filepath.Base(args[i]), filepath.Ext(args[i]))
					dest = filepath.Join(outDir, base+ext)
				}
				if dest == "-" {
					if _, err := cmd.OutOrStdout().Write(data); err != nil {
						return err
					}
					continue
				}
				if err := os.WriteFile(dest, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", dest, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", dest, len(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for outputs named after their declarations")
	cmd.Flags().StringVarP(&format, "format", "f", "docx", "output format: docx or text")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up on documents not yet started after this long")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <declaration.yaml>...",
		Short: "Check declarations without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				doc, err := scribe.LoadDeclarationFile(path)
				if err == nil {
					_, err = doc.Finalize()
				}
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
					continue
				}

				failed++
				if errs := scribe.ValidationErrors(err); len(errs) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d problems\n", path, len(errs))
					for _, e := range errs {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", e)
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d declarations are invalid", failed, len(args))
			}
			return nil
		},
	}
}

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles <declaration.yaml>",
		Short: "Print every style with its resolved formatting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scribe.LoadDeclarationFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range doc.Styles.IDs() {
				rs, err := doc.Styles.Resolve(id)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", id, err)
					continue
				}
				chain := make([]string, len(rs.Chain))
				for i, c := range rs.Chain {
					chain[i] = string(c)
				}
				fmt.Fprintf(out, "%s\n  chain: %s\n  run: %s\n  paragraph: %s\n",
					id, strings.Join(chain, " -> "), describeRun(rs.Run), describeParagraph(rs.Paragraph))
			}
			return nil
		},
	}
}

func describeRun(r scribe.RunProps) string {
	var parts []string
	if r.Font != nil {
		parts = append(parts, "font="+*r.Font)
	}
	if r.Size != nil {
		parts = append(parts, fmt.Sprintf("size=%.1fpt", float64(*r.Size)/2))
	}
	if r.Color != nil {
		parts = append(parts, "color="+*r.Color)
	}
	for _, f := range []struct {
		name string
		val  *bool
	}{{"bold", r.Bold}, {"italics", r.Italics}, {"strike", r.Strike}, {"underline", r.Underline}} {
		if f.val != nil {
			parts = append(parts, fmt.Sprintf("%s=%t", f.name, *f.val))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func describeParagraph(p scribe.ParagraphProps) string {
	var parts []string
	if p.Alignment != "" {
		parts = append(parts, "align="+string(p.Alignment))
	}
	if p.SpacingBefore != nil {
		parts = append(parts, fmt.Sprintf("before=%d", *p.SpacingBefore))
	}
	if p.SpacingAfter != nil {
		parts = append(parts, fmt.Sprintf("after=%d", *p.SpacingAfter))
	}
	if p.IndentLeft != nil {
		parts = append(parts, fmt.Sprintf("indent=%d", *p.IndentLeft))
	}
	if p.KeepNext != nil {
		parts = append(parts, fmt.Sprintf("keepNext=%t", *p.KeepNext))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scribe version %s\n", version)
		},
	}
}
