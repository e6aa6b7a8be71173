package main

import (
	"fmt"

	"ecotourism-workers/internal/vocabulary"
	"ecotourism-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newVocabCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Export or validate the controlled vocabulary document",
	}
	cmd.AddCommand(newVocabExportCmd(root), newVocabValidateCmd())
	return cmd
}

func newVocabExportCmd(root *rootOptions) *cobra.Command {
	var (
		output  string
		builtin bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active vocabulary as an editable JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab := vocabulary.Default()
			if !builtin {
				cfg, err := root.loadConfig()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if vocab, err = vocabulary.Load(cfg.Translator.VocabularyPath); err != nil {
					return err
				}
			}

			if output == "" {
				return printJSON(cmd.OutOrStdout(), vocab.Document())
			}
			if err := registry.SaveDocument(output, vocab.Document()); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vocabulary %s written to %s\n", vocab.Version(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (defaults to stdout)")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "export the built-in vocabulary, ignoring configuration")
	return cmd
}

func newVocabValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a vocabulary document against its schema and compile it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := vocabulary.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (version %s)\n", args[0], vocab.Version())
			return nil
		},
	}
}
