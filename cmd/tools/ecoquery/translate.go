package main

import (
	"context"
	"fmt"
	"strings"

	"ecotourism-workers/internal/common/config"
	"ecotourism-workers/internal/translator"

	"github.com/spf13/cobra"
)

func newTranslateCmd(root *rootOptions) *cobra.Command {
	var (
		useAI     bool
		asJSON    bool
		queryOnly bool
	)

	cmd := &cobra.Command{
		Use:   "translate [question]",
		Short: "Translate a natural-language question into a SPARQL query",
		Long: `Translate runs the full pipeline on one question. Template synthesis is used
unless --ai is given and apis.genai.base_url is configured.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			tr, _, err := translator.Build(cfg, root.newLogger(), translator.Options{DisableAI: !useAI})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Translator.RequestDeadline))
			defer cancel()

			result := tr.Translate(ctx, strings.Join(args, " "))

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return printJSON(out, result)
			case queryOnly:
				_, err := fmt.Fprintln(out, result.Query)
				return err
			}

			fmt.Fprintf(out, "Domain:     %s\n", result.Domain)
			fmt.Fprintf(out, "Source:     %s\n", result.Source)
			if result.FallbackReason != "" {
				fmt.Fprintf(out, "Fallback:   %s\n", result.FallbackReason)
			}
			fmt.Fprintf(out, "Confidence: %.2f\n", result.Confidence)
			for _, e := range result.Entities {
				fmt.Fprintf(out, "Entity:     %s=%s (%q)\n", e.Category, e.Value, e.Surface)
			}
			for _, k := range result.Filters.Keys() {
				fmt.Fprintf(out, "Filter:     %s=%v\n", k, result.Filters[k])
			}
			fmt.Fprintf(out, "\n%s\n", result.Query)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "try the generative backend before template synthesis")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVarP(&queryOnly, "query-only", "q", false, "print only the query text")
	return cmd
}
