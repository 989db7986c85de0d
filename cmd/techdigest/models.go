package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pevans/techdigest/summarizer"
	"github.com/spf13/cobra"
)

func newModelsCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the Gemini models available to GEMINI_API_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.ValidateModelAccess(); err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, opts.verbose)
			generator, err := summarizer.NewGeminiGenerator(cmd.Context(), cfg.APIKey, log)
			if err != nil {
				return err
			}

			models, err := generator.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printModelsJSON(cmd.OutOrStdout(), models)
			}
			printModels(cmd.OutOrStdout(), models)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}

// printModels prints the catalog in human-readable form
func printModels(out io.Writer, models []summarizer.ModelInfo) {
	if len(models) == 0 {
		fmt.Fprintln(out, "No models available.")
		return
	}

	for _, m := range models {
		fmt.Fprintf(out, "%s\n", m.Name)
		if m.DisplayName != "" {
			fmt.Fprintf(out, "   Name: %s\n", m.DisplayName)
		}
		if len(m.SupportedActions) > 0 {
			fmt.Fprintf(out, "   Actions: %s\n", strings.Join(m.SupportedActions, ", "))
		}
		fmt.Fprintf(out, "   Tokens: %d in / %d out\n", m.InputTokenLimit, m.OutputTokenLimit)
		fmt.Fprintln(out)
	}
}

// printModelsJSON prints the catalog as indented JSON
func printModelsJSON(out io.Writer, models []summarizer.ModelInfo) error {
	data, err := json.MarshalIndent(map[string]any{
		"models": models,
		"total":  len(models),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(out, string(data))
	return nil
}
