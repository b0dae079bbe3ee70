package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/chorekit/internal/adapter/driven/gemini"
	"github.com/ericfisherdev/chorekit/internal/application"
)

func newTranslateCommand(app *App) *cobra.Command {
	var (
		provider    string
		opts        application.TranslateOptions
		temperature float32
	)

	cmd := &cobra.Command{
		Use:   "translate <source> <output>",
		Short: "Translate a text file with a language model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			translator, err := app.NewTranslator(ctx, provider)
			if err != nil {
				return err
			}
			if provider == ProviderGemini && !cmd.Flags().Changed("model") {
				opts.Model = gemini.DefaultModel
			}
			opts.Temperature = temperature

			svc := application.NewTranslateService(translator, filesystem.NewDir(""), cmd.OutOrStdout())
			return svc.TranslateFile(ctx, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", ProviderOpenAI, "translation backend: openai or gemini")
	cmd.Flags().StringVar(&opts.Model, "model", application.DefaultTranslateModel, "model name")
	cmd.Flags().StringVar(&opts.From, "from", application.DefaultTranslateFrom, "source language")
	cmd.Flags().StringVar(&opts.To, "to", application.DefaultTranslateTo, "target language")
	cmd.Flags().Float32Var(&temperature, "temperature", 0, "sampling temperature; 0 uses the model default")
	return cmd
}
