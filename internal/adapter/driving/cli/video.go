package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/chorekit/internal/application"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

func newVideoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Extract tags and produce captions for YouTube videos",
	}
	cmd.AddCommand(newVideoTagsCommand(app), newVideoCaptionsCommand(app))
	return cmd
}

func newVideoTagsCommand(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "tags <url>",
		Short: "Save the tags of a video to <title>.tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewTagService(app.NewVideoSource(), filesystem.NewDir(dir), cmd.OutOrStdout())
			_, err := svc.SaveTags(cmd.Context(), args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory the tags file is written to")
	return cmd
}

func newVideoCaptionsCommand(app *App) *cobra.Command {
	var (
		url, dir, clientSecrets string
		langs                   []string
		upload                  bool
	)

	cmd := &cobra.Command{
		Use:   "captions",
		Short: "Transcribe a video, translate its captions and metadata, optionally upload them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			languages := splitList(langs)
			if len(languages) == 0 {
				return errors.New("--lang requires at least one language code")
			}
			transcriber, err := app.NewTranscriber()
			if err != nil {
				return err
			}
			translator, err := app.NewTranslator(ctx, ProviderOpenAI)
			if err != nil {
				return err
			}
			if clientSecrets == "" {
				clientSecrets = app.Config.ClientSecrets
			}
			platform := application.NewProvider(func(ctx context.Context) (driven.CaptionPlatform, error) {
				return app.NewCaptionPlatform(ctx, clientSecrets)
			})

			svc := application.NewCaptionService(
				app.NewVideoSource(),
				transcriber,
				translator,
				filesystem.NewDir(dir),
				platform,
				app.Config.TranslateParallel,
				cmd.OutOrStdout(),
			)
			_, err = svc.Run(ctx, application.CaptionOptions{URL: url, Languages: languages, Upload: upload})
			return err
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "YouTube video URL")
	cmd.Flags().StringSliceVar(&langs, "lang", nil, "caption languages, e.g. en,de,fr")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload captions and localized metadata to YouTube")
	cmd.Flags().StringVar(&clientSecrets, "client-secrets", "", "Google OAuth client secrets file (default from CHOREKIT_CLIENT_SECRETS)")
	cmd.Flags().StringVar(&dir, "dir", ".", "working directory for downloaded and generated files")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}
