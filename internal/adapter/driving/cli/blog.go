package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/chorekit/internal/application"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

func newBlogCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Publish recipe posts to Blogger",
	}

	var (
		dir, clientSecrets, templateFile string
		publish                          bool
	)
	draft := &cobra.Command{
		Use:   "draft <blog_id> <youtube_url>",
		Short: "Create a recipe post from the caption pipeline's title and description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws := filesystem.NewDir(dir)

			opts := application.BlogOptions{BlogID: args[0], VideoURL: args[1], Publish: publish}
			if templateFile != "" {
				tmpl, err := ws.ReadText(templateFile)
				if err != nil {
					return err
				}
				opts.Template = tmpl
			}

			if clientSecrets == "" {
				clientSecrets = app.Config.ClientSecrets
			}
			publisher := application.NewProvider(func(ctx context.Context) (driven.BlogPublisher, error) {
				return app.NewBlogPublisher(ctx, clientSecrets)
			})

			_, err := application.NewBlogService(ws, publisher, cmd.OutOrStdout()).Post(ctx, opts)
			return err
		},
	}
	draft.Flags().StringVar(&dir, "dir", ".", "directory holding the *.title.pl and *.description.pl files")
	draft.Flags().BoolVar(&publish, "publish", false, "publish the post instead of saving a draft")
	draft.Flags().StringVar(&clientSecrets, "client-secrets", "", "Google OAuth client secrets file (default from CHOREKIT_CLIENT_SECRETS)")
	draft.Flags().StringVar(&templateFile, "template", "", "HTML template file, relative to --dir, replacing the built-in recipe layout")

	cmd.AddCommand(draft)
	return cmd
}
