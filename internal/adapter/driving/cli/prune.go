package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/chorekit/internal/application"
	"github.com/ericfisherdev/chorekit/internal/config"
	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

func newDropletsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "droplets",
		Short: "Manage DigitalOcean droplets",
	}

	var (
		memory, vcpus, regions []string
		dryRun                 bool
	)
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Destroy every droplet that does not match the keep filter",
		Long: "A droplet is kept only when its memory, vCPU count and region all appear\n" +
			"in the given lists. Every other droplet is destroyed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := keepFilter(memory, vcpus, regions)
			if err != nil {
				return err
			}
			cloud, err := app.NewCloud(ctx, app.Config.DigitalOceanToken)
			if err != nil {
				return err
			}
			audit, err := app.auditStore(ctx)
			if err != nil {
				return err
			}

			_, err = application.NewPruneService(cloud, audit, cmd.OutOrStdout()).PruneDroplets(ctx, filter, dryRun)
			return err
		},
	}
	prune.Flags().StringSliceVar(&memory, "memory", nil, "memory sizes in MB to keep")
	prune.Flags().StringSliceVar(&vcpus, "vcpus", nil, "vCPU counts to keep")
	prune.Flags().StringSliceVar(&regions, "regions", nil, "region slugs to keep")
	prune.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be destroyed without deleting")
	for _, name := range []string{"memory", "vcpus", "regions"} {
		_ = prune.MarkFlagRequired(name)
	}

	cmd.AddCommand(prune)
	return cmd
}

func newProjectsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage DigitalOcean projects",
	}

	var (
		keepIDs []string
		dryRun  bool
	)
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete every project not listed in --keep-ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			keep := splitList(keepIDs)
			if len(keep) == 0 {
				return fmt.Errorf("--keep-ids: at least one project ID is required")
			}
			cloud, err := app.NewCloud(ctx, app.Config.DigitalOceanToken)
			if err != nil {
				return err
			}
			audit, err := app.auditStore(ctx)
			if err != nil {
				return err
			}

			_, err = application.NewPruneService(cloud, audit, cmd.OutOrStdout()).PruneProjects(ctx, keep, dryRun)
			return err
		},
	}
	prune.Flags().StringSliceVar(&keepIDs, "keep-ids", nil, "project IDs to keep")
	prune.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted without deleting")
	_ = prune.MarkFlagRequired("keep-ids")

	cmd.AddCommand(prune)
	return cmd
}

// keepFilter parses the droplet keep lists. Values may be separated by
// commas or spaces, and every list needs at least one value.
func keepFilter(memory, vcpus, regions []string) (model.KeepFilter, error) {
	mem, err := parseInts("--memory", splitList(memory))
	if err != nil {
		return model.KeepFilter{}, err
	}
	cpus, err := parseInts("--vcpus", splitList(vcpus))
	if err != nil {
		return model.KeepFilter{}, err
	}
	slugs := splitList(regions)
	counts := []struct {
		flag string
		n    int
	}{{"--memory", len(mem)}, {"--vcpus", len(cpus)}, {"--regions", len(slugs)}}
	for _, c := range counts {
		if c.n == 0 {
			return model.KeepFilter{}, fmt.Errorf("%s: at least one value is required", c.flag)
		}
	}
	return model.KeepFilter{MemoryMB: mem, VCPUs: cpus, Regions: slugs}, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, config.ParseList(v)...)
	}
	return out
}

func parseInts(flag string, values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", flag, v)
		}
		out = append(out, n)
	}
	return out, nil
}
