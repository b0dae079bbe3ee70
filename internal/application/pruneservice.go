package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/google/uuid"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// ErrDeletionsFailed is returned after a prune run in which at least one
// deletion was rejected. Every other resource has still been processed.
var ErrDeletionsFailed = errors.New("one or more deletions failed")

// PruneReport summarizes one prune run.
type PruneReport struct {
	RunID   string
	DryRun  bool
	Deleted []string
	Kept    []string
	Skipped []string
	Failed  []string
}

// PruneService deletes droplets and projects that are not on a keep list.
type PruneService struct {
	cloud    driven.CloudClient
	audit    driven.AuditStore
	out      io.Writer
	newRunID func() string
}

// NewPruneService creates a PruneService. audit may be nil to disable the audit trail.
func NewPruneService(cloud driven.CloudClient, audit driven.AuditStore, out io.Writer) *PruneService {
	return &PruneService{
		cloud:    cloud,
		audit:    audit,
		out:      out,
		newRunID: uuid.NewString,
	}
}

// PruneDroplets destroys every droplet that filter does not keep. A droplet
// survives only when its memory, vCPU count and region are all listed.
func (s *PruneService) PruneDroplets(ctx context.Context, filter model.KeepFilter, dryRun bool) (*PruneReport, error) {
	droplets, err := s.cloud.ListDroplets(ctx)
	if err != nil {
		return nil, err
	}

	report := s.newReport(dryRun)
	for _, d := range droplets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		id := strconv.Itoa(d.ID)
		logger := slog.With("run_id", report.RunID, "droplet_id", d.ID, "name", d.Name,
			"memory", d.MemoryMB, "vcpus", d.VCPUs, "region", d.Region)

		if filter.Keeps(d) {
			logger.Info("keeping droplet")
			report.Kept = append(report.Kept, id)
			s.record(ctx, report, model.AuditDropletKeep, id, d.Name, nil)
			continue
		}

		fmt.Fprintf(s.out, "%sUsuwanie dropletu o ID: %d\n", dryRunPrefix(dryRun), d.ID)
		var delErr error
		if !dryRun {
			delErr = s.cloud.DeleteDroplet(ctx, d.ID)
		}
		s.record(ctx, report, model.AuditDropletDelete, id, d.Name, delErr)

		if delErr != nil {
			logger.Error("deleting droplet failed", "error", delErr)
			fmt.Fprintf(s.out, "Nie udało się usunąć dropletu o ID: %d: %v\n", d.ID, delErr)
			report.Failed = append(report.Failed, id)
			continue
		}
		logger.Info("deleted droplet", "dry_run", dryRun)
		report.Deleted = append(report.Deleted, id)
	}

	return report, report.err()
}

// PruneProjects deletes every project whose ID is not in keepIDs. The
// default project cannot be deleted and is skipped.
func (s *PruneService) PruneProjects(ctx context.Context, keepIDs []string, dryRun bool) (*PruneReport, error) {
	projects, err := s.cloud.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	report := s.newReport(dryRun)
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		logger := slog.With("run_id", report.RunID, "project_id", p.ID, "name", p.Name)

		if slices.Contains(keepIDs, p.ID) {
			fmt.Fprintf(s.out, "Zachowanie projektu o ID: %s i nazwie: %s\n", p.ID, p.Name)
			logger.Info("keeping project")
			report.Kept = append(report.Kept, p.ID)
			s.record(ctx, report, model.AuditProjectKeep, p.ID, p.Name, nil)
			continue
		}

		if p.IsDefault {
			fmt.Fprintf(s.out, "Pomijanie domyślnego projektu o ID: %s i nazwie: %s\n", p.ID, p.Name)
			logger.Info("skipping default project")
			report.Skipped = append(report.Skipped, p.ID)
			continue
		}

		fmt.Fprintf(s.out, "%sUsuwanie projektu o ID: %s i nazwie: %s\n", dryRunPrefix(dryRun), p.ID, p.Name)
		var delErr error
		if !dryRun {
			delErr = s.cloud.DeleteProject(ctx, p.ID)
		}
		s.record(ctx, report, model.AuditProjectDelete, p.ID, p.Name, delErr)

		if delErr != nil {
			logger.Error("deleting project failed", "error", delErr)
			fmt.Fprintf(s.out, "Nie udało się usunąć projektu o ID: %s: %v\n", p.ID, delErr)
			report.Failed = append(report.Failed, p.ID)
			continue
		}
		logger.Info("deleted project", "dry_run", dryRun)
		report.Deleted = append(report.Deleted, p.ID)
	}

	return report, report.err()
}

func (s *PruneService) newReport(dryRun bool) *PruneReport {
	return &PruneReport{RunID: s.newRunID(), DryRun: dryRun}
}

// record appends an audit entry. Audit failures are logged, never fatal.
func (s *PruneService) record(ctx context.Context, report *PruneReport, action model.AuditAction, id, name string, opErr error) {
	if s.audit == nil {
		return
	}

	entry := model.AuditEntry{
		RunID:      report.RunID,
		Action:     action,
		TargetID:   id,
		TargetName: name,
		DryRun:     report.DryRun,
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		slog.Warn("recording audit entry failed", "action", action, "target_id", id, "error", err)
	}
}

func (r *PruneReport) err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d", ErrDeletionsFailed, len(r.Failed), len(r.Failed)+len(r.Deleted))
}

func dryRunPrefix(dryRun bool) string {
	if dryRun {
		return "[dry-run] "
	}
	return ""
}
