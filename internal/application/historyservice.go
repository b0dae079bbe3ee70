package application

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// DefaultHistoryLimit caps history listings when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService prints the prune audit trail and recorded balance snapshots.
type HistoryService struct {
	audit    driven.AuditStore
	balances driven.BalanceStore
	out      io.Writer
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(audit driven.AuditStore, balances driven.BalanceStore, out io.Writer) *HistoryService {
	return &HistoryService{audit: audit, balances: balances, out: out}
}

// PrintAudit writes up to limit audit entries, newest first.
func (s *HistoryService) PrintAudit(ctx context.Context, limit int) error {
	entries, err := s.audit.ListRecent(ctx, normalizeLimit(limit))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tACTION\tTARGET\tNAME\tDRY RUN\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), shortRunID(e.RunID), e.Action,
			e.TargetID, e.TargetName, e.DryRun, e.Error)
	}
	return tw.Flush()
}

// PrintBalances writes up to limit balance snapshots, newest first.
func (s *HistoryService) PrintBalances(ctx context.Context, limit int) error {
	snaps, err := s.balances.ListRecent(ctx, normalizeLimit(limit))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tACCOUNT\tMTD BALANCE\tACCOUNT BALANCE\tMTD USAGE")
	for _, b := range snaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.RecordedAt.Local().Format(time.DateTime), b.AccountName,
			b.MonthToDateBalance, b.AccountBalance, b.MonthToDateUsage)
	}
	return tw.Flush()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
