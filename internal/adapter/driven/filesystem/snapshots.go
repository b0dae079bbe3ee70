package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SnapshotRepository = (*SnapshotDir)(nil)

// SnapshotDir stores balance documents as <account>.json files in a directory.
type SnapshotDir struct {
	dir *Dir
}

// NewSnapshotDir creates a SnapshotDir over root.
func NewSnapshotDir(root string) *SnapshotDir {
	return &SnapshotDir{dir: NewDir(root)}
}

// Save writes doc to <account>.json with four-space indentation, leaving
// non-ASCII characters and HTML-significant runes unescaped.
func (s *SnapshotDir) Save(_ context.Context, account string, doc map[string]any) (string, error) {
	if account == "" || strings.ContainsAny(account, `/\`) {
		return "", fmt.Errorf("invalid account name %q", account)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode snapshot for %s: %w", account, err)
	}

	name := account + ".json"
	content := strings.TrimSuffix(buf.String(), "\n")
	if err := s.dir.WriteText(name, content); err != nil {
		return "", err
	}
	return name, nil
}

// snapshotJSON reads the amount fields as strings or JSON numbers.
type snapshotJSON struct {
	AccountName        string      `json:"account_name"`
	MonthToDateBalance json.Number `json:"month_to_date_balance"`
	AccountBalance     json.Number `json:"account_balance"`
	MonthToDateUsage   json.Number `json:"month_to_date_usage"`
	GeneratedAt        string      `json:"generated_at"`
}

// LoadAll reads every regular *.json file in the directory, sorted by name.
func (s *SnapshotDir) LoadAll(_ context.Context) ([]driven.SnapshotFile, error) {
	names, err := s.dir.list(func(name string) bool { return strings.HasSuffix(name, ".json") })
	if err != nil {
		return nil, err
	}

	files := make([]driven.SnapshotFile, 0, len(names))
	for _, name := range names {
		snap, err := s.load(name)
		if err != nil {
			return nil, err
		}
		files = append(files, driven.SnapshotFile{Name: name, Snapshot: snap})
	}
	return files, nil
}

func (s *SnapshotDir) load(name string) (model.BalanceSnapshot, error) {
	data, err := os.ReadFile(s.dir.Path(name))
	if err != nil {
		return model.BalanceSnapshot{}, fmt.Errorf("read %s: %w", name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc snapshotJSON
	if err := dec.Decode(&doc); err != nil {
		return model.BalanceSnapshot{}, fmt.Errorf("decode %s: %w", name, err)
	}

	for field, v := range map[string]json.Number{
		"month_to_date_balance": doc.MonthToDateBalance,
		"account_balance":       doc.AccountBalance,
		"month_to_date_usage":   doc.MonthToDateUsage,
	} {
		if v == "" {
			return model.BalanceSnapshot{}, fmt.Errorf("decode %s: missing %s", name, field)
		}
	}

	snap := model.BalanceSnapshot{
		AccountName:        doc.AccountName,
		MonthToDateBalance: doc.MonthToDateBalance.String(),
		AccountBalance:     doc.AccountBalance.String(),
		MonthToDateUsage:   doc.MonthToDateUsage.String(),
	}
	if doc.GeneratedAt != "" {
		if t, err := time.Parse(time.RFC3339, doc.GeneratedAt); err == nil {
			snap.GeneratedAt = t
		}
	}
	if snap.AccountName == "" {
		snap.AccountName = strings.TrimSuffix(name, ".json")
	}
	return snap, nil
}
