package application

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

func TestHistoryService_PrintAudit(t *testing.T) {
	audit := &mockAudit{entries: []model.AuditEntry{
		{RunID: "0123456789abcdef", Action: model.AuditDropletDelete, TargetID: "42", TargetName: "web", CreatedAt: time.Now()},
		{RunID: "short", Action: model.AuditProjectDelete, TargetID: "p-1", DryRun: true, Error: "forbidden", CreatedAt: time.Now()},
	}}
	var out bytes.Buffer

	require.NoError(t, NewHistoryService(audit, nil, &out).PrintAudit(context.Background(), 0))

	got := lines(out.String())
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "ACTION")
	assert.Contains(t, got[1], "01234567")
	assert.NotContains(t, got[1], "89abcdef")
	assert.Contains(t, got[1], "droplet.delete")
	assert.Contains(t, got[2], "forbidden")
	assert.Contains(t, got[2], "true")
}

func TestHistoryService_PrintAudit_Limit(t *testing.T) {
	audit := &mockAudit{entries: []model.AuditEntry{{RunID: "a"}, {RunID: "b"}, {RunID: "c"}}}
	var out bytes.Buffer

	require.NoError(t, NewHistoryService(audit, nil, &out).PrintAudit(context.Background(), 2))

	assert.Len(t, lines(out.String()), 3)
}

func TestHistoryService_PrintAudit_Error(t *testing.T) {
	audit := &mockAudit{err: errors.New("db closed")}

	err := NewHistoryService(audit, nil, &bytes.Buffer{}).PrintAudit(context.Background(), 5)

	require.Error(t, err)
}

func TestHistoryService_PrintBalances(t *testing.T) {
	balances := &mockBalances{saved: []model.BalanceSnapshot{
		{AccountName: "acme", MonthToDateBalance: "12.50", AccountBalance: "0.00", MonthToDateUsage: "12.50", RecordedAt: time.Now()},
	}}
	var out bytes.Buffer

	require.NoError(t, NewHistoryService(nil, balances, &out).PrintBalances(context.Background(), 0))

	assert.Equal(t, DefaultHistoryLimit, balances.limit)
	got := lines(out.String())
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "ACCOUNT")
	assert.Contains(t, got[1], "acme")
	assert.Contains(t, got[1], "12.50")
}
