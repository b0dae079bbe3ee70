package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// --- Cloud ---

type mockCloud struct {
	droplets []model.Droplet
	projects []model.Project
	balance  map[string]any

	listErr      error
	deleteErrs   map[string]error
	deletedDrops []int
	deletedProjs []string
}

var _ driven.CloudClient = (*mockCloud)(nil)

func (m *mockCloud) ListDroplets(_ context.Context) ([]model.Droplet, error) {
	return m.droplets, m.listErr
}

func (m *mockCloud) DeleteDroplet(_ context.Context, id int) error {
	if err := m.deleteErrs[fmt.Sprint(id)]; err != nil {
		return err
	}
	m.deletedDrops = append(m.deletedDrops, id)
	return nil
}

func (m *mockCloud) ListProjects(_ context.Context) ([]model.Project, error) {
	return m.projects, m.listErr
}

func (m *mockCloud) DeleteProject(_ context.Context, id string) error {
	if err := m.deleteErrs[id]; err != nil {
		return err
	}
	m.deletedProjs = append(m.deletedProjs, id)
	return nil
}

func (m *mockCloud) FetchBalance(_ context.Context) (map[string]any, error) {
	return m.balance, m.listErr
}

// --- Stores ---

type mockAudit struct {
	entries []model.AuditEntry
	err     error
}

func (m *mockAudit) Record(_ context.Context, e model.AuditEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAudit) ListRecent(_ context.Context, limit int) ([]model.AuditEntry, error) {
	if limit < len(m.entries) {
		return m.entries[:limit], m.err
	}
	return m.entries, m.err
}

type mockBalances struct {
	saved []model.BalanceSnapshot
	limit int
}

func (m *mockBalances) Save(_ context.Context, s model.BalanceSnapshot) error {
	m.saved = append(m.saved, s)
	return nil
}

func (m *mockBalances) ListRecent(_ context.Context, limit int) ([]model.BalanceSnapshot, error) {
	m.limit = limit
	return m.saved, nil
}

type mockSnapshots struct {
	files []driven.SnapshotFile
	docs  map[string]map[string]any
}

func (m *mockSnapshots) Save(_ context.Context, account string, doc map[string]any) (string, error) {
	if m.docs == nil {
		m.docs = map[string]map[string]any{}
	}
	m.docs[account] = doc
	return account + ".json", nil
}

func (m *mockSnapshots) LoadAll(_ context.Context) ([]driven.SnapshotFile, error) {
	return m.files, nil
}

// --- Remote services ---

type mockRates struct {
	rate  float64
	err   error
	calls []string
}

func (m *mockRates) Rate(_ context.Context, base, quote string) (float64, error) {
	m.calls = append(m.calls, base+"/"+quote)
	return m.rate, m.err
}

type mockNotifier struct {
	messages []string
	err      error
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.messages = append(m.messages, msg)
	return m.err
}

// mockTranslator answers with reply(req) and records every request.
type mockTranslator struct {
	mu       sync.Mutex
	requests []driven.TranslationRequest
	reply    func(req driven.TranslationRequest) (string, error)
}

func (m *mockTranslator) Translate(_ context.Context, req driven.TranslationRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.reply == nil {
		return "translated", nil
	}
	return m.reply(req)
}

func (m *mockTranslator) requestsFor(modelName string) []driven.TranslationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []driven.TranslationRequest
	for _, r := range m.requests {
		if r.Model == modelName {
			out = append(out, r)
		}
	}
	return out
}

type mockTranscriber struct {
	srt  string
	path string
}

func (m *mockTranscriber) TranscribeSRT(_ context.Context, path string) (string, error) {
	m.path = path
	return m.srt, nil
}

// mockVideoSource writes a placeholder audio file on download.
type mockVideoSource struct {
	info    *model.VideoInfo
	err     error
	fetched []string
}

func (m *mockVideoSource) FetchInfo(_ context.Context, url string) (*model.VideoInfo, error) {
	m.fetched = append(m.fetched, url)
	return m.info, m.err
}

func (m *mockVideoSource) DownloadAudio(_ context.Context, _, dir, baseName string) (string, error) {
	path := filepath.Join(dir, baseName+".m4a")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type insertedCaption struct {
	videoID, language, name, body string
}

type mockCaptionPlatform struct {
	tracks     []model.CaptionTrack
	deleted    []string
	inserted   []insertedCaption
	locs       map[string]model.Localization
	defaultLng string
	locErr     error
}

func (m *mockCaptionPlatform) ListCaptions(_ context.Context, _ string) ([]model.CaptionTrack, error) {
	return m.tracks, nil
}

func (m *mockCaptionPlatform) DeleteCaption(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCaptionPlatform) InsertCaption(_ context.Context, videoID, language, name string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.inserted = append(m.inserted, insertedCaption{videoID, language, name, string(data)})
	return nil
}

func (m *mockCaptionPlatform) UpdateLocalizations(_ context.Context, _, defaultLanguage string, locs map[string]model.Localization) error {
	if m.locErr != nil {
		return m.locErr
	}
	m.defaultLng = defaultLanguage
	m.locs = locs
	return nil
}

type mockPublisher struct {
	blogID string
	post   model.BlogPost
}

func (m *mockPublisher) InsertPost(_ context.Context, blogID string, post model.BlogPost) (*model.PublishedPost, error) {
	m.blogID = blogID
	m.post = post
	status := model.PostStatusLive
	if post.Draft {
		status = model.PostStatusDraft
	}
	return &model.PublishedPost{ID: "post-1", Status: status}, nil
}

// lines splits printed output into lines.
func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

// captureLogs routes the default logger into a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}
