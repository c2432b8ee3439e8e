package feed

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/eighttenaric/gmc-editor/internal/merchant"
	"github.com/eighttenaric/gmc-editor/internal/models"
	"github.com/eighttenaric/gmc-editor/internal/session"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// MockCatalog implements merchant.Catalog for testing
type MockCatalog struct {
	accounts    []string
	accountsErr error
	products    []models.ProductRow
	listErr     error
	patchErrs   map[string]error // map[productID]error
	patched     []models.ProductRow
	mu          sync.Mutex
}

func (m *MockCatalog) Accounts(ctx context.Context) ([]string, error) {
	if m.accountsErr != nil {
		return nil, m.accountsErr
	}
	return m.accounts, nil
}

func (m *MockCatalog) ListProducts(ctx context.Context, merchantID string) ([]models.ProductRow, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *MockCatalog) PatchProduct(ctx context.Context, merchantID string, row models.ProductRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.patchErrs[row.ProductID]; ok {
		return err
	}
	m.patched = append(m.patched, row)
	return nil
}

// MockFactory implements merchant.Factory for testing
type MockFactory struct {
	catalog merchant.Catalog
	err     error
}

func (m *MockFactory) ForToken(ctx context.Context, token *oauth2.Token) (merchant.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

// MockSessionSender implements email.SessionSender for testing
type MockSessionSender struct {
	sendErr error
	sent    []sentReport
	mu      sync.Mutex
}

type sentReport struct {
	Subject    string
	HTML       string
	Recipients []string
}

func (m *MockSessionSender) SendAs(ctx context.Context, token *oauth2.Token, subject, text, html string, recipients []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentReport{Subject: subject, HTML: html, Recipients: recipients})
	return nil
}

// MockOptimizer implements AttributeOptimizer for testing
type MockOptimizer struct {
	enabled bool
	rewrite func(field, original string) string
}

func (m *MockOptimizer) Enabled() bool {
	return m.enabled
}

func (m *MockOptimizer) Optimize(ctx context.Context, field, original, url string) string {
	if m.rewrite == nil {
		return original
	}
	return m.rewrite(field, original)
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(&oauth2.Token{AccessToken: "test-token"})
	sess.AccountID = "123456"
	return sess
}

func newTestService(catalog *MockCatalog, mailer *MockSessionSender, optimizer *MockOptimizer, emailTo string, backupDir string) Service {
	return NewService(
		session.NewMemoryStore(),
		&MockFactory{catalog: catalog},
		optimizer,
		mailer,
		nil,
		"",
		emailTo,
		backupDir,
		3600,
		zap.NewNop(),
	)
}

func TestFetchAndBackupLoadsBothSnapshots(t *testing.T) {
	catalog := &MockCatalog{products: sampleRows()}
	svc := newTestService(catalog, &MockSessionSender{}, &MockOptimizer{}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)

	result, apiErr := svc.FetchAndBackup(context.Background(), sess)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if result.Products != 3 {
		t.Errorf("expected 3 products, got %d", result.Products)
	}
	if result.BackupPath == "" {
		t.Error("expected a backup path")
	}
	if !sess.HasFeed() {
		t.Fatal("expected the session to hold a feed")
	}
	if sess.Original.Len() != sess.Working.Len() {
		t.Errorf("snapshots out of step: original=%d working=%d", sess.Original.Len(), sess.Working.Len())
	}

	// The working copy must be independent of the original.
	row, _ := sess.Working.Get("online:en:US:sku-1")
	row.Title = "Changed"
	sess.Working.Update(row)
	origRow, _ := sess.Original.Get("online:en:US:sku-1")
	if origRow.Title == "Changed" {
		t.Error("editing the working snapshot leaked into the original")
	}
}

func TestFetchAndBackupRequiresAccount(t *testing.T) {
	svc := newTestService(&MockCatalog{}, &MockSessionSender{}, &MockOptimizer{}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.AccountID = ""

	if _, apiErr := svc.FetchAndBackup(context.Background(), sess); apiErr == nil {
		t.Error("expected an error when no account is selected")
	}
}

func TestOptimizeSkippedWithoutKey(t *testing.T) {
	svc := newTestService(&MockCatalog{}, &MockSessionSender{}, &MockOptimizer{enabled: false}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	result, apiErr := svc.Optimize(context.Background(), sess, OptimizeInput{})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if !result.Skipped {
		t.Error("expected optimization to be reported as skipped")
	}
	if diff := Diff(sess.Original, sess.Working); len(diff) != 0 {
		t.Errorf("expected no changes without a key, got %d diff rows", len(diff))
	}
}

func TestOptimizeRewritesTrackedFields(t *testing.T) {
	optimizer := &MockOptimizer{
		enabled: true,
		rewrite: func(field, original string) string {
			if field == models.FieldTitle {
				return original + " | Best Price"
			}
			return original
		},
	}
	svc := newTestService(&MockCatalog{}, &MockSessionSender{}, optimizer, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	result, apiErr := svc.Optimize(context.Background(), sess, OptimizeInput{})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if result.Changed != 3 {
		t.Errorf("expected 3 changed attributes, got %d", result.Changed)
	}

	diff := Diff(sess.Original, sess.Working)
	if len(diff) != 3 {
		t.Fatalf("expected 3 diff rows, got %d", len(diff))
	}
	for _, d := range diff {
		if !d.Changed(models.FieldTitle) {
			t.Errorf("expected a title change for %s", d.ProductID)
		}
		if d.Changed(models.FieldDescription) {
			t.Errorf("unexpected description change for %s", d.ProductID)
		}
	}
}

func TestOptimizeRejectsUnknownField(t *testing.T) {
	svc := newTestService(&MockCatalog{}, &MockSessionSender{}, &MockOptimizer{enabled: true}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	_, apiErr := svc.Optimize(context.Background(), sess, OptimizeInput{Fields: []string{"price"}})
	if apiErr == nil {
		t.Fatal("expected an error for an unknown attribute")
	}
	if apiErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, apiErr.Code)
	}
}

func TestEmailReportRequiresRecipient(t *testing.T) {
	mailer := &MockSessionSender{}
	svc := newTestService(&MockCatalog{}, mailer, &MockOptimizer{}, "", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	_, apiErr := svc.EmailReport(context.Background(), sess)
	if apiErr == nil {
		t.Fatal("expected a configuration error when EMAIL_TO is unset")
	}
	if apiErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, apiErr.Code)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("expected no send attempt, got %d", len(mailer.sent))
	}
}

func TestEmailReportSendsRenderedDiff(t *testing.T) {
	mailer := &MockSessionSender{}
	svc := newTestService(&MockCatalog{}, mailer, &MockOptimizer{}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	row, _ := sess.Working.Get("online:en:US:sku-1")
	row.Title = "Red Running Shoes"
	sess.Working.Update(row)

	changes, apiErr := svc.EmailReport(context.Background(), sess)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if changes != 1 {
		t.Errorf("expected 1 changed row, got %d", changes)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].Recipients[0] != "qa@example.com" {
		t.Errorf("unexpected recipient: %v", mailer.sent[0].Recipients)
	}
	if mailer.sent[0].HTML == "" {
		t.Error("expected an HTML body")
	}
}

func TestSyncContinuesPastFailedPatch(t *testing.T) {
	catalog := &MockCatalog{
		patchErrs: map[string]error{
			"online:en:US:sku-2": errors.New("backend error"),
		},
	}
	svc := newTestService(catalog, &MockSessionSender{}, &MockOptimizer{}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	result, apiErr := svc.Sync(context.Background(), sess)
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if result.Synced != 2 {
		t.Errorf("expected 2 synced rows, got %d", result.Synced)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed row, got %d", len(result.Failed))
	}
	if result.Failed[0].ProductID != "online:en:US:sku-2" {
		t.Errorf("unexpected failed product: %s", result.Failed[0].ProductID)
	}

	// Rows patched before and after the failure stay patched.
	if len(catalog.patched) != 2 {
		t.Fatalf("expected 2 patches to go through, got %d", len(catalog.patched))
	}
	if catalog.patched[0].ProductID != "online:en:US:sku-1" || catalog.patched[1].ProductID != "online:en:US:sku-3" {
		t.Errorf("unexpected patched rows: %s, %s", catalog.patched[0].ProductID, catalog.patched[1].ProductID)
	}
}

func TestUpdateRowPartialEdit(t *testing.T) {
	svc := newTestService(&MockCatalog{}, &MockSessionSender{}, &MockOptimizer{}, "qa@example.com", t.TempDir())
	sess := newTestSession(t)
	sess.LoadFeed(models.NewSnapshot(sampleRows()))

	title := "Hand-edited Title"
	apiErr := svc.UpdateRow(context.Background(), sess, "online:en:US:sku-2", UpdateRowInput{Title: &title})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}

	row, _ := sess.Working.Get("online:en:US:sku-2")
	if row.Title != title {
		t.Errorf("expected title %q, got %q", title, row.Title)
	}
	if row.Description != "A hat, blue" {
		t.Errorf("expected untouched description, got %q", row.Description)
	}

	apiErr = svc.UpdateRow(context.Background(), sess, "online:en:US:sku-99", UpdateRowInput{Title: &title})
	if apiErr == nil {
		t.Error("expected not found for an unknown product id")
	}
}
