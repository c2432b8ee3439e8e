package feed

import (
	"context"
	"time"

	"github.com/eighttenaric/gmc-editor/internal/email"
	"github.com/eighttenaric/gmc-editor/internal/merchant"
	"github.com/eighttenaric/gmc-editor/internal/models"
	"github.com/eighttenaric/gmc-editor/internal/session"
	"github.com/eighttenaric/gmc-editor/pkg/notification"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"go.uber.org/zap"
)

// AttributeOptimizer is the slice of the optimizer the service needs.
type AttributeOptimizer interface {
	Enabled() bool
	Optimize(ctx context.Context, field, original, url string) string
}

type Service interface {
	Accounts(ctx context.Context, sess *session.Session) (*AccountsOutput, *rest.ApiErr)
	SelectAccount(ctx context.Context, sess *session.Session, input SelectAccountInput) *rest.ApiErr
	FetchAndBackup(ctx context.Context, sess *session.Session) (*FetchResult, *rest.ApiErr)
	Optimize(ctx context.Context, sess *session.Session, input OptimizeInput) (*OptimizeResult, *rest.ApiErr)
	Report(sess *session.Session) (*ReportOutput, *rest.ApiErr)
	EmailReport(ctx context.Context, sess *session.Session) (int, *rest.ApiErr)
	Sync(ctx context.Context, sess *session.Session) (*SyncResult, *rest.ApiErr)
	UpdateRow(ctx context.Context, sess *session.Session, productID string, input UpdateRowInput) *rest.ApiErr
}

type svc struct {
	store      session.Store
	catalog    merchant.Factory
	optimizer  AttributeOptimizer
	mailer     email.SessionSender
	notifier   notification.Notification
	alertPhone string
	emailTo    string
	backupDir  string
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewService(
	store session.Store,
	catalog merchant.Factory,
	optimizer AttributeOptimizer,
	mailer email.SessionSender,
	notifier notification.Notification,
	alertPhone string,
	emailTo string,
	backupDir string,
	sessionTTL int,
	logger *zap.Logger,
) Service {
	return &svc{
		store:      store,
		catalog:    catalog,
		optimizer:  optimizer,
		mailer:     mailer,
		notifier:   notifier,
		alertPhone: alertPhone,
		emailTo:    emailTo,
		backupDir:  backupDir,
		sessionTTL: time.Duration(sessionTTL) * time.Second,
		logger:     logger,
	}
}

func (s *svc) Accounts(ctx context.Context, sess *session.Session) (*AccountsOutput, *rest.ApiErr) {
	client, err := s.catalog.ForToken(ctx, sess.Token)
	if err != nil {
		s.logger.Error("content api init failed", zap.Error(err))
		return nil, rest.NewBadGatewayError("could not connect to the Content API")
	}

	accounts, err := client.Accounts(ctx)
	if err != nil {
		s.logger.Error("authinfo failed", zap.Error(err))
		return nil, rest.NewBadGatewayError("could not retrieve accessible Merchant Center accounts")
	}

	return &AccountsOutput{Accounts: accounts, Selected: sess.AccountID}, nil
}

func (s *svc) SelectAccount(ctx context.Context, sess *session.Session, input SelectAccountInput) *rest.ApiErr {
	if input.AccountID == "" {
		return rest.NewBadRequestError("account id is required")
	}

	sess.AccountID = input.AccountID
	if apiErr := s.saveSession(ctx, sess); apiErr != nil {
		return apiErr
	}

	s.logger.Info("account selected", zap.String("account", input.AccountID))
	return nil
}

// FetchAndBackup pulls the selected account's feed, installs it as both
// snapshots and writes a timestamped workbook into the backup directory.
func (s *svc) FetchAndBackup(ctx context.Context, sess *session.Session) (*FetchResult, *rest.ApiErr) {
	if sess.AccountID == "" {
		return nil, rest.NewBadRequestError("select a Merchant Center account first")
	}

	client, err := s.catalog.ForToken(ctx, sess.Token)
	if err != nil {
		s.logger.Error("content api init failed", zap.Error(err))
		return nil, rest.NewBadGatewayError("could not connect to the Content API")
	}

	rows, err := client.ListProducts(ctx, sess.AccountID)
	if err != nil {
		s.logger.Error("fetch products failed", zap.String("account", sess.AccountID), zap.Error(err))
		return nil, rest.NewBadGatewayError("fetch failed: " + err.Error())
	}

	snap := models.NewSnapshot(rows)
	sess.LoadFeed(snap)
	if apiErr := s.saveSession(ctx, sess); apiErr != nil {
		return nil, apiErr
	}

	result := &FetchResult{AccountID: sess.AccountID, Products: snap.Len()}

	backupPath, err := WriteBackup(s.backupDir, sess.AccountID, snap)
	if err != nil {
		// The feed is loaded either way; a failed backup is reported, not fatal.
		s.logger.Warn("backup failed", zap.String("account", sess.AccountID), zap.Error(err))
	} else {
		result.BackupPath = backupPath
	}

	s.logger.Info("feed fetched",
		zap.String("account", sess.AccountID),
		zap.Int("products", snap.Len()),
	)
	return result, nil
}

// Optimize rewrites the tracked attributes of every working row, strictly
// sequentially. Failures inside the optimizer never surface here: each call
// yields either a candidate or the unchanged original.
func (s *svc) Optimize(ctx context.Context, sess *session.Session, input OptimizeInput) (*OptimizeResult, *rest.ApiErr) {
	if !sess.HasFeed() {
		return nil, rest.NewBadRequestError("no feed loaded: fetch the feed first")
	}

	fields := input.Fields
	if len(fields) == 0 {
		fields = models.TrackedFields
	}
	for _, f := range fields {
		if !isTrackedField(f) {
			return nil, rest.NewBadRequestError("unknown attribute: " + f)
		}
	}

	if !s.optimizer.Enabled() {
		s.logger.Warn("no language-model key configured, optimization skipped")
		return &OptimizeResult{Rows: sess.Working.Len(), Skipped: true}, nil
	}

	changed := 0
	for _, id := range sess.Working.Order {
		row := sess.Working.Rows[id]
		for _, field := range fields {
			original := row.Tracked(field)
			candidate := s.optimizer.Optimize(ctx, field, original, row.Link)
			if candidate != original {
				row.SetTracked(field, candidate)
				changed++
			}
		}
		sess.Working.Update(row)
	}

	if apiErr := s.saveSession(ctx, sess); apiErr != nil {
		return nil, apiErr
	}

	s.logger.Info("optimization finished",
		zap.Int("rows", sess.Working.Len()),
		zap.Int("changed", changed),
	)
	return &OptimizeResult{Rows: sess.Working.Len(), Changed: changed}, nil
}

func (s *svc) Report(sess *session.Session) (*ReportOutput, *rest.ApiErr) {
	if !sess.HasFeed() {
		return nil, rest.NewBadRequestError("no feed loaded: fetch the feed first")
	}

	diff := Diff(sess.Original, sess.Working)
	html, err := RenderReport(diff)
	if err != nil {
		s.logger.Error("report rendering failed", zap.Error(err))
		return nil, rest.NewInternalServerError("failed to render report")
	}

	s.logger.Debug("diff computed", zap.Int("count", len(diff)))
	return &ReportOutput{Diff: diff, HTML: html}, nil
}

// EmailReport mails the rendered diff to the configured recipient. A missing
// recipient is a configuration error raised before any network call.
func (s *svc) EmailReport(ctx context.Context, sess *session.Session) (int, *rest.ApiErr) {
	if s.emailTo == "" {
		return 0, rest.NewBadRequestError("EMAIL_TO is required for the email report")
	}

	report, apiErr := s.Report(sess)
	if apiErr != nil {
		return 0, apiErr
	}

	err := s.mailer.SendAs(ctx, sess.Token, "GMC Feed QA Report", "", report.HTML, []string{s.emailTo})
	if err != nil {
		s.logger.Error("email send failed", zap.Error(err))
		return 0, rest.NewBadGatewayError("failed to send email: " + err.Error())
	}

	s.logger.Info("qa report sent", zap.String("to", s.emailTo), zap.Int("changes", len(report.Diff)))
	return len(report.Diff), nil
}

// Sync pushes every working row's tracked attributes back to the catalog,
// one sequential patch per product. Best effort: a failed patch is recorded
// and the loop moves on; rows patched before a failure stay patched.
func (s *svc) Sync(ctx context.Context, sess *session.Session) (*SyncResult, *rest.ApiErr) {
	if sess.AccountID == "" {
		return nil, rest.NewBadRequestError("select a Merchant Center account first")
	}
	if !sess.HasFeed() {
		return nil, rest.NewBadRequestError("no feed loaded: fetch the feed first")
	}

	client, err := s.catalog.ForToken(ctx, sess.Token)
	if err != nil {
		s.logger.Error("content api init failed", zap.Error(err))
		return nil, rest.NewBadGatewayError("could not connect to the Content API")
	}

	result := &SyncResult{AccountID: sess.AccountID}
	for _, row := range sess.Working.List() {
		if err := client.PatchProduct(ctx, sess.AccountID, row); err != nil {
			s.logger.Warn("patch failed",
				zap.String("product_id", row.ProductID),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, SyncError{
				ProductID: row.ProductID,
				Reason:    err.Error(),
			})
			continue
		}
		result.Synced++
	}

	s.logger.Info("sync finished",
		zap.String("account", sess.AccountID),
		zap.Int("synced", result.Synced),
		zap.Int("failed", len(result.Failed)),
	)

	s.notifySync(result)
	return result, nil
}

func (s *svc) UpdateRow(ctx context.Context, sess *session.Session, productID string, input UpdateRowInput) *rest.ApiErr {
	if !sess.HasFeed() {
		return rest.NewBadRequestError("no feed loaded: fetch the feed first")
	}

	row, ok := sess.Working.Get(productID)
	if !ok {
		return rest.NewNotFoundError("product not found in the working snapshot")
	}

	if input.Title != nil {
		row.Title = *input.Title
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.ProductType != nil {
		row.ProductType = *input.ProductType
	}
	if input.GoogleProductCategory != nil {
		row.GoogleProductCategory = *input.GoogleProductCategory
	}

	sess.Working.Update(row)
	return s.saveSession(ctx, sess)
}

func (s *svc) saveSession(ctx context.Context, sess *session.Session) *rest.ApiErr {
	if err := s.store.SaveSession(ctx, sess, s.sessionTTL); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		return rest.NewInternalServerError("failed to save session")
	}
	return nil
}

func (s *svc) notifySync(result *SyncResult) {
	if s.notifier == nil || s.alertPhone == "" {
		return
	}
	msg := notification.SyncMessage(result.AccountID, result.Synced, len(result.Failed))
	if err := s.notifier.Send(s.alertPhone, msg); err != nil {
		s.logger.Warn("sync notification failed", zap.Error(err))
	}
}

func isTrackedField(field string) bool {
	for _, f := range models.TrackedFields {
		if f == field {
			return true
		}
	}
	return false
}
