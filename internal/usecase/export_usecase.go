package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"learnpath/internal/domain/recommend"
	"learnpath/internal/infrastructure/delivery"

	"github.com/google/uuid"
)

const exportTimeout = 30 * time.Second

// AnalysisProvider is the read side the export actions pull from.
type AnalysisProvider interface {
	Analysis(ctx context.Context, sessionID uuid.UUID) (Analysis, error)
	View(ctx context.Context, sessionID uuid.UUID, activeTab string, prefs recommend.Preferences) (RecommendationView, error)
}

// ExportUsecase fans the current recommendation list out to the export
// targets. Email and PDF delivery run in the background and fail silently:
// the handlers acknowledge the request, and a delivery error is only
// logged.
type ExportUsecase struct {
	analyses AnalysisProvider
	email    delivery.EmailSender
	pdf      delivery.PDFGenerator
	logger   *log.Logger
}

func NewExportUsecase(analyses AnalysisProvider, email delivery.EmailSender, pdf delivery.PDFGenerator, logger *log.Logger) *ExportUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &ExportUsecase{analyses: analyses, email: email, pdf: pdf, logger: logger}
}

// EmailRecommendations queues the session's recommendations for delivery to
// the given address. The address is free text and handed to the sender
// as-is; only a blank address or a missing analysis is reported, delivery
// failures are not.
func (u *ExportUsecase) EmailRecommendations(ctx context.Context, sessionID uuid.UUID, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrInvalidInput
	}
	analysis, err := u.analyses.Analysis(ctx, sessionID)
	if err != nil {
		return err
	}
	go func() {
		if u.email == nil {
			u.logger.Printf("[Export] email delivery not configured, dropping request for session %s", sessionID)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		if err := u.email.SendRecommendations(ctx, address, analysis.Courses); err != nil {
			u.logger.Printf("[Export] emailing recommendations for session %s: %v", sessionID, err)
		}
	}()
	return nil
}

// GeneratePDF queues PDF generation for the session's recommendations.
func (u *ExportUsecase) GeneratePDF(ctx context.Context, sessionID uuid.UUID) error {
	analysis, err := u.analyses.Analysis(ctx, sessionID)
	if err != nil {
		return err
	}
	go func() {
		if u.pdf == nil {
			u.logger.Printf("[Export] pdf delivery not configured, dropping request for session %s", sessionID)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		if err := u.pdf.GenerateRecommendations(ctx, analysis.Courses); err != nil {
			u.logger.Printf("[Export] generating pdf for session %s: %v", sessionID, err)
		}
	}()
	return nil
}

// CopyPayload renders the currently visible course list as indented JSON,
// the exact text a copy-to-clipboard action hands over.
func (u *ExportUsecase) CopyPayload(ctx context.Context, sessionID uuid.UUID, activeTab string, prefs recommend.Preferences) ([]byte, error) {
	view, err := u.analyses.View(ctx, sessionID, activeTab, prefs)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(view.View.Courses, "", "  ")
}
