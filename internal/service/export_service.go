package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/pkg/export"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
)

type leaderboardProvider interface {
	Leaderboard(ctx context.Context, currentUserID string) []models.LeaderboardEntry
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the leaderboard as CSV or PDF and archives a copy
// on local storage.
type ExportService struct {
	leaderboard leaderboardProvider
	storage     exportStorage
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(leaderboard leaderboardProvider, storage exportStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		leaderboard: leaderboard,
		storage:     storage,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// LeaderboardExport renders the current standings in the requested format.
func (s *ExportService) LeaderboardExport(ctx context.Context, format string) (*ExportFile, error) {
	dataset := s.dataset(ctx)
	stamp := time.Now().Format("2006-01-02")

	var (
		data        []byte
		err         error
		filename    string
		contentType string
	)
	switch format {
	case "csv":
		data, err = s.csv.Render(dataset)
		filename = fmt.Sprintf("leaderboard-%s.csv", stamp)
		contentType = "text/csv"
	case "pdf":
		data, err = s.pdf.Render(dataset, "EduCoin Leaderboard")
		filename = fmt.Sprintf("leaderboard-%s.pdf", stamp)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	if s.storage != nil {
		if _, err := s.storage.Save(filename, data); err != nil {
			// Archival is best effort; the caller still gets the bytes.
			s.logger.Warn("failed to archive leaderboard export", zap.Error(err))
		}
	}

	return &ExportFile{Filename: filename, ContentType: contentType, Data: data}, nil
}

func (s *ExportService) dataset(ctx context.Context) export.Dataset {
	headers := []string{"Rank", "Name", "Coins"}
	entries := s.leaderboard.Leaderboard(ctx, "")
	rows := make([]map[string]string, len(entries))
	for i, entry := range entries {
		rows[i] = map[string]string{
			"Rank":  strconv.Itoa(entry.Rank),
			"Name":  entry.Name,
			"Coins": strconv.Itoa(entry.Coins),
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
