package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/educoin-uz/educoin-api/pkg/config"
)

// Fallback messages used whenever the provider is unreachable, slow, or
// returns an empty result. The caller always gets a usable string.
const (
	fallbackEmptyMessage = "Bilim - eng katta boylik! O'qishdan to'xtama."
	fallbackErrorMessage = "Har bir yangi bilim sizni muvaffaqiyatga yaqinlashtiradi!"
)

// MotivatorService asks a generative-text provider for a short motivational
// sentence for a student. It has no side effects on the domain model and
// never propagates provider failures.
type MotivatorService struct {
	client *http.Client
	config config.MotivatorConfig
	logger *zap.Logger
}

// NewMotivatorService constructs the motivator service.
func NewMotivatorService(client *http.Client, cfg config.MotivatorConfig, logger *zap.Logger) *MotivatorService {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MotivatorService{client: client, config: cfg, logger: logger}
}

type generateContentRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns a motivational message for the student. Any failure
// (missing API key, timeout, non-200 response, unparseable body) yields a
// canned fallback instead of an error.
func (s *MotivatorService) Generate(ctx context.Context, studentName string, coins int) string {
	if s.config.APIKey == "" {
		return fallbackErrorMessage
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Siz o'qituvchisiz. O'quvchingiz ismi %s va uning hozirda %d EduCoin tangasi bor. "+
			"Unga yanada ko'proq bilim olishga va tanga yig'ishga undovchi 1 ta qisqa motivatsion gap yozib bering (o'zbek tilida).",
		studentName, coins,
	)

	payload, err := json.Marshal(generateContentRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		s.logger.Warn("failed to encode motivator request", zap.Error(err))
		return fallbackErrorMessage
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.config.Endpoint, "/"), s.config.Model, s.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		s.logger.Warn("failed to build motivator request", zap.Error(err))
		return fallbackErrorMessage
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("motivator provider unreachable", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return fallbackErrorMessage
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("motivator provider returned error", zap.Int("status", resp.StatusCode))
		return fallbackErrorMessage
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		s.logger.Warn("failed to decode motivator response", zap.Error(err))
		return fallbackErrorMessage
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return fallbackEmptyMessage
	}
	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return fallbackEmptyMessage
	}
	return text
}
