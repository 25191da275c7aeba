package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	analysisdto "go-social-insights/internal/analysis/dto"
	"go-social-insights/internal/entity"
	insightsconfig "go-social-insights/internal/insights/config"
	"go-social-insights/pkg/logger"

	"golang.org/x/time/rate"
)

// AnalysisError is a failure from the remote pipeline carrying a reason
// code the orchestrator can branch on.
type AnalysisError struct {
	Reason  entity.FailureReason
	Message string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// AnalyzerRepository defines the interface for invoking the remote analysis
// pipeline.
type AnalyzerRepository interface {
	Analyze(ctx context.Context, req *analysisdto.AnalyzeRequest) (*analysisdto.AnalyzeResponse, error)
}

// NewAnalyzerRepository creates an HTTP client for the analysis service.
// The connect timeout is short; the overall request timeout is much longer
// since clustering cost grows superlinearly with corpus size. There is no
// retry: a failed call is reported immediately and retrying is the caller's
// decision.
func NewAnalyzerRepository(cfg *insightsconfig.Config, log *logger.Logger) (AnalyzerRepository, error) {
	connectTimeout, err := time.ParseDuration(cfg.Analyzer.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer connect_timeout: %w", err)
	}
	readTimeout, err := time.ParseDuration(cfg.Analyzer.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer read_timeout: %w", err)
	}

	secondsPerRequest := time.Minute / time.Duration(cfg.Analyzer.MaxRequestPerMinute)

	return &analyzerRepository{
		baseURL: cfg.Analyzer.BaseURL,
		client: &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		logger:         log,
	}, nil
}

type analyzerRepository struct {
	baseURL        string
	client         *http.Client
	requestLimiter *rate.Limiter
	logger         *logger.Logger
}

// Analyze posts the batch to the analysis service and maps transport and
// protocol failures onto the run error taxonomy.
func (r *analyzerRepository) Analyze(ctx context.Context, req *analysisdto.AnalyzeRequest) (*analysisdto.AnalyzeResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, &AnalysisError{Reason: entity.ReasonUnexpected, Message: err.Error()}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &AnalysisError{Reason: entity.ReasonUnexpected, Message: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/analysis", bytes.NewBuffer(payload))
	if err != nil {
		return nil, &AnalysisError{Reason: entity.ReasonUnexpected, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		// Connection refusal and timeouts are transport failures, distinct
		// from a malformed response.
		r.logger.Error("analysis service unreachable", logger.ErrorField(err))
		return nil, &AnalysisError{Reason: entity.ReasonDownstreamUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp analysisdto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Reason != "" {
			return nil, &AnalysisError{Reason: errResp.Reason, Message: errResp.Error}
		}
		return nil, &AnalysisError{
			Reason:  entity.ReasonUnexpected,
			Message: fmt.Sprintf("analysis service returned status %d", resp.StatusCode),
		}
	}

	var result analysisdto.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &AnalysisError{Reason: entity.ReasonUnexpected, Message: fmt.Sprintf("malformed analysis response: %v", err)}
	}

	return &result, nil
}
