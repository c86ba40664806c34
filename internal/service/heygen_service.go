package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/arifwib/interview-coach/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type HeyGenServiceInterface interface {
	CreateStreamingToken(ctx context.Context) (string, error)
}

// HeyGenService issues short-lived streaming-session tokens for the avatar
// that conducts the interview.
type HeyGenService struct {
	APIKey string
	client *resty.Client
}

func NewHeyGenService() *HeyGenService {
	heyGenConfig := config.LoadHeyGenConfig()
	client := resty.New().
		SetBaseURL(heyGenConfig.BaseURL).
		SetTimeout(30 * time.Second)
	return &HeyGenService{
		APIKey: heyGenConfig.APIKey,
		client: client,
	}
}

func (s *HeyGenService) CreateStreamingToken(ctx context.Context) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("HEYGEN_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{}).
		Post("/v1/streaming.create_token")
	if err != nil {
		return "", fmt.Errorf("heygen create_token request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		log.Printf("HeyGen create_token error status %d: %s", resp.StatusCode(), body)
		return "", fmt.Errorf("heygen create_token returned status %d", resp.StatusCode())
	}

	// Token sits at data.token in current responses; older ones used a
	// top-level token field.
	token := gjson.Get(body, "data.token").String()
	if token == "" {
		token = gjson.Get(body, "token").String()
	}
	if token == "" {
		log.Printf("HeyGen create_token response has no token: %s", body)
		return "", fmt.Errorf("no token in heygen response")
	}

	return token, nil
}
