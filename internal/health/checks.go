package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	coreClient := &http.Client{Timeout: 3 * time.Second}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-sync-platform",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "guest-store",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "core-api",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.CoreAPI.BaseURL+"/health", nil)
					if err != nil {
						return fmt.Errorf("failed to build core api health request: %w", err)
					}

					resp, err := coreClient.Do(req)
					if err != nil {
						return fmt.Errorf("failed to reach core api: %w", err)
					}

					defer resp.Body.Close()

					if resp.StatusCode >= http.StatusInternalServerError {
						return fmt.Errorf("core api unhealthy: status %d", resp.StatusCode)
					}

					return nil
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
