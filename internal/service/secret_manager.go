package service

import (
	"context"
	"fmt"

	"app/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretManagerService resolves the generation API key when it is not
// provided through the environment.
type SecretManagerService interface {
	GetGenerationAPIKey(ctx context.Context) (string, error)
}

type secretManagerService struct {
	client     *secretmanager.Client
	projectID  string
	secretName string
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}

	var opts []option.ClientOption
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:     client,
		projectID:  cfg.GCPProjectID,
		secretName: cfg.GeminiKeySecretName,
	}, nil
}

// GetGenerationAPIKey reads the latest version of the generation key secret.
func (s *secretManagerService) GetGenerationAPIKey(ctx context.Context) (string, error) {
	resourceName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, s.secretName)

	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resourceName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", s.secretName, err)
	}

	return string(result.Payload.Data), nil
}
