// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/viper"
)

// Secret keys read from the provider
const (
	SecretDatabasePassword = "DB_PASSWORD"
	SecretRedisPassword    = "REDIS_PASSWORD"
)

// SecretsProvider resolves named secrets
type SecretsProvider interface {
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
	RefreshSecrets(ctx context.Context) error
}

// SecretsManagerAPI is the part of the Secrets Manager client we call
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a JSON secret from AWS Secrets Manager
type AWSSecretsManager struct {
	client     SecretsManagerAPI
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a Secrets Manager backed provider. Static
// credentials are used when both keys are configured.
func NewAWSSecretsManager(ctx context.Context, cfg AWSConfig, logger *slog.Logger) (*AWSSecretsManager, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewAWSSecretsManagerWithClient(client, cfg.SecretName, logger), nil
}

// NewAWSSecretsManagerWithClient wraps an existing client
func NewAWSSecretsManagerWithClient(client SecretsManagerAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecrets returns the requested keys, fetching the secret when the cache is stale
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	sm.cacheMu.RLock()
	fresh := time.Since(sm.lastFetch) < sm.ttl && len(sm.cache) > 0
	data := sm.cache
	sm.cacheMu.RUnlock()

	if !fresh {
		fetched, err := sm.fetch(ctx)
		if err != nil {
			return nil, err
		}
		data = fetched
	}

	filtered := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := data[key]; ok {
			filtered[key] = val
		} else {
			sm.logger.WarnContext(ctx, "secret key not found", slog.String("key", key))
		}
	}
	return filtered, nil
}

// RefreshSecrets drops the cache and fetches again
func (sm *AWSSecretsManager) RefreshSecrets(ctx context.Context) error {
	_, err := sm.fetch(ctx)
	return err
}

func (sm *AWSSecretsManager) fetch(ctx context.Context) (map[string]string, error) {
	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &data); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}

	sm.cacheMu.Lock()
	sm.cache = data
	sm.lastFetch = time.Now()
	sm.cacheMu.Unlock()

	return data, nil
}

// EnvSecretsManager reads secrets from the environment
type EnvSecretsManager struct{}

// NewEnvSecretsManager creates a new environment-based secrets manager
func NewEnvSecretsManager() *EnvSecretsManager {
	viper.AutomaticEnv()
	return &EnvSecretsManager{}
}

// GetSecrets returns every requested key that is set
func (em *EnvSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	secrets := make(map[string]string, len(keys))
	for _, key := range keys {
		if val := viper.GetString(key); val != "" {
			secrets[key] = val
		}
	}
	return secrets, nil
}

// RefreshSecrets is a no-op for environment variables
func (em *EnvSecretsManager) RefreshSecrets(ctx context.Context) error {
	return nil
}

// ResolveSecrets overwrites passwords in cfg with values from provider
func ResolveSecrets(ctx context.Context, cfg *Config, provider SecretsProvider) error {
	secrets, err := provider.GetSecrets(ctx, []string{SecretDatabasePassword, SecretRedisPassword})
	if err != nil {
		return err
	}

	if val, ok := secrets[SecretDatabasePassword]; ok {
		cfg.Database.Password = val
	}
	if val, ok := secrets[SecretRedisPassword]; ok {
		cfg.Redis.Password = val
		cfg.Asynq.RedisPassword = val
	}
	return nil
}
