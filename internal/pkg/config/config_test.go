package config_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/resell-pos/internal/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "40")
	t.Setenv("STOCK_BACKEND", "Redis")
	t.Setenv("STOCK_CACHE_TTL", "45s")
	t.Setenv("ASYNQ_QUEUES", "critical:9, default:1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := config.Load(discardLogger())

	require.NoError(t, err)
	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int32(40), cfg.Database.MaxConnections)
	assert.Equal(t, config.StockBackendRedis, cfg.Stock.Backend)
	assert.Equal(t, 45*time.Second, cfg.Stock.CacheTTL)
	assert.Equal(t, map[string]int{"critical": 9, "default": 1}, cfg.Asynq.Queues)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("STOCK_BACKEND", "mongo")

	_, err := config.Load(discardLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stock backend")
}

func validConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "resell-pos", Environment: "development"},
		Database: config.DatabaseConfig{Host: "localhost", Port: "5432", Name: "pos", MaxConnections: 10, MinConnections: 2},
		Redis:    config.RedisConfig{Host: "localhost", Port: "6379", PoolSize: 10},
		Stock:    config.StockConfig{Backend: config.StockBackendPostgres},
		Security: config.SecurityConfig{RateLimitRequests: 100},
		Server:   config.ServerConfig{Port: "8080"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		wantErr       error
		errorContains string
	}{
		{name: "valid_development_config", mutate: func(*config.Config) {}},
		{
			name:    "missing_database_name",
			mutate:  func(c *config.Config) { c.Database.Name = "" },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:          "connection_bounds_inverted",
			mutate:        func(c *config.Config) { c.Database.MinConnections = 50 },
			errorContains: "max_connections",
		},
		{
			name: "redis_backend_needs_key",
			mutate: func(c *config.Config) {
				c.Stock.Backend = config.StockBackendRedis
			},
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:          "unknown_secrets_provider",
			mutate:        func(c *config.Config) { c.AWS.SecretsProvider = "vault" },
			errorContains: "unknown secrets provider",
		},
		{
			name: "production_rejects_memory_backend",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
				c.Database.Password = "s3cret"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Stock.Backend = config.StockBackendMemory
			},
			errorContains: "memory stock backend",
		},
		{
			name: "production_rejects_wildcard_origin",
			mutate: func(c *config.Config) {
				c.App.Environment = "production"
				c.Database.Password = "s3cret"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Security.AllowedOrigins = []string{"*"}
			},
			errorContains: "wildcard origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil && tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
			if tt.errorContains != "" {
				assert.Contains(t, err.Error(), tt.errorContains)
			}
		})
	}
}

type fakeSecretsClient struct {
	calls  int
	secret *string
	err    error
}

func (f *fakeSecretsClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
	optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: f.secret}, nil
}

func TestAWSSecretsManager_ResolveSecrets(t *testing.T) {
	client := &fakeSecretsClient{
		secret: aws.String(`{"DB_PASSWORD":"from-aws","REDIS_PASSWORD":"redis-aws"}`),
	}
	provider := config.NewAWSSecretsManagerWithClient(client, "resell-pos/test", discardLogger())
	cfg := validConfig()

	require.NoError(t, config.ResolveSecrets(context.Background(), cfg, provider))
	assert.Equal(t, "from-aws", cfg.Database.Password)
	assert.Equal(t, "redis-aws", cfg.Redis.Password)
	assert.Equal(t, "redis-aws", cfg.Asynq.RedisPassword)

	// served from cache
	_, err := provider.GetSecrets(context.Background(), []string{config.SecretDatabasePassword})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	require.NoError(t, provider.RefreshSecrets(context.Background()))
	assert.Equal(t, 2, client.calls)
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	t.Run("client_failure", func(t *testing.T) {
		provider := config.NewAWSSecretsManagerWithClient(
			&fakeSecretsClient{err: errors.New("access denied")}, "s", discardLogger())

		_, err := provider.GetSecrets(context.Background(), []string{"DB_PASSWORD"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("invalid_json", func(t *testing.T) {
		provider := config.NewAWSSecretsManagerWithClient(
			&fakeSecretsClient{secret: aws.String("not json")}, "s", discardLogger())

		_, err := provider.GetSecrets(context.Background(), []string{"DB_PASSWORD"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse secret JSON")
	})
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	cfg := validConfig()
	cfg.Redis.Password = "unchanged"

	require.NoError(t, config.ResolveSecrets(context.Background(), cfg, config.NewEnvSecretsManager()))

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "unchanged", cfg.Redis.Password)
}
