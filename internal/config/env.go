package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over .env entries (godotenv does not override existing ones).
func parseEnv(config *Config) {

	_ = godotenv.Load()

	config.EndpointAddr = getEnv("SERVER_ADDR", config.EndpointAddr)
	config.MetricsAddr = getEnv("METRICS_ADDR", config.MetricsAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.AccessTokenValidityDuration = getEnvAsDuration("ACCESS_TOKEN_VALIDITY", config.AccessTokenValidityDuration)
	config.DefaultPricePerGB = getEnvAsFloat("DEFAULT_PRICE_PER_GB", config.DefaultPricePerGB)
	config.RetrievalFee = getEnvAsFloat("RETRIEVAL_FEE", config.RetrievalFee)
	config.DealDuration = getEnvAsDuration("DEAL_DURATION", config.DealDuration)
	config.BatchPacing = getEnvAsDuration("BATCH_PACING", config.BatchPacing)
	config.ReplicationFactor = getEnvAsInt("REPLICATION_FACTOR", config.ReplicationFactor)
	config.SettlementMode = getEnv("SETTLEMENT_MODE", config.SettlementMode)
	config.SettlementEndpoint = getEnv("SETTLEMENT_ENDPOINT", config.SettlementEndpoint)
	config.SettlementTimeout = getEnvAsDuration("SETTLEMENT_TIMEOUT", config.SettlementTimeout)
	config.ShareBaseURL = getEnv("SHARE_BASE_URL", config.ShareBaseURL)
	config.ShareLinkValidity = getEnvAsDuration("SHARE_LINK_VALIDITY", config.ShareLinkValidity)
	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
	config.PresignValidity = getEnvAsDuration("PRESIGN_VALIDITY", config.PresignValidity)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultVal
}
