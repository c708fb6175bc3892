package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/stormarket/stormarket/internal/flagx"
	"github.com/stormarket/stormarket/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "500ms" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; after unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	MetricsAddr                 string         `json:"metrics_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	DefaultPricePerGB           float64        `json:"default_price_per_gb"`
	RetrievalFee                float64        `json:"retrieval_fee"`
	DealDuration                timex.Duration `json:"deal_duration"`
	BatchPacing                 timex.Duration `json:"batch_pacing"`
	ReplicationFactor           int            `json:"replication_factor"`
	SettlementMode              string         `json:"settlement_mode"`
	SettlementEndpoint          string         `json:"settlement_endpoint"`
	SettlementTimeout           timex.Duration `json:"settlement_timeout"`
	ShareBaseURL                string         `json:"share_base_url"`
	ShareLinkValidity           timex.Duration `json:"share_link_validity"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	PresignValidity             timex.Duration `json:"presign_validity"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.MetricsAddr = c.MetricsAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.DefaultPricePerGB = c.DefaultPricePerGB
	config.RetrievalFee = c.RetrievalFee
	config.DealDuration = time.Duration(c.DealDuration.Duration)
	config.BatchPacing = time.Duration(c.BatchPacing.Duration)
	config.ReplicationFactor = c.ReplicationFactor
	config.SettlementMode = c.SettlementMode
	config.SettlementEndpoint = c.SettlementEndpoint
	config.SettlementTimeout = time.Duration(c.SettlementTimeout.Duration)
	config.ShareBaseURL = c.ShareBaseURL
	config.ShareLinkValidity = time.Duration(c.ShareLinkValidity.Duration)
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.PresignValidity = time.Duration(c.PresignValidity.Duration)
}
