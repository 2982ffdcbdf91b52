package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const dateLayout = "2006-01-02"

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Reference inputs.
	CountryReferencePath  string
	CountrySheet          string
	RegionSheet           string
	TransmissionRoutePath string
	DictionaryPath        string

	// ResearchEndDate drops bulletins published after it.
	ResearchEndDate  time.Time
	CountryCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(dateLayout, sharedcfg.EnvOrDefault("RESEARCH_END_DATE", "2025-11-27"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESEARCH_END_DATE: %w", err)
	}

	cacheSize, err := parseCountryCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-travel-alerts"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "resolved-surveillance-events"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "epi-surveillance-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		CountryReferencePath:  sharedcfg.EnvOrDefault("COUNTRY_REFERENCE_PATH", "data/country_mapping.xlsx"),
		CountrySheet:          os.Getenv("COUNTRY_SHEET"),
		RegionSheet:           sharedcfg.EnvOrDefault("REGION_SHEET", "監測國家&區域清單"),
		TransmissionRoutePath: sharedcfg.EnvOrDefault("TRANSMISSION_ROUTE_PATH", "data/transmission_route.xlsx"),
		DictionaryPath:        os.Getenv("DICTIONARY_PATH"),

		ResearchEndDate:  endDate,
		CountryCacheSize: cacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.CountryReferencePath == "" {
		return nil, errors.New("COUNTRY_REFERENCE_PATH is required")
	}
	if cfg.TransmissionRoutePath == "" {
		return nil, errors.New("TRANSMISSION_ROUTE_PATH is required")
	}

	return cfg, nil
}

func parseCountryCacheSize() (int, error) {
	s := os.Getenv("COUNTRY_CACHE_SIZE")
	if s == "" {
		return 1000, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid COUNTRY_CACHE_SIZE: must be a positive integer")
	}
	return n, nil
}
