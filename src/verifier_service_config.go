package main

import (
	"runtime"
	"time"

	"personhood-verifier/pkg/logger"
	"personhood-verifier/pkg/rabbitmq"
)

type VerifierServiceConfigJson struct {
	LoggerConf   logger.LoggerConfigJson    `json:"logger"`
	RabbitmqConf rabbitmq.RabbimqConfigJson `json:"rabbitmq"`
	RestConf     VerifierRestConfigJson     `json:"rest"`
	DatabaseConf DatabaseConfigJson         `json:"database"`
	CoreConf     CoreConfigJson             `json:"verifier"`
}

func (vscj VerifierServiceConfigJson) ConvertToDomain() VerifierServiceConfig {
	return VerifierServiceConfig{
		LoggerConf:   vscj.LoggerConf.ConvertToDomain(),
		RabbitmqConf: vscj.RabbitmqConf.ConvertToDomain(),
		RestConf:     vscj.RestConf.ConvertToDomain(),
		DatabaseConf: vscj.DatabaseConf.ConvertToDomain(),
		CoreConf:     vscj.CoreConf.ConvertToDomain(),
	}
}

type VerifierServiceConfig struct {
	LoggerConf   logger.LoggerConfig
	RabbitmqConf rabbitmq.RabbitmqConfig
	RestConf     VerifierRestConfig
	DatabaseConf DatabaseConfig
	CoreConf     CoreConfig
}

func (vsc VerifierServiceConfig) GetLoggerConfig() logger.LoggerConfig {
	return vsc.LoggerConf
}

func (vsc VerifierServiceConfig) GetRabbitmqConfig() rabbitmq.RabbitmqConfig {
	return vsc.RabbitmqConf
}

func (vsc VerifierServiceConfig) GetRestApiPort() uint16 {
	return vsc.RestConf.Port
}

type VerifierRestConfigJson struct {
	Port uint16 `json:"port"`
}

type VerifierRestConfig struct {
	Port uint16
}

func (vrcj VerifierRestConfigJson) ConvertToDomain() VerifierRestConfig {
	return VerifierRestConfig{
		Port: vrcj.Port,
	}
}

type DatabaseConfigJson struct {
	Path string `json:"path"`
}

type DatabaseConfig struct {
	Path string
}

func (dcj DatabaseConfigJson) ConvertToDomain() DatabaseConfig {
	if dcj.Path == "" {
		dcj.Path = "verifier.db"
	}
	return DatabaseConfig{
		Path: dcj.Path,
	}
}

// CoreConfigJson is the recognized verification-core option surface. Every
// field has a default; unknown keys in the file are rejected by virtue of not
// existing here.
type CoreConfigJson struct {
	RootWindowSize             int    `json:"root_window_size"`
	NullifierTtlSeconds        int64  `json:"nullifier_ttl_seconds"`
	CacheTtlSeconds            int64  `json:"cache_ttl_seconds"`
	CacheCapacity              int    `json:"cache_capacity"`
	MaxConcurrentVerifications int    `json:"max_concurrent_verifications"`
	RequestTimeoutMillis       int64  `json:"request_timeout_ms"`
	VerifyingKeyPath           string `json:"verifying_key_path"`
}

type CoreConfig struct {
	RootWindowSize             int
	NullifierTTL               time.Duration
	CacheTTL                   time.Duration
	CacheCapacity              int
	MaxConcurrentVerifications int
	RequestTimeout             time.Duration
	VerifyingKeyPath           string
}

func (ccj CoreConfigJson) ConvertToDomain() CoreConfig {
	cfg := CoreConfig{
		RootWindowSize:             ccj.RootWindowSize,
		NullifierTTL:               time.Duration(ccj.NullifierTtlSeconds) * time.Second,
		CacheTTL:                   time.Duration(ccj.CacheTtlSeconds) * time.Second,
		CacheCapacity:              ccj.CacheCapacity,
		MaxConcurrentVerifications: ccj.MaxConcurrentVerifications,
		RequestTimeout:             time.Duration(ccj.RequestTimeoutMillis) * time.Millisecond,
		VerifyingKeyPath:           ccj.VerifyingKeyPath,
	}

	if cfg.RootWindowSize < 1 {
		cfg.RootWindowSize = 8
	}
	if cfg.NullifierTTL <= 0 {
		cfg.NullifierTTL = 24 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.CacheCapacity < 1 {
		cfg.CacheCapacity = 8192
	}
	if cfg.MaxConcurrentVerifications < 1 {
		cfg.MaxConcurrentVerifications = runtime.NumCPU()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return cfg
}
