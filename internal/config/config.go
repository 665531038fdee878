package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RoeAI    RoeAIConfig
	Storage  StorageConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RoeAIConfig carries the agent endpoint plus one credential pair per agent
// role. The insight role has its own token; the job and evaluate roles share
// one. A role with an empty id or token is unusable and its calls fail before
// any network I/O.
type RoeAIConfig struct {
	BaseURL string

	InsightAgentID     string
	InsightBearerToken string
	JobAgentID         string
	EvaluateAgentID    string
	SharedBearerToken  string

	InsightInstruction string
	InsightPageFilter  string
	JobInstruction     string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_insights"),
		},
		RoeAI: RoeAIConfig{
			BaseURL:            getEnv("ROE_AI_BASE_URL", "https://api.roe-ai.com"),
			InsightAgentID:     getEnv("ROE_AI_INSIGHT_AGENT_ID", ""),
			InsightBearerToken: getEnv("ROE_AI_INSIGHT_BEARER_TOKEN", ""),
			JobAgentID:         getEnv("ROE_AI_JOB_AGENT_ID", ""),
			EvaluateAgentID:    getEnv("ROE_AI_EVALUATE_AGENT_ID", ""),
			SharedBearerToken:  getEnv("ROE_AI_BEARER_TOKEN", ""),
			InsightInstruction: getEnv(
				"ROE_AI_INSIGHT_INSTRUCTION",
				"Please extract actionable insights from the candidates' resume",
			),
			InsightPageFilter: getEnv("ROE_AI_INSIGHT_PAGE_FILTER", "@PAGERANGE(1-3)"),
			JobInstruction: getEnv(
				"ROE_AI_JOB_INSTRUCTION",
				"Please extract the job title, responsibilities, and requirements from this job posting page",
			),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", "1h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "5m"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
