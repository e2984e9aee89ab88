package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Local & deployment secrets (fill up for local development)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`
	Environment        string `envconfig:"ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`

	// Generation backend. When the API key is empty outside development it is
	// resolved from Secret Manager instead.
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	// Telemetry
	GCPProjectID        string `envconfig:"GCP_PROJECT_ID" required:"true"`
	GenerationTopic     string `envconfig:"PUBSUB_GENERATION_TOPIC" default:"course-generation"`
	GeminiKeySecretName string `envconfig:"GEMINI_KEY_SECRET_NAME" default:"gemini-generation-key"`

	// Object storage for placeholder lecture media
	S3URL               string `envconfig:"S3_URL" required:"true"`
	S3Bucket            string `envconfig:"S3_BUCKET" required:"true"`
	S3Region            string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey         string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey         string `envconfig:"S3_SECRET_KEY" required:"true"`
	PlaceholderMediaKey string `envconfig:"PLACEHOLDER_MEDIA_KEY" default:"templates/placeholder-lecture.mp4"`
	DefaultCourseImage  string `envconfig:"DEFAULT_COURSE_IMAGE" default:"templates/course-placeholder.png"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
