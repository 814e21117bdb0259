package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	VideosBucket   string

	RedisAddr     string
	RedisPassword string

	// AuthMode selects the authentication strategy wired at startup:
	// "jwt" (default) verifies bearer tokens against JWTPublicKey,
	// "static" injects StaticPrincipal and must never reach production.
	AuthMode        string
	JWTPublicKey    string
	StaticPrincipal string

	// DeletionGraceWindow is the span after upload during which a video
	// may still be deleted. Required: the business rule has diverged
	// before (6h vs 48h), so the value lives here and nowhere else.
	DeletionGraceWindow time.Duration
	UploadURLExpiry     time.Duration
	DownloadURLExpiry   time.Duration

	WorkerConcurrency int
	WorkerRatePerMin  int

	AWSRegion string
	KMSKeyID  string

	PlatformClientID     string
	PlatformClientSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	required := []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
		"VIDEOS_BUCKET",
		"DELETION_GRACE_WINDOW",
	}
	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	graceWindow, err := time.ParseDuration(viper.GetString("DELETION_GRACE_WINDOW"))
	if err != nil {
		return nil, fmt.Errorf("DELETION_GRACE_WINDOW is not a valid duration: %w", err)
	}
	if graceWindow <= 0 {
		return nil, fmt.Errorf("DELETION_GRACE_WINDOW must be positive, got %s", graceWindow)
	}

	authMode := viper.GetString("AUTH_MODE")
	if authMode == "" {
		authMode = "jwt"
	}
	if authMode != "jwt" && authMode != "static" {
		return nil, fmt.Errorf("AUTH_MODE must be \"jwt\" or \"static\", got %q", authMode)
	}
	if authMode == "jwt" && !viper.IsSet("JWT_PUBLIC_KEY") {
		return nil, fmt.Errorf("JWT_PUBLIC_KEY is required when AUTH_MODE is \"jwt\"")
	}

	concurrency := viper.GetInt("WORKER_CONCURRENCY")
	if concurrency == 0 {
		concurrency = 10
	}
	ratePerMin := viper.GetInt("WORKER_RATE_PER_MIN")
	if ratePerMin == 0 {
		ratePerMin = 30
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		VideosBucket:   viper.GetString("VIDEOS_BUCKET"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		AuthMode:        authMode,
		JWTPublicKey:    viper.GetString("JWT_PUBLIC_KEY"),
		StaticPrincipal: viper.GetString("STATIC_PRINCIPAL"),

		DeletionGraceWindow: graceWindow,
		UploadURLExpiry:     3600 * time.Second,
		DownloadURLExpiry:   time.Hour,

		WorkerConcurrency: concurrency,
		WorkerRatePerMin:  ratePerMin,

		AWSRegion: viper.GetString("AWS_REGION"),
		KMSKeyID:  viper.GetString("KMS_KEY_ID"),

		PlatformClientID:     viper.GetString("PLATFORM_CLIENT_ID"),
		PlatformClientSecret: viper.GetString("PLATFORM_CLIENT_SECRET"),

		SMTPHost:     viper.GetString("SMTP_HOST"),
		SMTPPort:     viper.GetInt("SMTP_PORT"),
		SMTPUser:     viper.GetString("SMTP_USER"),
		SMTPPassword: viper.GetString("SMTP_PASSWORD"),
		MailFrom:     viper.GetString("MAIL_FROM"),
	}, nil
}
