package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Postgres  DBConfig
	Redis     RedisConfig
	S3        S3Config
	Media     MediaConfig
	Transcode TranscodeConfig
	Worker    WorkerConfig
	Logger    Logger
}

type ServerConfig struct {
	AppVersion   string
	Port         string
	Mode         string
	JwtSecretKey string
}

type WorkerConfig struct {
	WorkerCount int
	MaxCPUUsage float64
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	JobQueueKey   string
}

type S3Config struct {
	Enabled     bool
	Endpoint    string
	Region      string
	AccessKey   string
	SecretKey   string
	InputBucket string
}

type MediaConfig struct {
	RootDir string
}

// Rendition is one rung of the encode ladder.
type Rendition struct {
	Label   string
	Width   int
	Height  int
	Bitrate int // kbps
}

type TranscodeConfig struct {
	Renditions     []Rendition
	SegmentSeconds int
	Timeout        time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

// DefaultRenditions is the fixed ladder the pipeline has always produced.
func DefaultRenditions() []Rendition {
	return []Rendition{
		{Label: "480p", Width: 854, Height: 480, Bitrate: 800},
		{Label: "720p", Width: 1280, Height: 720, Bitrate: 2500},
		{Label: "1080p", Width: 1920, Height: 1080, Bitrate: 5000},
	}
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if len(c.Transcode.Renditions) == 0 {
		c.Transcode.Renditions = DefaultRenditions()
	}
	if c.Transcode.SegmentSeconds <= 0 {
		c.Transcode.SegmentSeconds = 6
	}
	if c.Transcode.MaxAttempts <= 0 {
		c.Transcode.MaxAttempts = 1
	}
	if c.Media.RootDir == "" {
		log.Println("media.rootDir not set, using ./media")
		c.Media.RootDir = "./media"
	}
	return &c, nil
}
