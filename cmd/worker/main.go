package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/videoflix/videoflix-backend/internal/config"
	"github.com/videoflix/videoflix-backend/internal/jobs"
	"github.com/videoflix/videoflix-backend/internal/media"
	"github.com/videoflix/videoflix-backend/internal/transcoder"
	"github.com/videoflix/videoflix-backend/internal/videos"
	"github.com/videoflix/videoflix-backend/internal/videos/repository"
	"github.com/videoflix/videoflix-backend/internal/worker"
	"github.com/videoflix/videoflix-backend/pkg/db/aws"
	"github.com/videoflix/videoflix-backend/pkg/db/postgres"
	clientRedis "github.com/videoflix/videoflix-backend/pkg/db/redis"
	"github.com/videoflix/videoflix-backend/pkg/logger"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	var awsRepo videos.AWSRepository
	if cfg.S3.Enabled {
		s3Client, presignClient, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			appLogger.Fatalf("could not connect to s3: %s", err)
		}
		awsRepo = repository.NewAwsRepository(s3Client, presignClient)
		appLogger.Infof("s3 connected")
	}

	videoRepo := repository.NewVideoRepo(psqlDB)
	queueRepo := repository.NewVideoRedisRepo(redisClient)
	store := media.NewStore(cfg.Media.RootDir)
	ffmpeg := transcoder.NewFFmpegTranscoder(&cfg.Transcode)

	thumbnailJob := jobs.NewThumbnailJob(cfg, videoRepo, store, ffmpeg, awsRepo, appLogger)
	transcodeJob := jobs.NewTranscodeJob(cfg, videoRepo, store, ffmpeg, awsRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Shutting down...")
		cancel()
	}()

	w := worker.NewWorker(cfg, appLogger, queueRepo, thumbnailJob, transcodeJob)
	w.Start(ctx)
	w.Wait()
}
