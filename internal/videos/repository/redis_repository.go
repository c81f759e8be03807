package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/videoflix/videoflix-backend/internal/models"
	"github.com/videoflix/videoflix-backend/internal/videos"
)

type videoRedisRepo struct {
	redisClient *redis.Client
}

func NewVideoRedisRepo(redisClient *redis.Client) videos.QueueRepository {
	return &videoRedisRepo{
		redisClient: redisClient,
	}
}

func (v *videoRedisRepo) EnqueueJob(ctx context.Context, key string, job *models.JobDescriptor) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return v.redisClient.LPush(ctx, key, data).Err()
}

// DequeueJob blocks until a descriptor is available or ctx is cancelled.
func (v *videoRedisRepo) DequeueJob(ctx context.Context, key string) (*models.JobDescriptor, error) {
	res, err := v.redisClient.BRPop(ctx, 0, key).Result()
	if err != nil {
		return nil, err
	}
	job := &models.JobDescriptor{}
	if err = json.Unmarshal([]byte(res[1]), job); err != nil {
		return nil, fmt.Errorf("error unmarshalling job: %v", err)
	}
	return job, nil
}
