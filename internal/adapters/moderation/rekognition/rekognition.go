package rekognition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// API is the subset of the rekognition client used by the adapter
type API interface {
	DetectModerationLabels(ctx context.Context, params *rekognition.DetectModerationLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectModerationLabelsOutput, error)
	StartContentModeration(ctx context.Context, params *rekognition.StartContentModerationInput, optFns ...func(*rekognition.Options)) (*rekognition.StartContentModerationOutput, error)
	GetContentModeration(ctx context.Context, params *rekognition.GetContentModerationInput, optFns ...func(*rekognition.Options)) (*rekognition.GetContentModerationOutput, error)
}

// Adapter is an adapter for AWS Rekognition content moderation
type Adapter struct {
	api    API
	logger *slog.Logger
}

// NewAdapter builds a rekognition client from cfg. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain applies.
func NewAdapter(ctx context.Context, cfg config.ModerationConfig, logger *slog.Logger) (*Adapter, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return NewAdapterWithAPI(rekognition.NewFromConfig(awsCfg), logger), nil
}

// NewAdapterWithAPI returns an Adapter backed by api
func NewAdapterWithAPI(api API, logger *slog.Logger) *Adapter {
	return &Adapter{api: api, logger: logger}
}

// DetectLabels returns the moderation label names found in image
func (a *Adapter) DetectLabels(ctx context.Context, image []byte, minConfidence float32) ([]string, error) {
	out, err := a.api.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: image},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}

	labels := make([]string, 0, len(out.ModerationLabels))
	for _, label := range out.ModerationLabels {
		labels = append(labels, aws.ToString(label.Name))
	}

	a.logger.Debug("moderation labels detected", "count", len(labels))
	return labels, nil
}

// StartJob submits an asynchronous moderation job for an object in bucket
func (a *Adapter) StartJob(ctx context.Context, bucket, key string, minConfidence float32) (string, error) {
	out, err := a.api.StartContentModeration(ctx, &rekognition.StartContentModerationInput{
		Video: &types.Video{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return "", fmt.Errorf("start content moderation: %w", err)
	}

	return aws.ToString(out.JobId), nil
}

// GetJob returns the job status. Labels of a finished job are collected across all result pages.
func (a *Adapter) GetJob(ctx context.Context, jobID string) (*domain.ModerationJob, error) {
	job := &domain.ModerationJob{ID: jobID}

	var nextToken *string
	for {
		out, err := a.api.GetContentModeration(ctx, &rekognition.GetContentModerationInput{
			JobId:     aws.String(jobID),
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("get content moderation: %w", err)
		}

		job.Status = jobStatus(out.JobStatus)
		job.Message = aws.ToString(out.StatusMessage)
		if job.Status != domain.ModerationJobSucceeded {
			return job, nil
		}

		for _, detection := range out.ModerationLabels {
			if detection.ModerationLabel != nil {
				job.Labels = append(job.Labels, aws.ToString(detection.ModerationLabel.Name))
			}
		}

		if aws.ToString(out.NextToken) == "" {
			return job, nil
		}
		nextToken = out.NextToken
	}
}

func jobStatus(s types.VideoJobStatus) domain.ModerationJobStatus {
	switch s {
	case types.VideoJobStatusInProgress:
		return domain.ModerationJobInProgress
	case types.VideoJobStatusSucceeded:
		return domain.ModerationJobSucceeded
	default:
		return domain.ModerationJobFailed
	}
}
