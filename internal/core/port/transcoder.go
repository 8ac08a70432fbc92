package port

import "context"

// Transcoder re-encodes a video file into outputPath
type Transcoder interface {
	Compress(ctx context.Context, inputPath, outputPath string) error
}
