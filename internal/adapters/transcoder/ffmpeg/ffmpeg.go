package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/BhagyaUdayangani/S3-Service/internal/config"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/domain"
	"github.com/BhagyaUdayangani/S3-Service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// waitDelay bounds how long Wait blocks on pipes after the process was killed
const waitDelay = 5 * time.Second

type executor struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
	profile     Profile
	logger      *slog.Logger
}

// NewExecutor creates a transcoder driving the ffmpeg and ffprobe binaries
func NewExecutor(cfg config.TranscodingConfig, logger *slog.Logger) port.Transcoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &executor{
		ffmpegPath:  cfg.FFmpegPath,
		ffprobePath: cfg.FFprobePath,
		timeout:     timeout,
		profile:     DefaultProfile(cfg.Preset),
		logger:      logger,
	}
}

func (e *executor) Compress(ctx context.Context, inputPath, outputPath string) error {
	rotation, err := e.probeRotation(ctx, inputPath)
	if err != nil {
		e.logger.Warn("failed to probe video rotation", "input", inputPath, "error", err)
	}
	if rotation != "" {
		e.logger.Info("video rotation detected", "input", inputPath, "rotation", rotation)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.ffmpegPath, e.profile.Args(inputPath, outputPath, rotation != "")...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Kill the whole process group so helpers spawned by the encoder die too.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTranscoding, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTranscoding, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start ffmpeg: %w", domain.ErrTranscoding, err)
	}
	defer func() {
		if cmd.ProcessState == nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
	}()

	e.logger.Info("transcoding started", "input", inputPath, "output", outputPath, "pid", cmd.Process.Pid)
	started := time.Now()

	var g errgroup.Group
	g.Go(func() error { return e.drain(stdout, "stdout") })
	g.Go(func() error { return e.drain(stderr, "stderr") })
	if err := g.Wait(); err != nil {
		e.logger.Warn("failed to drain ffmpeg output", "error", err)
	}

	waitErr := cmd.Wait()

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", domain.ErrTranscoding, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: after %s", domain.ErrTranscoding, domain.ErrTranscodingTimeout, e.timeout)
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return fmt.Errorf("%w: ffmpeg exited with code %d", domain.ErrTranscoding, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %w", domain.ErrTranscoding, waitErr)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %w: %s", domain.ErrTranscoding, domain.ErrEmptyOutput, outputPath)
	}

	e.logger.Info("transcoding completed",
		"output", outputPath,
		"size", info.Size(),
		"duration", time.Since(started))

	return nil
}

// drain logs r line by line until EOF.
// On an oversized line it keeps discarding so the process never blocks on a full pipe.
func (e *executor) drain(r io.Reader, stream string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		e.logger.Debug("ffmpeg", "stream", stream, "line", scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return fmt.Errorf("%s: %w", stream, err)
	}
	return nil
}
