package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// probeArgs reads the rotate tag of the first video stream as a bare value
var probeArgs = []string{
	"-v", "error",
	"-select_streams", "v:0",
	"-show_entries", "stream_tags=rotate",
	"-of", "default=nw=1:nk=1",
}

// probeRotation returns the rotation tag of input, or "" when it has none.
func (e *executor) probeRotation(ctx context.Context, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := append(append([]string{}, probeArgs...), input)
	out, err := exec.CommandContext(ctx, e.ffprobePath, args...).Output()
	if err != nil {
		return "", fmt.Errorf("ffprobe %s: %w", input, err)
	}

	return strings.TrimSpace(string(out)), nil
}
