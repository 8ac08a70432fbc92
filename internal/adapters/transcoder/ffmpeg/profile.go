package ffmpeg

// Profile describes the fixed encoding settings applied to every upload.
type Profile struct {
	FrameRate    string
	Scale        string
	VideoCodec   string
	Preset       string
	CRF          string
	VideoBitrate string
	MaxRate      string
	BufSize      string
	PixelFormat  string
	AudioCodec   string
	AudioBitrate string
	SampleRate   string
}

// DefaultProfile returns the web playback profile: 30 fps, 1080 wide H.264 capped at 5 Mbps, AAC audio.
func DefaultProfile(preset string) Profile {
	if preset == "" {
		preset = "medium"
	}
	return Profile{
		FrameRate:    "30",
		Scale:        "scale=1080:-2",
		VideoCodec:   "libx264",
		Preset:       preset,
		CRF:          "23",
		VideoBitrate: "5M",
		MaxRate:      "5M",
		BufSize:      "5M",
		PixelFormat:  "yuv420p",
		AudioCodec:   "aac",
		AudioBitrate: "192k",
		SampleRate:   "44100",
	}
}

// Args returns the ffmpeg command line encoding input into output.
// When stripRotation is set, the rotation tag of the video stream is reset to 0.
func (p Profile) Args(input, output string, stripRotation bool) []string {
	args := make([]string, 0, 36)
	args = append(args, "-i", input)
	args = append(args,
		"-r", p.FrameRate,
		"-vf", p.Scale,
		"-c:v", p.VideoCodec,
		"-preset", p.Preset,
		"-crf", p.CRF,
		"-b:v", p.VideoBitrate,
		"-maxrate", p.MaxRate,
		"-bufsize", p.BufSize,
		"-pix_fmt", p.PixelFormat,
		"-movflags", "+faststart",
		"-c:a", p.AudioCodec,
		"-b:a", p.AudioBitrate,
		"-ar", p.SampleRate,
		"-y",
	)
	if stripRotation {
		args = append(args, "-metadata:s:v", "rotate=0")
	}
	return append(args, output)
}
