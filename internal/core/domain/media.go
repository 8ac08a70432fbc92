package domain

import (
	"io"
	"os"
)

// MediaKind is the closed set of media families the pipeline branches on
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindOther MediaKind = "other"
)

// UsageCategory is the declared purpose of an uploaded media file
type UsageCategory string

const (
	UsagePost               UsageCategory = "POST"
	UsageProfileImage       UsageCategory = "PROFILE_IMAGE"
	UsageCoverImage         UsageCategory = "COVER_IMAGE"
	UsageProfileBannerImage UsageCategory = "PROFILE_BANNER_IMAGE"
	UsageClubLogo           UsageCategory = "CLUB_LOGO"
	UsageSignature          UsageCategory = "SIGNATURE"
)

// ParseUsageCategory validates a usage category received from a client
func ParseUsageCategory(s string) (UsageCategory, error) {
	switch u := UsageCategory(s); u {
	case UsagePost, UsageProfileImage, UsageCoverImage, UsageProfileBannerImage, UsageClubLogo, UsageSignature:
		return u, nil
	default:
		return "", ErrInvalidUsageCategory
	}
}

// UploadRequest is an accepted upload, immutable once built
type UploadRequest struct {
	Body     io.Reader
	Filename string
	Usage    UsageCategory
	UserID   string
	Token    string
}

// ProcessedArtifact is the per-run state of one upload.
// It is owned by a single orchestration run and never shared.
type ProcessedArtifact struct {
	WorkDir       string
	OriginalPath  string
	ProcessedPath string
	FinalFilename string
	Extension     string
	Kind          MediaKind
	ContentType   string
	Inappropriate bool
	// RemovalReason is set when an inline delete failed and the reconciler must remove the object
	RemovalReason string
}

// Size returns the size in bytes of the file that will be published
func (a *ProcessedArtifact) Size() (int64, error) {
	info, err := os.Stat(a.ProcessedPath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// QuotaSnapshot holds a user's existing post counts at request time
type QuotaSnapshot struct {
	ImageCount int64
	VideoCount int64
}

// ModerationVerdict is the outcome of one moderation check
type ModerationVerdict struct {
	Inappropriate bool
	Labels        []string
}

// ModerationJobStatus is the state of an asynchronous moderation job
type ModerationJobStatus string

const (
	ModerationJobInProgress ModerationJobStatus = "IN_PROGRESS"
	ModerationJobSucceeded  ModerationJobStatus = "SUCCEEDED"
	ModerationJobFailed     ModerationJobStatus = "FAILED"
)

// ModerationJob is a status snapshot of an asynchronous moderation job
type ModerationJob struct {
	ID      string
	Status  ModerationJobStatus
	Labels  []string
	Message string
}

// DerivativeURLs are the resized renditions produced for an image
type DerivativeURLs struct {
	Status string
	URLs   DerivativeSet
}

// DerivativeSet maps each rendition name to its URL
type DerivativeSet struct {
	Profile           string `json:"profile"`
	Square            string `json:"square"`
	Portrait          string `json:"portrait"`
	Landscape         string `json:"landscape"`
	Story             string `json:"story"`
	ReelCoverSafeZone string `json:"reelCoverSafeZone"`
	Thumbnail         string `json:"thumbnail"`
}

// DerivativeStatusSuccess is the only status that makes derivative URLs usable
const DerivativeStatusSuccess = "success"

// For returns the rendition URL used for the given usage category
func (d DerivativeURLs) For(usage UsageCategory) string {
	switch usage {
	case UsageSignature:
		return d.URLs.Landscape
	case UsageProfileImage, UsageClubLogo, UsageCoverImage, UsageProfileBannerImage:
		return d.URLs.Profile
	default:
		return d.URLs.Story
	}
}
