package entity

import (
	"fmt"
	"strconv"
	"strings"
)

type BackgroundKind string

const (
	BackgroundAurora BackgroundKind = "aurora"
	BackgroundVideo  BackgroundKind = "video"

	MinAuroraVariant = 1
	MaxAuroraVariant = 4
)

// BackgroundVariant is either one of the aurora presets or an imported video file
type BackgroundVariant struct {
	Kind     BackgroundKind `json:"kind"`
	Variant  int            `json:"variant,omitempty"`
	FileName string         `json:"fileName,omitempty"`
}

func DefaultBackground() BackgroundVariant {
	return Aurora(MinAuroraVariant)
}

func Aurora(variant int) BackgroundVariant {
	return BackgroundVariant{Kind: BackgroundAurora, Variant: variant}
}

func Video(fileName string) BackgroundVariant {
	return BackgroundVariant{Kind: BackgroundVideo, FileName: fileName}
}

func (b BackgroundVariant) Validate() error {
	switch b.Kind {
	case BackgroundAurora:
		if b.Variant < MinAuroraVariant || b.Variant > MaxAuroraVariant {
			return fmt.Errorf("aurora variant must be between %d and %d, got %d", MinAuroraVariant, MaxAuroraVariant, b.Variant)
		}
	case BackgroundVideo:
		if strings.TrimSpace(b.FileName) == "" {
			return fmt.Errorf("video background requires a file name")
		}
	default:
		return fmt.Errorf("unknown background kind %q", b.Kind)
	}
	return nil
}

// String encodes the variant as stored: aurora:2 or video:x.mov
func (b BackgroundVariant) String() string {
	if b.Kind == BackgroundVideo {
		return string(BackgroundVideo) + ":" + b.FileName
	}
	return string(BackgroundAurora) + ":" + strconv.Itoa(b.Variant)
}

// ParseBackground decodes a stored value. Invalid values fall back to aurora:1.
func ParseBackground(raw string) BackgroundVariant {
	kind, value, found := strings.Cut(raw, ":")
	if !found {
		return DefaultBackground()
	}

	var parsed BackgroundVariant
	switch BackgroundKind(kind) {
	case BackgroundAurora:
		variant, err := strconv.Atoi(value)
		if err != nil {
			return DefaultBackground()
		}
		parsed = Aurora(variant)
	case BackgroundVideo:
		parsed = Video(value)
	default:
		return DefaultBackground()
	}

	if parsed.Validate() != nil {
		return DefaultBackground()
	}
	return parsed
}
