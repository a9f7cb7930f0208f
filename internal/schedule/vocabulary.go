package schedule

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// Vocabulary is the fixed set of choices the submission form offers.
type Vocabulary struct {
	Platforms []string `yaml:"platforms" json:"platforms"`
	Formats   []string `yaml:"formats" json:"formats"`
}

// DefaultVocabulary is used when no vocabulary file is configured
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Platforms: []string{"FB", "IG", "@Threads", "YT", "TikTok", "官網", "LINE OA", "LINE VOOM"},
		Formats:   []string{"貼文", "限動", "影片", "短影音(Reels/Shorts)"},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Lists left out of the file
// keep their defaults.
func LoadVocabulary(path string) (Vocabulary, error) {
	voc := DefaultVocabulary()
	if path == "" {
		return voc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return voc, err
	}

	var file Vocabulary
	if err := yaml.Unmarshal(data, &file); err != nil {
		return voc, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}

	if len(file.Platforms) > 0 {
		voc.Platforms = file.Platforms
	}
	if len(file.Formats) > 0 {
		voc.Formats = file.Formats
	}

	log.Printf("📋 Vocabulary Loaded: %d platforms, %d formats", len(voc.Platforms), len(voc.Formats))
	return voc, nil
}

func (v Vocabulary) HasFormat(f string) bool {
	return contains(v.Formats, f)
}

func (v Vocabulary) HasPlatform(p string) bool {
	return contains(v.Platforms, p)
}

// Options is everything a form needs to render its choices.
type Options struct {
	Kinds      []models.Kind      `json:"kinds"`
	Statuses   []models.Status    `json:"statuses"`
	CycleModes []models.CycleMode `json:"cycle_modes"`
	Weekdays   []string           `json:"weekdays"`
	Platforms  []string           `json:"platforms"`
	Formats    []string           `json:"formats"`
}

func (v Vocabulary) Options() Options {
	return Options{
		Kinds:      []models.Kind{models.KindCampaign, models.KindRecurring},
		Statuses:   []models.Status{models.StatusPlanning, models.StatusExecuting},
		CycleModes: []models.CycleMode{models.CycleOnce, models.CycleDaily, models.CycleWeekly},
		Weekdays:   append([]string(nil), models.WeekdayOrder...),
		Platforms:  append([]string(nil), v.Platforms...),
		Formats:    append([]string(nil), v.Formats...),
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
