package config

import (
	"os"
	"sync"
)

var (
	textractOnce   sync.Once
	textractConfig *TextractConfig
)

type TextractConfig struct {
	Enabled       bool
	Region        string
	AccessKey     string
	SecretKey     string
	MinConfidence float32
}

func GetTextractConfig() *TextractConfig {
	textractOnce.Do(func() {
		textractConfig = newTextractConfig(getSettings())
	})
	return textractConfig
}

func newTextractConfig(s *settings) *TextractConfig {
	return &TextractConfig{
		Enabled:       s.Bool("TEXTRACT_ENABLED", s.file.Textract.Enabled, false),
		Region:        s.String("AWS_REGION", s.file.Textract.Region, "us-east-1"),
		AccessKey:     os.Getenv("AWS_ACCESS_KEY"),
		SecretKey:     os.Getenv("AWS_SECRET_KEY"),
		MinConfidence: float32(s.Float("TEXTRACT_MIN_CONFIDENCE", s.file.Textract.MinConfidence, 80)),
	}
}
