package utils

import (
	"crypto/rand"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	StripEmphasis(text string) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

var (
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`(^|[^*])\*([^*]+)\*`)
	underPattern  = regexp.MustCompile(`__(.*?)__`)
)

// StripEmphasis flattens markdown-style emphasis for plain-text channels.
func (u *utils) StripEmphasis(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1$2")
	text = underPattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
