package browser

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const screenshotTimeFormat = "2006-01-02_15-04-05"

// Screenshots saves browser screenshots as PNG files in a directory. Failing to take or save a
// screenshot is logged and never returned: a screenshot is a diagnostic aid for a test that has
// already failed.
type Screenshots struct {
	Dir    string
	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Capture saves a screenshot named after the test and the current time, and returns its path,
// or "" if no screenshot could be saved.
func (s *Screenshots) Capture(d Driver, testName string) string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.save(d, SanitizeFileName(testName)+"_"+now().Format(screenshotTimeFormat))
}

// CaptureNamed saves a screenshot as <Dir>/<fileName>.png.
func (s *Screenshots) CaptureNamed(d Driver, fileName string) string {
	return s.save(d, SanitizeFileName(fileName))
}

// Bytes returns the PNG data of a screenshot, or nil if it could not be taken.
func (s *Screenshots) Bytes(d Driver) []byte {
	data, err := d.Screenshot()
	if err != nil {
		s.logger().Error("Failed to capture screenshot as bytes", "error", err)
		return nil
	}
	return data
}

func (s *Screenshots) save(d Driver, base string) string {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.logger().Error("Failed to create screenshot directory", "dir", s.Dir, "error", err)
		return ""
	}
	data, err := d.Screenshot()
	if err != nil {
		s.logger().Error("Failed to capture screenshot", "name", base, "error", err)
		return ""
	}
	path := filepath.Join(s.Dir, base+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger().Error("Failed to save screenshot", "path", path, "error", err)
		return ""
	}
	s.logger().Info("Screenshot captured", "path", path)
	return path
}

func (s *Screenshots) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// SanitizeFileName replaces the characters of a test name that cannot be used in a file name.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
