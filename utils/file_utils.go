package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// cleanFilename removes path components and any potentially dangerous
// characters from an uploaded filename.
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	return filenameSanitizer.ReplaceAllString(filename, "")
}

// IsVideoContentType reports whether the declared content type is a video.
// Upload validation is content-type only; the bytes themselves are not probed.
func IsVideoContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}

// TimestampedFilename prefixes the cleaned original filename with the current
// UTC timestamp in fractional seconds. Two uploads of the same filename within
// the same microsecond tick would collide; accepted limitation.
func TimestampedFilename(original string) string {
	ts := strconv.FormatFloat(float64(time.Now().UTC().UnixMicro())/1e6, 'f', 6, 64)
	return ts + "_" + cleanFilename(original)
}

// InitializeStorage creates the directories for file storage.
func InitializeStorage() error {
	if err := os.MkdirAll(uploadBaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(uploadBaseDir, "thumbnails"), 0755); err != nil {
		return fmt.Errorf("failed to create thumbnails directory: %v", err)
	}
	return nil
}

// SaveUpload writes uploaded bytes under the uploads directory and returns the
// relative serving path.
func SaveUpload(fileData []byte, filename string) (string, error) {
	if err := InitializeStorage(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadBaseDir, filename)
	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return fmt.Sprintf("%s/%s", baseURL, filename), nil
}

// PublicURL prefixes a relative upload path with BACKEND_URL when configured,
// so clients behind a proxy receive absolute media URLs.
func PublicURL(relativePath string) string {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		return relativePath
	}
	return strings.TrimRight(backendURL, "/") + relativePath
}

// GenerateVideoThumbnail extracts the first frame of an uploaded video and
// saves a resized JPEG next to it. Thumbnailing is best effort; callers log
// and move on when it fails (e.g. no ffmpeg binary on the host).
func GenerateVideoThumbnail(videoPath string) (string, error) {
	relPath := strings.TrimPrefix(videoPath, baseURL+"/")
	fullVideoPath := filepath.Join(uploadBaseDir, relPath)

	tempPath := filepath.Join(os.TempDir(), "thumb_"+filepath.Base(relPath)+".jpg")
	err := ffmpeg.Input(fullVideoPath).
		Output(tempPath, ffmpeg.KwArgs{"vframes": 1, "ss": "00:00:01"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to extract frame: %v", err)
	}
	defer os.Remove(tempPath)

	frameData, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to read frame: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(frameData))
	if err != nil {
		return "", fmt.Errorf("failed to decode frame: %v", err)
	}

	// Max width 320px, aspect ratio preserved
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	videoFilename := filepath.Base(relPath)
	thumbnailName := strings.TrimSuffix(videoFilename, filepath.Ext(videoFilename)) + ".jpg"
	fullThumbnailPath := filepath.Join(uploadBaseDir, "thumbnails", thumbnailName)

	if err := os.MkdirAll(filepath.Dir(fullThumbnailPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %v", err)
	}
	if err := os.WriteFile(fullThumbnailPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return fmt.Sprintf("%s/thumbnails/%s", baseURL, thumbnailName), nil
}
