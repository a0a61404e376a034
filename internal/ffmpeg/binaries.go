// Package ffmpeg locates the ffmpeg and ffprobe executables every media
// operation shells out to. Resolution order: explicit environment
// overrides, PATH, then a cached download of the ffbinaries release.
package ffmpeg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	releaseVersion = "6.1"
	releaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"
)

// Paths points at resolved ffmpeg and ffprobe executables.
type Paths struct {
	FFmpeg  string
	FFprobe string
}

var (
	resolveOnce sync.Once
	resolved    Paths
	resolveErr  error
)

// Ensure resolves both binaries once per process.
func Ensure() (Paths, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolve()
	})
	return resolved, resolveErr
}

// FFmpegPath returns the ffmpeg executable, resolving it on first use.
func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

// FFprobePath returns the ffprobe executable, resolving it on first use.
func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (Paths, error) {
	paths := Paths{
		FFmpeg:  os.Getenv("WORDPOP_FFMPEG_PATH"),
		FFprobe: os.Getenv("WORDPOP_FFPROBE_PATH"),
	}
	if paths.FFmpeg == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		return paths, nil
	}
	return install()
}

func install() (Paths, error) {
	asset, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Paths{}, err
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	installDir := filepath.Join(cacheDir, "wordpop", "ffmpeg", releaseVersion, runtime.GOOS, runtime.GOARCH)
	paths := Paths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+exeSuffix()),
		FFprobe: filepath.Join(installDir, "ffprobe"+exeSuffix()),
	}
	if fileExists(paths.FFmpeg) && fileExists(paths.FFprobe) {
		return paths, nil
	}

	if err := os.MkdirAll(installDir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create ffmpeg cache dir: %w", err)
	}
	if err := download(asset, installDir); err != nil {
		return Paths{}, err
	}
	if !fileExists(paths.FFmpeg) || !fileExists(paths.FFprobe) {
		return Paths{}, errors.New("ffmpeg archive did not contain both binaries")
	}
	if runtime.GOOS != "windows" {
		for _, p := range []string{paths.FFmpeg, paths.FFprobe} {
			if err := os.Chmod(p, 0755); err != nil {
				return Paths{}, fmt.Errorf("failed to mark %s executable: %w", filepath.Base(p), err)
			}
		}
	}
	return paths, nil
}

func releaseAsset(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "ffmpeg-" + releaseVersion + "-linux-64.zip", nil
	case goos == "linux" && goarch == "arm64":
		return "ffmpeg-" + releaseVersion + "-linux-arm-64.zip", nil
	case goos == "darwin":
		return "ffmpeg-" + releaseVersion + "-macos-64.zip", nil
	case goos == "windows" && goarch == "amd64":
		return "ffmpeg-" + releaseVersion + "-win-64.zip", nil
	default:
		return "", fmt.Errorf("no prebuilt ffmpeg for %s/%s, install ffmpeg or set WORDPOP_FFMPEG_PATH", goos, goarch)
	}
}

func download(asset, installDir string) error {
	url := fmt.Sprintf("%s/v%s/%s", releaseBaseURL, releaseVersion, asset)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download ffmpeg bundle: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download ffmpeg bundle: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "wordpop-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp archive: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to save ffmpeg bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save ffmpeg bundle: %w", err)
	}
	return unzipBinaries(tmp.Name(), installDir)
}

// unzipBinaries pulls just ffmpeg and ffprobe out of the release
// archive, flattening whatever directory layout the bundle uses.
func unzipBinaries(archivePath, installDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, entry := range zr.File {
		var dest string
		switch trimExe(filepath.Base(entry.Name)) {
		case "ffmpeg":
			dest = filepath.Join(installDir, "ffmpeg"+exeSuffix())
		case "ffprobe":
			dest = filepath.Join(installDir, "ffprobe"+exeSuffix())
		default:
			continue
		}
		if err := extractEntry(entry, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", entry.Name, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

func trimExe(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".exe")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
