package video

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"edufeed/internal/dbmongo"
	"edufeed/internal/dbmysql"
)

// MediaStore is where finished videos go. Satisfied by dbmongo.MediaStorage.
type MediaStore interface {
	UploadFile(ctx context.Context, filename, mimeType string, itemID int64, content io.Reader) (*dbmongo.MediaFile, error)
}

// FFmpegAssembler muxes the narration audio over a generated vertical
// background using the ffmpeg binary, then stores the result in the
// media store under a UUID file name.
type FFmpegAssembler struct {
	store      MediaStore
	ffmpegPath string
	tempDir    string
}

func NewFFmpegAssembler(store MediaStore, tempDir string) *FFmpegAssembler {
	return &FFmpegAssembler{
		store:      store,
		ffmpegPath: "ffmpeg",
		tempDir:    tempDir,
	}
}

func (a *FFmpegAssembler) Assemble(ctx context.Context, item *dbmysql.FeedItem, script *Script, audioPath string) (*AssembleResult, error) {
	duration, err := wavDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe audio: %w", err)
	}

	fileName := fmt.Sprintf("video_%d_%s.mp4", item.ItemID, uuid.NewString())
	outPath := filepath.Join(a.tempDir, fileName)
	defer cleanupFile(outPath)

	// 1080x1920 solid background for the whole narration, audio on top
	cmd := exec.CommandContext(ctx, a.ffmpegPath,
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=0x1e2a44:s=1080x1920:d=%.2f", duration),
		"-i", audioPath,
		"-shortest",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, truncateOutput(out))
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("open assembled video: %w", err)
	}
	defer f.Close()

	if _, err := a.store.UploadFile(ctx, fileName, "video/mp4", item.ItemID, f); err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	return &AssembleResult{FileName: fileName, Duration: duration}, nil
}

func truncateOutput(out []byte) string {
	const max = 400
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return string(out)
}
