// Package video implements the promo video generation pipeline:
// script generation, audio synthesis and video assembly, run strictly
// in order with the item's video_status tracking the attempt.
package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"edufeed/internal/common"
	"edufeed/internal/dbmysql"
	"edufeed/internal/feed"
)

// Script is the stage-1 output
type Script struct {
	Text      string
	WordCount int
	Model     string
}

// AssembleResult is the stage-3 output
type AssembleResult struct {
	FileName string
	Duration float64 // seconds
}

type ScriptGenerator interface {
	Generate(ctx context.Context, item *dbmysql.FeedItem) (*Script, error)
}

type AudioSynthesizer interface {
	Synthesize(ctx context.Context, script string, path string) error
}

type VideoAssembler interface {
	Assemble(ctx context.Context, item *dbmysql.FeedItem, script *Script, audioPath string) (*AssembleResult, error)
}

// Pipeline drives the three stages and owns the item's video fields.
// Each stage is a hard dependency of the next; nothing runs in parallel.
// All persistence goes through UpdateVideoFields so content edits made
// while an attempt runs are never overwritten.
type Pipeline struct {
	itemRepo     feed.Items
	scripts      ScriptGenerator
	audio        AudioSynthesizer
	assembler    VideoAssembler
	tempDir      string
	stageTimeout time.Duration

	mu       sync.Mutex
	inflight map[int64]bool
}

func NewPipeline(items feed.Items, scripts ScriptGenerator, audio AudioSynthesizer, assembler VideoAssembler, tempDir string, stageTimeout time.Duration) *Pipeline {
	return &Pipeline{
		itemRepo:     items,
		scripts:      scripts,
		audio:        audio,
		assembler:    assembler,
		tempDir:      tempDir,
		stageTimeout: stageTimeout,
		inflight:     make(map[int64]bool),
	}
}

func (p *Pipeline) acquire(itemID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight[itemID] {
		return false
	}
	p.inflight[itemID] = true
	return true
}

func (p *Pipeline) release(itemID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inflight, itemID)
}

// Generate runs one full attempt for the item. On success the item ends
// completed with URL and metadata persisted; on any stage failure it ends
// failed with no partial URL or metadata.
func (p *Pipeline) Generate(ctx context.Context, itemID int64) (*dbmysql.FeedItem, error) {
	item, err := p.itemRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !p.acquire(itemID) {
		return nil, common.ErrAlreadyProcessing
	}
	defer p.release(itemID)

	if !common.VideoStatus(item.VideoStatus).CanStartAttempt() {
		return nil, common.ErrAlreadyProcessing
	}

	item.VideoStatus = common.VideoStatusProcessing.String()
	if err := p.persistVideoFields(ctx, item); err != nil {
		return nil, err
	}

	// 1. Script
	script, err := p.runScript(ctx, item)
	if err != nil {
		return item, p.fail(ctx, item, "script", err)
	}

	// 2. Audio
	if err := os.MkdirAll(p.tempDir, 0o755); err != nil {
		return item, p.fail(ctx, item, "audio", err)
	}
	audioPath := filepath.Join(p.tempDir, fmt.Sprintf("audio_%d_%s.wav", itemID, uuid.NewString()))
	defer cleanupFile(audioPath)

	if err := p.runAudio(ctx, script.Text, audioPath); err != nil {
		return item, p.fail(ctx, item, "audio", err)
	}

	// 3. Video assembly (no subtitles in this flow)
	result, err := p.runAssemble(ctx, item, script, audioPath)
	if err != nil {
		return item, p.fail(ctx, item, "video", err)
	}

	now := time.Now()
	item.VideoURL = "/media/feed_videos/" + result.FileName
	item.VideoStatus = common.VideoStatusCompleted.String()
	item.VideoGeneratedAt = &now
	item.VideoMeta = &dbmysql.VideoMetadata{
		Script:    script.Text,
		Duration:  result.Duration,
		WordCount: script.WordCount,
		Model:     script.Model,
	}
	if err := p.persistVideoFields(ctx, item); err != nil {
		return item, err
	}
	return item, nil
}

func (p *Pipeline) persistVideoFields(ctx context.Context, item *dbmysql.FeedItem) error {
	return p.itemRepo.UpdateVideoFields(ctx, item.ItemID, item.VideoStatus, item.VideoURL, item.VideoGeneratedAt, item.VideoMeta)
}

func (p *Pipeline) runScript(ctx context.Context, item *dbmysql.FeedItem) (*Script, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.scripts.Generate(ctx, item)
}

func (p *Pipeline) runAudio(ctx context.Context, script, path string) error {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.audio.Synthesize(ctx, script, path)
}

func (p *Pipeline) runAssemble(ctx context.Context, item *dbmysql.FeedItem, script *Script, audioPath string) (*AssembleResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return p.assembler.Assemble(ctx, item, script, audioPath)
}

// fail marks the attempt as failed and surfaces the originating stage.
// A persistence error while recording the failure is logged, not returned;
// the stage error is what the caller needs to see.
func (p *Pipeline) fail(ctx context.Context, item *dbmysql.FeedItem, stage string, cause error) error {
	item.VideoStatus = common.VideoStatusFailed.String()
	if err := p.persistVideoFields(ctx, item); err != nil {
		log.Printf("failed to persist video status for item %d: %v", item.ItemID, err)
	}
	return common.NewStageError(stage, cause)
}

// cleanupFile is best-effort: a deletion failure is logged and swallowed,
// never escalated past this point.
func cleanupFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("cleanup: could not remove %s: %v", path, err)
	}
}
