// Package di wires the feed service object graph with google/wire.
package di

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"edufeed/internal/common"
	"edufeed/internal/config"
	"edufeed/internal/dbmongo"
	"edufeed/internal/feed"
	"edufeed/internal/metrics"
	"edufeed/internal/video"
)

// Application holds everything the feed service binary needs at startup
type Application struct {
	Config      *config.Config
	DB          *gorm.DB
	Mongo       *dbmongo.MongoClient
	Handlers    *feed.FeedHandlers
	RateLimiter *common.RateLimiter
	Registry    *prometheus.Registry
}

func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func ProvideWavSynthesizer(cfg *config.Config) *video.WavSynthesizer {
	return video.NewWavSynthesizer(cfg.Video.WordsPerSecond)
}

func ProvideFFmpegAssembler(store *dbmongo.MediaStorage, cfg *config.Config) *video.FFmpegAssembler {
	return video.NewFFmpegAssembler(store, cfg.Video.TempDir)
}

func ProvidePipeline(items feed.Items, scripts video.ScriptGenerator, audio video.AudioSynthesizer, assembler video.VideoAssembler, cfg *config.Config) *video.Pipeline {
	return video.NewPipeline(items, scripts, audio, assembler, cfg.Video.TempDir,
		time.Duration(cfg.Video.StageTimeoutSec)*time.Second)
}

func ProvideRateLimiter(cfg *config.Config) *common.RateLimiter {
	return common.NewRateLimiter(cfg.Analysis.CheckRatePerMinute, cfg.Analysis.CheckBurst)
}

// ProvideCollector registers the service metrics on the shared registry
func ProvideCollector(reg *prometheus.Registry) *metrics.Collector {
	return metrics.NewCollector(reg)
}
