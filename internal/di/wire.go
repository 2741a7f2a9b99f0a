//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"edufeed/internal/analysis"
	"edufeed/internal/config"
	"edufeed/internal/dbmongo"
	"edufeed/internal/dbmysql"
	"edufeed/internal/feed"
	"edufeed/internal/video"
)

// This is just a declaration — wire generates the real body
func InitializeFeedService() (*Application, func(), error) {
	wire.Build(
		config.LoadConfig,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewMediaStorage,
		analysis.NewEngine,
		feed.NewFeedRepository,
		feed.NewFeedService,
		feed.NewRecurringAnalyzer,
		video.NewTemplateScriptGenerator,
		ProvideWavSynthesizer,
		ProvideFFmpegAssembler,
		ProvidePipeline,
		ProvideRegistry,
		ProvideCollector,
		ProvideRateLimiter,
		feed.NewFeedHandlers,
		wire.Bind(new(feed.Items), new(*feed.FeedRepository)),
		wire.Bind(new(feed.FeedUsecase), new(*feed.FeedService)),
		wire.Bind(new(feed.RecurringUsecase), new(*feed.RecurringAnalyzer)),
		wire.Bind(new(feed.VideoUsecase), new(*video.Pipeline)),
		wire.Bind(new(video.ScriptGenerator), new(*video.TemplateScriptGenerator)),
		wire.Bind(new(video.AudioSynthesizer), new(*video.WavSynthesizer)),
		wire.Bind(new(video.VideoAssembler), new(*video.FFmpegAssembler)),
		wire.Bind(new(video.MediaStore), new(*dbmongo.MediaStorage)),
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil // dummy for compilation
}
