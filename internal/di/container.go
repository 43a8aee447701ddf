package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mailsift/mailsift/internal/adapters/gmail"
	"github.com/mailsift/mailsift/internal/auth"
	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/core"
	"github.com/mailsift/mailsift/internal/factory"
	"github.com/mailsift/mailsift/internal/logging"
	"github.com/mailsift/mailsift/internal/server"
	"github.com/mailsift/mailsift/internal/utils"
	"github.com/mailsift/mailsift/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register keyword pre-filter
	if err := container.Provide(core.NewPreFilter); err != nil {
		return nil, err
	}

	// Register sender whitelist
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetAnalysis().WhitelistedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register mail provider
	if err := container.Provide(func(logger *zap.Logger) core.MailProvider {
		return gmail.NewProvider(logger)
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(
		llm core.LLMClient,
		cacheRepo core.CacheRepository,
		cacheFactory *factory.CacheFactory,
		logger *zap.Logger,
	) (*core.Classifier, error) {
		ttl, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, err
		}
		return core.NewClassifier(llm, cacheRepo, logger, cacheFactory.IsCacheEnabled(), ttl), nil
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		provider core.MailProvider,
		prefilter *core.PreFilter,
		classifier *core.Classifier,
		whitelistChecker *whitelist.Checker,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.AnalysisService, error) {
		analysisCfg := cfg.GetAnalysis()
		classifyTimeout, err := cfg.GetDuration("analysis.classify_timeout")
		if err != nil {
			return nil, err
		}
		return core.NewAnalysisService(
			provider,
			prefilter,
			classifier,
			whitelistChecker,
			logger,
			analysisCfg.MaxMessages,
			analysisCfg.Concurrency,
			classifyTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register OAuth service
	if err := container.Provide(auth.NewService); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(server.New); err != nil {
		return nil, err
	}

	return container, nil
}
