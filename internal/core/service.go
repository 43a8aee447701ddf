package core

import (
	"context"
	"sync"
	"time"

	"github.com/mailsift/mailsift/internal/whitelist"
	"go.uber.org/zap"
)

// AnalysisService runs one inbox analysis: fetch recent messages, narrow them
// with the keyword pre-filter, confirm the survivors with the LLM and
// partition the verdicts.
type AnalysisService struct {
	provider        MailProvider
	prefilter       *PreFilter
	classifier      *Classifier
	whitelist       *whitelist.Checker
	logger          *zap.Logger
	maxMessages     int64
	concurrency     int
	classifyTimeout time.Duration
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	provider MailProvider,
	prefilter *PreFilter,
	classifier *Classifier,
	whitelistChecker *whitelist.Checker,
	logger *zap.Logger,
	maxMessages int64,
	concurrency int,
	classifyTimeout time.Duration,
) *AnalysisService {
	if maxMessages <= 0 {
		maxMessages = 300
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &AnalysisService{
		provider:        provider,
		prefilter:       prefilter,
		classifier:      classifier,
		whitelist:       whitelistChecker,
		logger:          logger,
		maxMessages:     maxMessages,
		concurrency:     concurrency,
		classifyTimeout: classifyTimeout,
	}
}

// Analyze fetches up to the configured number of recent messages for the
// given token and classifies the suspected ones. Only a fetch failure is
// returned as an error; per-message classification failures degrade in place.
func (s *AnalysisService) Analyze(ctx context.Context, token string) (*AnalysisResult, error) {
	messages, err := s.provider.FetchMessages(ctx, token, s.maxMessages)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Spam:  []AnalyzedMessage{},
		Other: []AnalyzedMessage{},
	}
	result.Summary.TotalScannedLocally = len(messages)

	if len(messages) == 0 {
		s.logger.Info("No messages retrieved, nothing to analyze")
		return result, nil
	}

	suspects := s.selectSuspects(messages)
	result.Summary.TotalSuspectedByLocalFilter = len(suspects)

	s.logger.Info("Local pre-filtering complete",
		zap.Int("scanned", len(messages)),
		zap.Int("suspected", len(suspects)))

	analyzed := s.classifyAll(ctx, suspects)

	for _, am := range analyzed {
		if am.Classification.IsSpam {
			result.Spam = append(result.Spam, am)
		} else {
			result.Other = append(result.Other, am)
		}
	}
	result.Summary.TotalConfirmedSpamByAI = len(result.Spam)

	s.logger.Info("AI analysis complete",
		zap.Int("suspected", len(suspects)),
		zap.Int("confirmed_spam", len(result.Spam)))

	return result, nil
}

// selectSuspects applies the keyword gate and the sender whitelist.
// Discarded messages are never classified and never appear in any output.
func (s *AnalysisService) selectSuspects(messages []Message) []Message {
	suspects := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if s.whitelist != nil && s.whitelist.IsWhitelisted(msg.From) {
			s.logger.Debug("Skipping whitelisted sender", zap.String("from", msg.From))
			continue
		}
		if s.prefilter.Suspect(msg.Subject, msg.Snippet) {
			suspects = append(suspects, msg)
		}
	}
	return suspects
}

// classifyAll invokes the classifier for every suspect with at most
// s.concurrency calls in flight. Results keep the original fetch order
// regardless of completion order.
func (s *AnalysisService) classifyAll(ctx context.Context, suspects []Message) []AnalyzedMessage {
	analyzed := make([]AnalyzedMessage, len(suspects))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, msg := range suspects {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, msg Message) {
			defer wg.Done()
			defer func() { <-sem }()

			callCtx := ctx
			if s.classifyTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, s.classifyTimeout)
				defer cancel()
			}

			analyzed[i] = AnalyzedMessage{
				Message:        msg,
				Classification: s.classifier.Classify(callCtx, msg),
			}
		}(i, msg)
	}

	wg.Wait()
	return analyzed
}
