package pipeline

import (
	"sync"

	"go.uber.org/zap"
)

// progressReporter logs each chunk as workers finish it. It's the only state
// workers share, and its lock covers nothing but the bookkeeping and the log
// call.
type progressReporter struct {
	lock      sync.Mutex
	logger    *zap.Logger
	total     int
	completed int
}

func newProgressReporter(logger *zap.Logger, total int) *progressReporter {
	return &progressReporter{logger: logger, total: total}
}

func (p *progressReporter) chunkDone(index, rawSize, encodedSize int) {
	if !p.logger.Core().Enabled(zap.DebugLevel) {
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	p.completed++
	p.logger.Debug(
		"chunk done",
		zap.Int("chunk", index),
		zap.Int("raw_size", rawSize),
		zap.Int("encoded_size", encodedSize),
		zap.Int("completed", p.completed),
		zap.Int("total", p.total),
	)
}
