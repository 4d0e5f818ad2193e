package kafka

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	kafkapc "github.com/avmetrik/Metadata-Extractor/internal/infrastructure/kafka"
	"github.com/avmetrik/Metadata-Extractor/internal/metrics"
	"github.com/avmetrik/Metadata-Extractor/internal/usecase"
	"github.com/avmetrik/Metadata-Extractor/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// KafkaController consumes upload notifications and runs the extractor on
// every delivery. Offsets are committed only after a successful extraction,
// so failed deliveries come back through the broker.
type KafkaController struct {
	ext    usecase.ExtractUseCase
	ec     *kafkapc.EventConsumer
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	ext usecase.ExtractUseCase,
	ec *kafkapc.EventConsumer,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *KafkaController {
	return &KafkaController{
		ext:            ext,
		ec:             ec,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	tasks := make(chan kafka.Message, c.workers*2)

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				event, err := c.ec.ReadEvent(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "KafkaController - Start - c.ec.ReadEvent")
					}
					continue
				}

				select {
				case tasks <- event:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	return nil
}

func (c *KafkaController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController - worker - panic")
				}
			}()

			started := time.Now()

			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			result := c.ext.Extract(processCtx, event.Value)
			processCancel()

			metrics.ObserveExtraction(result.StatusCode, time.Since(started))

			// failed extractions are not committed, the broker redelivers
			if result.StatusCode != http.StatusOK {
				c.logger.Error(fmt.Errorf("extraction failed: %s", result.Body), "KafkaController - worker - c.ext.Extract")

				return
			}

			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err := c.ec.CommitEvent(commitCtx, event)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "KafkaController - worker - c.ec.CommitEvent")
			}
		}()
	}
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.ec.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
