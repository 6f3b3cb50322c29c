package text2img

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// recordBuffer is the per-worker capacity of the record channel.
const recordBuffer = 16

// RecordSink receives page records. The coordinator calls Append from a
// single goroutine.
type RecordSink interface {
	Append(rec PageRecord) error
}

// RendererSource lends renderers to workers.
type RendererSource interface {
	Acquire() (Renderer, error)
	Release(Renderer)
	Size() int
}

// Compile-time interface checks.
var (
	_ RecordSink     = (*Sink)(nil)
	_ RendererSource = (*RendererPool)(nil)
)

// Options configures a Coordinator.
type Options struct {
	Corpus    Corpus
	Sink      RecordSink
	Renderers RendererSource
	Layout    Layout
	OutputDir string             // page image directory
	Logger    logrus.FieldLogger // nil discards logs
}

// Summary reports the outcome of a run.
type Summary struct {
	Documents int // fully paginated
	Pages     int // records appended to the sink
	Failed    int // abandoned after an error
	Missing   int // index not present in the corpus
}

// Coordinator paginates a shard of the corpus with a bounded set of workers.
// Workers send records over a channel; one goroutine owns the sink.
type Coordinator struct {
	corpus    Corpus
	sink      RecordSink
	renderers RendererSource
	layout    Layout
	outputDir string
	log       logrus.FieldLogger
}

// NewCoordinator validates opts and returns a Coordinator.
// Layout errors and a canvas that cannot fit one line are reported here,
// before any document is touched.
func NewCoordinator(opts Options) (*Coordinator, error) {
	if opts.Corpus == nil || opts.Sink == nil || opts.Renderers == nil {
		return nil, errors.New("coordinator requires a corpus, a sink and renderers")
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}

	r, err := opts.Renderers.Acquire()
	if err != nil {
		return nil, err
	}
	fitErr := opts.Layout.CheckFit(r.LineHeight())
	opts.Renderers.Release(r)
	if fitErr != nil {
		return nil, fitErr
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Coordinator{
		corpus:    opts.Corpus,
		sink:      opts.Sink,
		renderers: opts.Renderers,
		layout:    opts.Layout,
		outputDir: opts.OutputDir,
		log:       log,
	}, nil
}

// counters are updated concurrently by workers.
type counters struct {
	documents atomic.Int64
	pages     atomic.Int64
	failed    atomic.Int64
	missing   atomic.Int64
}

func (c *counters) summary() Summary {
	return Summary{
		Documents: int(c.documents.Load()),
		Pages:     int(c.pages.Load()),
		Failed:    int(c.failed.Load()),
		Missing:   int(c.missing.Load()),
	}
}

// Run paginates every document of shard.
// Per-document failures are logged and counted, never returned. Run returns
// an error only when the sink fails or ctx is canceled; the summary then
// covers the work finished so far.
func (c *Coordinator) Run(ctx context.Context, shard Shard) (Summary, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var stats counters
	records := make(chan PageRecord, c.renderers.Size()*recordBuffer)
	drained := make(chan error, 1)
	go func() {
		drained <- c.drain(records, &stats, cancel)
	}()

	c.log.WithFields(logrus.Fields{
		"rank":    shard.Rank,
		"start":   shard.Start,
		"end":     shard.End,
		"workers": c.renderers.Size(),
	}).Info("starting shard")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.renderers.Size())
	for idx := shard.Start; idx < shard.End; idx++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			c.processDocument(gctx, idx, records, &stats)
			return nil
		})
	}
	_ = g.Wait()
	close(records)

	// The drain goroutine still counts pages until it returns.
	drainErr := <-drained
	summary := stats.summary()
	if drainErr != nil {
		return summary, drainErr
	}
	if err := context.Cause(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}

// drain appends records until the channel closes. After the first sink
// error it cancels the run and discards the rest so workers never block.
func (c *Coordinator) drain(records <-chan PageRecord, stats *counters, cancel context.CancelCauseFunc) error {
	var firstErr error
	for rec := range records {
		if firstErr != nil {
			continue
		}
		if err := c.sink.Append(rec); err != nil {
			firstErr = err
			cancel(err)
			c.log.WithError(err).Error("metadata sink failed, stopping")
			continue
		}
		stats.pages.Add(1)
	}
	return firstErr
}

// processDocument paginates one document. Errors are logged and counted
// so that one bad document never stops the shard.
func (c *Coordinator) processDocument(ctx context.Context, index int, records chan<- PageRecord, stats *counters) {
	log := c.log.WithField("doc", index)

	text, err := c.corpus.Text(index)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			stats.missing.Add(1)
			log.WithError(err).Warn("skipping missing document")
			return
		}
		stats.failed.Add(1)
		log.WithError(err).Error("skipping unreadable document")
		return
	}

	r, err := c.renderers.Acquire()
	if err != nil {
		stats.failed.Add(1)
		log.WithError(err).Error("no renderer available")
		return
	}
	defer c.renderers.Release(r)

	p := &Paginator{Layout: c.layout, Renderer: r, OutputDir: c.outputDir}
	pages, err := p.PaginateDocument(ctx, index, text, func(rec PageRecord) error {
		select {
		case records <- rec:
			return nil
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			log.WithField("pages", pages).Debug("interrupted")
			return
		}
		stats.failed.Add(1)
		log.WithError(err).WithField("pages", pages).Error("abandoning document")
		return
	}

	stats.documents.Add(1)
	log.WithField("pages", pages).Debug("document done")
}

// String formats the summary for humans.
func (s Summary) String() string {
	return fmt.Sprintf("%d documents, %d pages, %d failed, %d missing", s.Documents, s.Pages, s.Failed, s.Missing)
}
