// Package text2img renders a text corpus into fixed-size page images and
// records the exact text drawn on every page.
//
// # Quick Start
//
// Paginate one document with a renderer and collect its page records:
//
//	layout := text2img.DefaultLayout()
//	p := &text2img.Paginator{
//	    Layout:    layout,
//	    Renderer:  text2img.NewFontRenderer(face, layout),
//	    OutputDir: "outputimg",
//	}
//	pages, err := p.PaginateDocument(ctx, 0, text, func(rec text2img.PageRecord) error {
//	    return sink.Append(rec)
//	})
//
// Each page image is written to OutputDir as "<doc>_<seq>.png" and each
// record maps that key to the page text and image path.
//
// # Pagination Pipeline
//
// A document goes through these stages:
//
//  1. Sanitization: characters outside 7-bit ASCII are removed (Sanitize)
//  2. Word grouping: WordsPerGroup words are read per page iteration
//  3. Line wrapping: words are packed greedily into lines (WrapLines)
//  4. Page filling: the lines that fit the canvas height are drawn
//     (PaginateLines); the rest carry over to the next page
//
// Words are never split or dropped: concatenating the text of a
// document's records in sequence order gives back its sanitized words.
//
// # Sharded Runs
//
// A corpus can be split over several processes. ComputeShard returns the
// contiguous range of documents owned by one rank, and a Coordinator
// processes that range with a pool of renderers:
//
//	shard, err := text2img.ComputeShard(corpus.Len(), worldSize, rank)
//	pool := text2img.NewRendererPool(workers, text2img.NewRendererFactory(src, layout))
//	defer pool.Close()
//
//	c, err := text2img.NewCoordinator(text2img.Options{
//	    Corpus:    corpus,
//	    Sink:      sink,
//	    Renderers: pool,
//	    Layout:    layout,
//	    OutputDir: "outputimg",
//	})
//	summary, err := c.Run(ctx, shard)
//
// A document that fails is logged and skipped; the run continues with the
// next one. Run stops only when the metadata sink fails or the context is
// canceled.
//
// # Metadata
//
// Sink appends one JSON object per page to the metadata file, so a partial
// file stays readable. WriteIndex produces a single sorted JSON object from
// the same records.
package text2img
