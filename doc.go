// Package pagesum extracts text from a page range of a PDF, summarizes it
// extractively and ranks the noun phrases of the summary.
//
// The pipeline is three stateless stages composed by [Pipeline]:
//
//   - [TextExtractor]: page-range text extraction from a [Document]
//   - [Summarizer]: extractive sentence selection (see package summarize)
//   - [KeywordExtractor]: frequency-ranked noun phrases (see package keyword)
//
// # Quick Start
//
//	sum, err := summarize.New(summarize.WithStemming(true))
//	if err != nil {
//		return err
//	}
//	p := pagesum.New(
//		pdf.Opener{},
//		sum,
//		keyword.New(keyword.NewProseTagger()),
//		pagesum.WithLogger(logger),
//	)
//
//	res, err := p.Run(ctx, content, pagesum.RunOptions{
//		Range:       pagesum.PageRange{Start: 1, End: 3},
//		Sentences:   5,
//		MaxKeywords: 10,
//	})
//
// A start page past the end of the document yields an [*ErrInvalidRange];
// a document that cannot be parsed yields an [*ErrDocument]. Everything else
// (image-only pages, short text, no keywords) degrades to empty output.
package pagesum
