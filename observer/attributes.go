package observer

import "go.opentelemetry.io/otel/attribute"

// Attribute keys for pipeline spans and metrics.
var (
	AttrStage       = attribute.Key("pipeline.stage")
	AttrStageStatus = attribute.Key("pipeline.stage.status")

	AttrRangeStart = attribute.Key("pipeline.range.start")
	AttrRangeEnd   = attribute.Key("pipeline.range.end")
	AttrPagesTotal = attribute.Key("pipeline.pages.total")
	AttrPagesText  = attribute.Key("pipeline.pages.extracted")
	AttrPagesEmpty = attribute.Key("pipeline.pages.skipped")

	AttrInputWords  = attribute.Key("pipeline.input.words")
	AttrRequested   = attribute.Key("pipeline.requested")
	AttrOutputCount = attribute.Key("pipeline.output.count")
	AttrOutputWords = attribute.Key("pipeline.output.words")
)
