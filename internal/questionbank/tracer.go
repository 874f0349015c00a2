package questionbank

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("ged.questionbank")
