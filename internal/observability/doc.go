// Package observability provides logging and metrics support for the
// citation service.
//
// # Logging
//
// Create a logger from configuration:
//
//	logger := observability.NewLogger(observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	})
//	logger = observability.WithCitationContext(logger, requestID, "DOI")
//
// # Metrics
//
//	metrics := observability.NewMetrics("citation")
//	metrics.RecordCitationRequested("PMID")
//	metrics.RecordSourceRequest("pubmed", elapsed.Seconds())
//
// # Context Helpers
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// Standard log fields: request_id, identifier_kind, source, component.
//
// All components are safe for concurrent use from multiple goroutines.
package observability
