package slog

import (
	"log/slog"
	"time"

	"github.com/awrzos/portadoc"
)

// Ensure LoggingVerifier implements portadoc.Verifier.
var _ portadoc.Verifier = (*LoggingVerifier)(nil)

// LoggingVerifier wraps a Verifier with logging of the report outcome.
type LoggingVerifier struct {
	next   portadoc.Verifier
	logger *slog.Logger
}

// NewLoggingVerifier creates a new LoggingVerifier.
func NewLoggingVerifier(next portadoc.Verifier, logger *slog.Logger) *LoggingVerifier {
	return &LoggingVerifier{next: next, logger: logger}
}

// Verify delegates to the wrapped verifier and logs the outcome.
func (v *LoggingVerifier) Verify(originalHTML string, produced *portadoc.PortableDocument, opts portadoc.VerifyOptions) *portadoc.VerificationReport {
	begin := time.Now()
	report := v.next.Verify(originalHTML, produced, opts)
	v.logger.Info("verification",
		"slug", produced.Metadata.Slug,
		"issues", len(report.Issues),
		"warnings", len(report.Warnings),
		"passed", report.Passed(opts.Strict),
		"duration", time.Since(begin),
	)
	return report
}
