package portadoc

// Check status values recorded in a VerificationReport.
const (
	CheckOK      = "ok"
	CheckWarning = "warning"
	CheckIssue   = "issue"
)

// CheckResult records the outcome of a single named verification check.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// VerifyStats holds size and word counts gathered during verification.
type VerifyStats struct {
	OriginalBytes  int `json:"originalBytes"`
	ProducedBytes  int `json:"producedBytes"`
	OriginalWords  int `json:"originalWords"`
	ProducedWords  int `json:"producedWords"`
	OriginalLinks  int `json:"originalLinks"`
	ProducedLinks  int `json:"producedLinks"`
	OriginalImages int `json:"originalImages"`
	ProducedImages int `json:"producedImages"`
}

// VerificationReport accumulates graded discrepancies between an
// original page and its produced portable document. Issues are
// fidelity-breaking; warnings are cosmetic or uncertain. A report is
// created fresh per verification run and never mutated after return.
type VerificationReport struct {
	Issues   []string      `json:"issues"`
	Warnings []string      `json:"warnings"`
	Stats    VerifyStats   `json:"stats"`
	Checks   []CheckResult `json:"checks"`
}

// Passed reports whether verification succeeded. Issues always fail;
// warnings fail only in strict mode.
func (r *VerificationReport) Passed(strict bool) bool {
	if len(r.Issues) > 0 {
		return false
	}
	if strict && len(r.Warnings) > 0 {
		return false
	}
	return true
}

// VerifyOptions configures a verification run.
type VerifyOptions struct {
	// Strict promotes warnings to failures in Passed.
	Strict bool
}

// Verifier independently re-derives structural facts from an original
// page document and a produced portable document and compares them
// under named heuristics. Implementations must not share extraction
// code with the forward or reverse transcoders.
type Verifier interface {
	Verify(originalHTML string, produced *PortableDocument, opts VerifyOptions) *VerificationReport
}
