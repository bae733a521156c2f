package verify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/awrzos/portadoc"
)

// Ensure Verifier implements portadoc.Verifier at compile time.
var _ portadoc.Verifier = (*Verifier)(nil)

// Comparison thresholds. Word-count loss beyond wordIssueRatio is
// fidelity-breaking; beyond wordWarnRatio it is worth review.
const (
	wordIssueRatio     = 0.15
	wordWarnRatio      = 0.05
	maxMissingLinks    = 5
	codeCountSlack     = 2
	listCountRatio     = 0.20
	sentenceSampleStep = 5
	sentenceFailRatio  = 0.10
	headingPrefixLen   = 20
)

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]`)

	// navigationalURLTokens identify platform-internal URLs that are
	// excluded from link comparison entirely: feeds, comments, admin,
	// pagination, taxonomy listings.
	navigationalURLTokens = []string{
		"/feed", "/comments", "/wp-admin", "/wp-login", "/wp-json",
		"/page/", "/category/", "/tag/", "/author/", "/archives",
		"#comments", "#respond", "javascript:", "mailto:",
	}
)

// Verifier compares an original page against its produced portable
// document. All checks run independently and accumulate into a single
// report; nothing here raises an error upward.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify runs every check and returns the accumulated report.
func (v *Verifier) Verify(originalHTML string, produced *portadoc.PortableDocument, opts portadoc.VerifyOptions) *portadoc.VerificationReport {
	r := &reportBuilder{report: &portadoc.VerificationReport{}}

	narrowed := narrowHTML(originalHTML)
	origText := htmlText(narrowed)
	prodText := mdText(produced.Body)

	r.report.Stats = portadoc.VerifyStats{
		OriginalBytes:  len(originalHTML),
		ProducedBytes:  len(produced.Body),
		OriginalWords:  len(strings.Fields(origText)),
		ProducedWords:  len(strings.Fields(prodText)),
		OriginalLinks:  len(htmlLinks(narrowed)),
		ProducedLinks:  len(mdLinks(produced.Body)),
		OriginalImages: len(htmlImages(narrowed)),
		ProducedImages: len(mdImages(produced.Body)),
	}

	checkWords(r, origText, prodText)
	checkHeadings(r, htmlHeadings(narrowed), mdHeadings(produced.Body))
	checkLinks(r, htmlLinks(narrowed), mdLinks(produced.Body))
	checkImages(r, htmlImages(narrowed), mdImages(produced.Body))
	checkCode(r, htmlCodeSnippets(narrowed), mdCodeSnippets(produced.Body))
	checkLists(r, htmlListItems(narrowed), mdListItems(produced.Body))
	checkSentences(r, origText, prodText)
	checkFrontMatter(r, &produced.Metadata)
	checkStructure(r, produced.Body)

	return r.report
}

// reportBuilder accumulates classified results into the report.
type reportBuilder struct {
	report *portadoc.VerificationReport
}

func (r *reportBuilder) ok(name, detail string) {
	r.report.Checks = append(r.report.Checks, portadoc.CheckResult{Name: name, Status: portadoc.CheckOK, Detail: detail})
}

func (r *reportBuilder) warn(name, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	r.report.Warnings = append(r.report.Warnings, detail)
	r.report.Checks = append(r.report.Checks, portadoc.CheckResult{Name: name, Status: portadoc.CheckWarning, Detail: detail})
}

func (r *reportBuilder) issue(name, format string, args ...any) {
	detail := fmt.Sprintf(format, args...)
	r.report.Issues = append(r.report.Issues, detail)
	r.report.Checks = append(r.report.Checks, portadoc.CheckResult{Name: name, Status: portadoc.CheckIssue, Detail: detail})
}

func checkWords(r *reportBuilder, origText, prodText string) {
	ow := len(strings.Fields(origText))
	pw := len(strings.Fields(prodText))
	if ow == 0 {
		r.ok("words", "original has no text")
		return
	}
	delta := float64(ow-pw) / float64(ow)
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta > wordIssueRatio:
		r.issue("words", "word count differs by %.0f%% (original %d, produced %d)", delta*100, ow, pw)
	case delta > wordWarnRatio:
		r.warn("words", "word count differs by %.0f%% (original %d, produced %d)", delta*100, ow, pw)
	default:
		r.ok("words", fmt.Sprintf("original %d, produced %d", ow, pw))
	}
}

// checkHeadings compares headings at level two and below. Count
// mismatch is cosmetic; an original heading with no fuzzy match on the
// produced side is fidelity-breaking.
func checkHeadings(r *reportBuilder, orig, prod []heading) {
	origSub := headingsAtLevel(orig, 2)
	prodSub := headingsAtLevel(prod, 2)

	missing := 0
	for _, oh := range origSub {
		if !hasFuzzyHeading(prodSub, oh.text) {
			missing++
			r.issue("headings", "heading %q has no match in produced document", oh.text)
		}
	}
	if len(origSub) != len(prodSub) {
		r.warn("headings", "heading count differs (original %d, produced %d)", len(origSub), len(prodSub))
	}
	if missing == 0 && len(origSub) == len(prodSub) {
		r.ok("headings", fmt.Sprintf("%d headings matched", len(origSub)))
	}
}

func headingsAtLevel(hs []heading, min int) []heading {
	var out []heading
	for _, h := range hs {
		if h.level >= min {
			out = append(out, h)
		}
	}
	return out
}

// hasFuzzyHeading reports whether any candidate matches the text under
// normalized prefix overlap, in either direction.
func hasFuzzyHeading(candidates []heading, text string) bool {
	na := normalizeHeading(text)
	if na == "" {
		return true
	}
	for _, c := range candidates {
		nb := normalizeHeading(c.text)
		if nb == "" {
			continue
		}
		if strings.HasPrefix(nb, truncate(na, headingPrefixLen)) ||
			strings.HasPrefix(na, truncate(nb, headingPrefixLen)) {
			return true
		}
	}
	return false
}

func normalizeHeading(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func checkLinks(r *reportBuilder, orig, prod map[string]string) {
	prodSet := make(map[string]bool, len(prod))
	for u := range prod {
		prodSet[normalizeURL(u)] = true
	}

	var missing []string
	for u := range orig {
		if isNavigationalURL(u) {
			continue
		}
		if !prodSet[normalizeURL(u)] {
			missing = append(missing, u)
		}
	}
	sort.Strings(missing)

	switch {
	case len(missing) == 0:
		r.ok("urls", "all content links present")
	case len(missing) > maxMissingLinks:
		r.issue("urls", "%d links missing from produced document (first %d: %s)",
			len(missing), maxMissingLinks, strings.Join(missing[:maxMissingLinks], ", "))
	default:
		r.warn("urls", "%d links missing from produced document: %s",
			len(missing), strings.Join(missing, ", "))
	}
}

// normalizeURL strips the trailing slash and case-folds before set
// comparison.
func normalizeURL(u string) string {
	return strings.TrimSuffix(strings.ToLower(u), "/")
}

func isNavigationalURL(u string) bool {
	lower := strings.ToLower(u)
	for _, token := range navigationalURLTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// checkImages warns rather than fails: image loss is common and
// usually caption-related, not content-breaking.
func checkImages(r *reportBuilder, orig, prod []string) {
	if len(orig) > 0 && len(prod) == 0 {
		r.warn("images", "original has %d images, produced has none", len(orig))
		return
	}
	r.ok("images", fmt.Sprintf("original %d, produced %d", len(orig), len(prod)))
}

func checkCode(r *reportBuilder, orig, prod []string) {
	switch {
	case len(orig) > 0 && len(prod) == 0:
		r.issue("code", "original has %d code blocks, produced has none", len(orig))
	case abs(len(orig)-len(prod)) > codeCountSlack:
		r.warn("code", "code block count differs (original %d, produced %d)", len(orig), len(prod))
	default:
		r.ok("code", fmt.Sprintf("original %d, produced %d", len(orig), len(prod)))
	}
}

func checkLists(r *reportBuilder, orig, prod []string) {
	if len(orig) == 0 {
		r.ok("lists", "original has no list items")
		return
	}
	delta := float64(abs(len(orig)-len(prod))) / float64(len(orig))
	if delta > listCountRatio {
		r.warn("lists", "list item count differs by %.0f%% (original %d, produced %d)", delta*100, len(orig), len(prod))
		return
	}
	r.ok("lists", fmt.Sprintf("original %d, produced %d", len(orig), len(prod)))
}

// checkSentences samples every fifth mid-length sentence of the
// original and requires most of its longer words to literally appear
// in the produced text. A cheap proxy for dropped or mangled sentences
// that needs no alignment.
func checkSentences(r *reportBuilder, origText, prodText string) {
	var candidates []string
	for _, s := range sentenceRe.FindAllString(origText, -1) {
		s = strings.TrimSpace(s)
		if len(s) >= 30 && len(s) <= 200 {
			candidates = append(candidates, s)
		}
	}

	lowerProd := strings.ToLower(prodText)
	sampled, failed := 0, 0
	for i := 0; i < len(candidates); i += sentenceSampleStep {
		words := longWords(candidates[i], 5)
		if len(words) == 0 {
			continue
		}
		sampled++
		found := 0
		for _, w := range words {
			if strings.Contains(lowerProd, strings.ToLower(w)) {
				found++
			}
		}
		if float64(found) < 0.6*float64(len(words)) {
			failed++
		}
	}

	if sampled == 0 {
		r.ok("sentences", "no sentences to sample")
		return
	}
	if float64(failed) > sentenceFailRatio*float64(sampled) {
		r.warn("sentences", "%d of %d sampled sentences appear dropped or mangled", failed, sampled)
		return
	}
	r.ok("sentences", fmt.Sprintf("%d sentences sampled, %d failed", sampled, failed))
}

// longWords returns up to max words of at least six characters.
func longWords(sentence string, max int) []string {
	var out []string
	for _, w := range strings.Fields(sentence) {
		w = strings.Trim(w, `.,;:!?"'()`)
		if len(w) >= 6 {
			out = append(out, w)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

func checkFrontMatter(r *reportBuilder, meta *portadoc.ArticleMetadata) {
	var missing []string
	if strings.TrimSpace(meta.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(meta.Slug) == "" {
		missing = append(missing, "slug")
	}
	if len(missing) > 0 {
		r.issue("front-matter", "required metadata missing: %s", strings.Join(missing, ", "))
		return
	}
	r.ok("front-matter", "required metadata present")
}

// checkStructure validates well-formedness of the produced body:
// balanced fences, terminated links, and no residual raw tags outside
// code.
func checkStructure(r *reportBuilder, body string) {
	clean := true

	fences := len(fenceLineRe.FindAllString(body, -1))
	if fences%2 != 0 {
		r.issue("structure", "unbalanced code fences (%d delimiters)", fences)
		clean = false
	}

	outside, _ := mdFences(body)
	if m := unterminatedLinkRe.FindString(outside); m != "" {
		r.issue("structure", "unterminated link syntax: %q", truncate(m, 40))
		clean = false
	}

	if tags := rawTagRe.FindAllString(outside, -1); len(tags) > 0 {
		r.warn("structure", "%d residual raw markup tags outside code (first: %s)", len(tags), tags[0])
		clean = false
	}

	if clean {
		r.ok("structure", "body is well-formed")
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
