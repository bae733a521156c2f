package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/awrzos/portadoc"
	"golang.org/x/sync/errgroup"
)

// verifyResult is the outcome of verifying one original/document pair.
type verifyResult struct {
	Name   string                       `json:"name"`
	Report *portadoc.VerificationReport `json:"report"`
}

// Run executes the verify command.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	var results []verifyResult
	var err error

	switch {
	case len(c.Batch) == 2:
		results, err = c.runBatch(deps, c.Batch[0], c.Batch[1])
	case len(c.Batch) > 0:
		return portadoc.Errorf(portadoc.EINVALID, "batch mode needs exactly two directories: --batch htmldir --batch docdir")
	case c.Original != "" && c.Doc != "":
		var res verifyResult
		res, err = c.verifyPair(deps, c.Original, c.Doc)
		results = []verifyResult{res}
	default:
		return portadoc.Errorf(portadoc.EINVALID, "give an original HTML file and a document, or use batch mode")
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printReport(deps.Stdout, res)
		}
	}

	return c.exitStatus(results)
}

// verifyPair verifies a single original page against its document.
func (c *VerifyCmd) verifyPair(deps *Dependencies, originalPath, docPath string) (verifyResult, error) {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return verifyResult{}, portadoc.Errorf(portadoc.ENOTFOUND, "original %q not found", originalPath)
		}
		return verifyResult{}, err
	}

	doc, err := deps.Store.ReadDocument(docPath)
	if err != nil {
		return verifyResult{}, err
	}

	report := deps.Verifier.Verify(string(original), doc, portadoc.VerifyOptions{Strict: c.Strict})
	name := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return verifyResult{Name: name, Report: report}, nil
}

// runBatch pairs HTML files with documents by base name and verifies
// each pair independently. One failing pair never stops the others.
func (c *VerifyCmd) runBatch(deps *Dependencies, htmlDir, docDir string) ([]verifyResult, error) {
	pairs, err := pairByBaseName(htmlDir, docDir)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, portadoc.Errorf(portadoc.ENOTFOUND, "no matching pairs between %q and %q", htmlDir, docDir)
	}

	results := make([]verifyResult, len(pairs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			res, err := c.verifyPair(deps, p.original, p.doc)
			if err != nil {
				// Grade an unreadable pair as an issue instead of
				// aborting the batch.
				res = verifyResult{
					Name: p.name,
					Report: &portadoc.VerificationReport{
						Issues: []string{fmt.Sprintf("verification failed: %s", portadoc.ErrorMessage(err))},
					},
				}
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// exitStatus maps accumulated reports to the process exit code: issues
// beat warnings, warnings beat a clean pass.
func (c *VerifyCmd) exitStatus(results []verifyResult) error {
	code := exitPass
	for _, res := range results {
		switch {
		case len(res.Report.Issues) > 0:
			return &exitError{code: exitIssues}
		case len(res.Report.Warnings) > 0:
			code = exitWarningsOnly
		}
	}
	if c.Strict && code == exitWarningsOnly {
		return &exitError{code: exitIssues}
	}
	if code == exitPass {
		return nil
	}
	return &exitError{code: code}
}

type verifyPairPath struct {
	name     string
	original string
	doc      string
}

// pairByBaseName matches *.html files in htmlDir with *.md files in
// docDir sharing the same base name.
func pairByBaseName(htmlDir, docDir string) ([]verifyPairPath, error) {
	htmlFiles, err := filesByBase(htmlDir, ".html")
	if err != nil {
		return nil, err
	}
	docFiles, err := filesByBase(docDir, ".md")
	if err != nil {
		return nil, err
	}

	var pairs []verifyPairPath
	for base, htmlPath := range htmlFiles {
		docPath, ok := docFiles[base]
		if !ok {
			continue
		}
		pairs = append(pairs, verifyPairPath{name: base, original: htmlPath, doc: docPath})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].name < pairs[j].name })
	return pairs, nil
}

func filesByBase(dir, ext string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ext)
		files[base] = filepath.Join(dir, e.Name())
	}
	return files, nil
}

// printReport writes a human-readable report summary.
func printReport(w io.Writer, res verifyResult) {
	r := res.Report
	switch {
	case len(r.Issues) > 0:
		fmt.Fprintf(w, "%s: FAIL (%d issues, %d warnings)\n", res.Name, len(r.Issues), len(r.Warnings))
	case len(r.Warnings) > 0:
		fmt.Fprintf(w, "%s: PASS with warnings (%d)\n", res.Name, len(r.Warnings))
	default:
		fmt.Fprintf(w, "%s: PASS\n", res.Name)
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  issue: %s\n", issue)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	if r.Stats.OriginalWords > 0 {
		fmt.Fprintf(w, "  words: %d -> %d, links: %d -> %d, images: %d -> %d\n",
			r.Stats.OriginalWords, r.Stats.ProducedWords,
			r.Stats.OriginalLinks, r.Stats.ProducedLinks,
			r.Stats.OriginalImages, r.Stats.ProducedImages)
	}
}
