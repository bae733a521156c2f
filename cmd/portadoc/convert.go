package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awrzos/portadoc"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	fullHTML, err := c.readSource(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	meta, err := deps.Metadata.ExtractMetadata(fullHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}
	c.applyOverrides(meta)

	region, err := deps.Regions.ExtractRegion(fullHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	body, err := deps.Transcoder.Transcode(region.HTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	doc := &portadoc.PortableDocument{Metadata: *meta, Body: body}

	outPath := c.Out
	if outPath == "" {
		outPath = filepath.Join(c.Dir, meta.Slug+".md")
	}

	if err := deps.Store.WriteDocument(outPath, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	if deps.History != nil {
		rec := &portadoc.ConversionRecord{
			Slug:        meta.Slug,
			SourceURL:   c.sourceURL(),
			ContentHash: doc.Hash(),
		}
		if err := deps.History.UpsertConversion(deps.Ctx, rec); err != nil {
			fmt.Fprintf(deps.Stderr, "error recording conversion: %s\n", portadoc.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Converted %q to %s (%s)\n", meta.Title, outPath, region.Strategy)
	return nil
}

// readSource loads the article HTML from a URL or a local file.
func (c *ConvertCmd) readSource(deps *Dependencies) (string, error) {
	if isURL(c.Source) {
		return deps.Fetcher.Fetch(deps.Ctx, c.Source)
	}

	data, err := os.ReadFile(c.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", portadoc.Errorf(portadoc.ENOTFOUND, "source %q not found", c.Source)
		}
		return "", err
	}
	return string(data), nil
}

// applyOverrides layers command-line metadata on top of the extracted
// values and falls back to a slug derived from the source name.
func (c *ConvertCmd) applyOverrides(meta *portadoc.ArticleMetadata) {
	if c.Slug != "" {
		meta.Slug = c.Slug
	}
	if c.Category != "" {
		meta.Category = c.Category
	}
	if c.SeriesOrder > 0 {
		meta.SeriesOrder = c.SeriesOrder
	}
	if meta.Slug == "" {
		meta.Slug = portadoc.Slugify(sourceBase(c.Source))
	}
	if isURL(c.Source) && meta.Canonical == "" {
		meta.Canonical = c.Source
	}
}

func (c *ConvertCmd) sourceURL() string {
	if isURL(c.Source) {
		return c.Source
	}
	return ""
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// sourceBase extracts the last meaningful path element of a file path
// or URL, without its extension.
func sourceBase(source string) string {
	s := strings.TrimRight(source, "/")
	base := filepath.Base(s)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
