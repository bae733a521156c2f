package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	doc, err := deps.Store.ReadDocument(c.Doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	imageRoot := c.ImageRoot
	if imageRoot == "" {
		imageRoot = filepath.Dir(c.Doc)
	}
	images := fs.NewDirImageSource(imageRoot)

	html, err := deps.Exporter.Export(doc, images)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", portadoc.ErrorMessage(err))
		return err
	}

	if c.Out == "" {
		fmt.Fprintln(deps.Stdout, html)
		return nil
	}

	if err := os.WriteFile(c.Out, []byte(html+"\n"), 0644); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", c.Doc, c.Out)
	return nil
}
