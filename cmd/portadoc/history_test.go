package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/awrzos/portadoc"
	main "github.com/awrzos/portadoc/cmd/portadoc"
	"github.com/awrzos/portadoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists conversions with status and source", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			ListConversionsFn: func(_ context.Context) ([]*portadoc.ConversionRecord, error) {
				return []*portadoc.ConversionRecord{
					{
						Slug:         "newer-post",
						SourceURL:    "https://example.com/newer-post/",
						VerifyStatus: "pass",
						UpdatedAt:    time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
					},
					{
						Slug:      "older-post",
						UpdatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			History: history,
		}

		require.NoError(t, (&main.HistoryCmd{}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "newer-post")
		assert.Contains(t, output, "pass")
		assert.Contains(t, output, "https://example.com/newer-post/")
		assert.Contains(t, output, "older-post")
		assert.Contains(t, output, "(local file)")
		assert.Empty(t, stderr.String())
	})

	t.Run("empty history prints a hint", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			ListConversionsFn: func(_ context.Context) ([]*portadoc.ConversionRecord, error) {
				return nil, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			History: history,
		}

		require.NoError(t, (&main.HistoryCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No conversions recorded")
	})
}
