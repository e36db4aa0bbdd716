// Copyright 2026 The ChromiumOS Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package reporting

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"go.chromium.org/scruffy/errors"
	"go.chromium.org/scruffy/internal/logging"
	"go.chromium.org/scruffy/internal/timing"
	"go.chromium.org/scruffy/results"
)

const (
	// ResultsFilename is the name of the file holding res as JSON.
	ResultsFilename = "results.json"
	// TimingFilename is the name of the file holding the timing log.
	TimingFilename = "timing.json"
)

// WriteResultsJSON saves res to path as indented JSON.
func WriteResultsJSON(path string, res *results.Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

// WriteTiming saves tl to path in its pretty-printed form.
func WriteTiming(path string, tl *timing.Log) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tl.WritePretty(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResultFiles writes results.json, results.xml and, if tl is non-nil,
// timing.json into dir, creating dir if needed.
func WriteResultFiles(ctx context.Context, dir string, res *results.Result, tl *timing.Log) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create results dir")
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := WriteResultsJSON(filepath.Join(dir, ResultsFilename), res); err != nil {
			return errors.Wrapf(err, "failed to write %s", ResultsFilename)
		}
		return nil
	})
	g.Go(func() error {
		if err := WriteJUnitXMLResults(filepath.Join(dir, JUnitXMLFilename), res); err != nil {
			return errors.Wrapf(err, "failed to write %s", JUnitXMLFilename)
		}
		return nil
	})
	if tl != nil {
		g.Go(func() error {
			if err := WriteTiming(filepath.Join(dir, TimingFilename), tl); err != nil {
				return errors.Wrapf(err, "failed to write %s", TimingFilename)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logging.Debugf(ctx, "Wrote result files to %s", dir)
	return nil
}
