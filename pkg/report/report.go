// Package report writes an XML summary of a build.
//
// The report is written whether the build succeeded or not: a failed build
// records its failing command and exit code, and a build rejected before
// execution records the error alone.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/makeover/pkg/errors"
	"github.com/arthur-debert/makeover/pkg/types"
	"github.com/beevik/etree"
)

// Build status values.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusRejected  = "rejected"
)

// Document builds the report for a build. result may be nil when the build
// was rejected before execution, in which case buildErr explains why.
func Document(buildfile string, result *types.BuildResult, buildErr error) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("build")
	root.CreateAttr("buildfile", buildfile)
	root.CreateAttr("status", status(result, buildErr))

	if result != nil {
		root.CreateAttr("entries", strings.Join(result.Entries, " "))
		if !result.Started.IsZero() {
			root.CreateAttr("started", result.Started.Format(time.RFC3339))
		}
		root.CreateAttr("duration", result.Duration().String())

		for _, t := range result.Targets {
			addTarget(root, t)
		}
	}

	if buildErr != nil {
		el := root.CreateElement("error")
		el.CreateAttr("code", string(errors.GetErrorCode(buildErr)))
		el.CreateAttr("exit-code", strconv.Itoa(errors.ExitCode(buildErr)))
		el.SetText(buildErr.Error())
	}

	doc.Indent(2)
	return doc
}

func addTarget(root *etree.Element, t *types.TargetResult) {
	el := root.CreateElement("target")
	el.CreateAttr("name", t.Name)
	el.CreateAttr("state", string(t.State))
	if t.Verdict != "" {
		el.CreateAttr("verdict", string(t.Verdict))
	}
	if t.State != types.StatePending {
		el.CreateAttr("duration", t.Duration.String())
	}

	for _, c := range t.Commands {
		el.CreateElement("command").SetText(c)
	}

	if t.State == types.StateFailed {
		failure := el.CreateElement("failure")
		if t.FailedCommand != "" {
			failure.CreateAttr("command", t.FailedCommand)
		}
		failure.CreateAttr("exit-code", strconv.Itoa(t.ExitCode))
		if t.Error != nil {
			failure.SetText(t.Error.Error())
		}
	}
}

func status(result *types.BuildResult, buildErr error) string {
	switch {
	case result == nil && buildErr != nil:
		return StatusRejected
	case buildErr != nil:
		return StatusFailed
	case result != nil && result.Failed() != nil:
		return StatusFailed
	default:
		return StatusSucceeded
	}
}

// Write saves the report to path.
func Write(path, buildfile string, result *types.BuildResult, buildErr error) error {
	doc := Document(buildfile, result, buildErr)
	if err := doc.WriteToFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrReport, "failed to write report to %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return nil
}
