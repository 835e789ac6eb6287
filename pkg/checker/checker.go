package checker

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/trivyignore-auditor/pkg/ignorefile"
	"github.com/trivyignore-auditor/pkg/tracker"
)

// Finding is an ignored identifier that was located in the tracker dataset
// for the target distribution.
type Finding struct {
	ID           string `json:"id"`
	Package      string `json:"package"`
	Status       string `json:"status"`
	FixedVersion string `json:"fixed_version,omitempty"`
	Urgency      string `json:"urgency,omitempty"`
}

// Result is the outcome of classifying every ignore entry against the
// dataset. An entry lands in exactly one bucket: Resolved, Open, or
// Unmatched (absent from the dataset, absent for the target distribution,
// or matched with no status).
type Result struct {
	Distribution string    `json:"distribution"`
	Resolved     []Finding `json:"resolved"`
	Open         []Finding `json:"open"`
	Unmatched    []string  `json:"unmatched"`
}

// Failed reports whether the run must exit non-zero: a resolved entry means
// the suppression is stale, an unmatched entry means it was never confirmed.
func (r *Result) Failed() bool {
	return len(r.Resolved) > 0 || len(r.Unmatched) > 0
}

type Checker struct {
	source tracker.Source
	logger logrus.FieldLogger
}

func New(source tracker.Source, logger logrus.FieldLogger) *Checker {
	return &Checker{
		source: source,
		logger: logger,
	}
}

// Check fetches the dataset once and classifies every entry of the ignore
// set against the target distribution. The set is consumed in place: matched
// entries are removed, and whatever remains becomes Result.Unmatched.
func (c *Checker) Check(ignored *ignorefile.Set, distribution string) (*Result, error) {
	data, err := c.source.Fetch()
	if err != nil {
		return nil, fmt.Errorf("query security tracker: %w", err)
	}

	result := &Result{Distribution: distribution}

	// Map iteration order is randomized; walk packages and identifiers
	// sorted so logs and reports are reproducible run-to-run.
	packages := make([]string, 0, len(data))
	for name := range data {
		packages = append(packages, name)
	}
	sort.Strings(packages)

	for _, pkg := range packages {
		records := data[pkg]
		ids := make([]string, 0, len(records))
		for id := range records {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if !ignored.Contains(id) {
				continue
			}

			release, ok := records[id].Releases[distribution]
			if !ok {
				// Not removed from the set: with no release entry the
				// status cannot be confirmed, so the entry surfaces as
				// unmatched at the end.
				c.logger.Infof("%s is not listed for package %s", distribution, pkg)
				continue
			}

			if release.Status == "" {
				c.logger.Warnf("status for %s has not been found", id)
				continue
			}

			finding := Finding{
				ID:           id,
				Package:      pkg,
				Status:       release.Status,
				FixedVersion: release.FixedVersion,
				Urgency:      release.Urgency,
			}

			if release.Status == tracker.StatusResolved {
				c.logger.Warnf("%s has been resolved", id)
				result.Resolved = append(result.Resolved, finding)
			} else {
				c.logger.Debugf("%s has been found but it is not resolved", id)
				result.Open = append(result.Open, finding)
			}
			ignored.Remove(id)
		}
	}

	result.Unmatched = ignored.IDs()
	return result, nil
}
