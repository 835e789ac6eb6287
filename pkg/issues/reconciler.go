package issues

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/trivyignore-auditor/pkg/checker"
)

const LabelStaleIgnore = "stale-ignore"

// Entry is a single stale ignore-file line worth tracking as an issue:
// either confirmed resolved upstream or never matched by the tracker.
type Entry struct {
	ID           string
	Package      string
	Distribution string
	FixedVersion string
	Resolved     bool
}

type Reconciler struct {
	client      *github.Client
	owner       string
	repo        string
	extraLabels []string
	ctx         context.Context
}

func NewReconciler(client *github.Client, owner, repo string, extraLabels []string) *Reconciler {
	return &Reconciler{
		client:      client,
		owner:       owner,
		repo:        repo,
		extraLabels: extraLabels,
		ctx:         context.Background(),
	}
}

// Entries flattens a check result into the set of issues worth tracking.
func Entries(result *checker.Result) []Entry {
	var entries []Entry
	for _, f := range result.Resolved {
		entries = append(entries, Entry{
			ID:           f.ID,
			Package:      f.Package,
			Distribution: result.Distribution,
			FixedVersion: f.FixedVersion,
			Resolved:     true,
		})
	}
	for _, id := range result.Unmatched {
		entries = append(entries, Entry{
			ID:           id,
			Distribution: result.Distribution,
		})
	}
	return entries
}

// Reconcile compares the stale entries of the current run against existing
// tracked issues and creates or closes issues as needed. An entry that is no
// longer stale means its ignore line was pruned, so the issue closes.
func (r *Reconciler) Reconcile(entries []Entry) error {
	existing, err := r.listTrackedIssues()
	if err != nil {
		return fmt.Errorf("list tracked issues: %w", err)
	}

	entryKeys := make(map[string]bool)

	for _, e := range entries {
		key := issueKey(e.ID)
		entryKeys[key] = true

		if _, ok := existing[key]; ok {
			// Already tracked and still stale → no-op
			continue
		}
		if err := r.createIssue(e); err != nil {
			return fmt.Errorf("create issue for %s: %w", e.ID, err)
		}
	}

	for key, issue := range existing {
		if !entryKeys[key] {
			if err := r.closePrunedIssue(issue); err != nil {
				return fmt.Errorf("close pruned issue %d: %w", issue.GetNumber(), err)
			}
		}
	}

	return nil
}

func (r *Reconciler) listTrackedIssues() (map[string]*github.Issue, error) {
	issues := make(map[string]*github.Issue)
	opts := &github.IssueListByRepoOptions{
		Labels:      []string{LabelStaleIgnore},
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		page, resp, err := r.client.Issues.ListByRepo(r.ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, err
		}
		for _, issue := range page {
			key := extractIssueKey(issue)
			if key != "" {
				issues[key] = issue
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func (r *Reconciler) createIssue(e Entry) error {
	key := issueKey(e.ID)
	var title string
	if e.Resolved {
		title = fmt.Sprintf("[STALE IGNORE] %s resolved for %s", e.ID, e.Distribution)
	} else {
		title = fmt.Sprintf("[STALE IGNORE] %s not found for %s", e.ID, e.Distribution)
	}
	body := RenderIssueBody(e)

	labels := append([]string{LabelStaleIgnore, key}, r.extraLabels...)

	_, _, err := r.client.Issues.Create(r.ctx, r.owner, r.repo, &github.IssueRequest{
		Title:  &title,
		Body:   &body,
		Labels: &labels,
	})
	return err
}

func (r *Reconciler) closePrunedIssue(issue *github.Issue) error {
	comment := "This issue is being closed because the ignore entry is no longer flagged by the audit."
	_, _, err := r.client.Issues.CreateComment(r.ctx, r.owner, r.repo, issue.GetNumber(), &github.IssueComment{
		Body: &comment,
	})
	if err != nil {
		return err
	}

	closed := "closed"
	_, _, err = r.client.Issues.Edit(r.ctx, r.owner, r.repo, issue.GetNumber(), &github.IssueRequest{
		State: &closed,
	})
	return err
}

// issueKey generates a deterministic label used to match issues to entries.
func issueKey(cve string) string {
	return fmt.Sprintf("stale-ignore:%s", cve)
}

// extractIssueKey finds the deterministic tracking label from an issue's labels.
func extractIssueKey(issue *github.Issue) string {
	for _, label := range issue.Labels {
		name := label.GetName()
		if strings.HasPrefix(name, "stale-ignore:") {
			return name
		}
	}
	return ""
}

// ParseRepo splits an "owner/repo" flag value.
func ParseRepo(value string) (owner, repo string, err error) {
	parts := strings.SplitN(strings.TrimSuffix(value, "/"), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", value)
	}
	return parts[0], parts[1], nil
}
