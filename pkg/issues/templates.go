package issues

import (
	"bytes"
	"fmt"
	"text/template"
)

var resolvedTmpl = template.Must(template.New("resolved").Parse(`## ⚠️ Stale Ignore Entry: {{ .ID }}

**Package:** ` + "`{{ .Package }}`" + `
**Distribution:** ` + "`{{ .Distribution }}`" + `
{{ if .FixedVersion }}**Fixed version:** ` + "`{{ .FixedVersion }}`" + `{{ end }}

### Summary

The security tracker reports this vulnerability as **resolved** for
` + "`{{ .Distribution }}`" + `, so suppressing it no longer serves a purpose.

### Recommended Actions

1. **Remove** ` + "`{{ .ID }}`" + ` from the ignore file.
2. **Rebuild** the image and confirm the scanner no longer reports it.

| Detail | Value |
|--------|-------|
| Tracker | [{{ .ID }}](https://security-tracker.debian.org/tracker/{{ .ID }}) |

---

<sub>Detected by [trivyignore-auditor](https://github.com/trivyignore-auditor)</sub>
`))

var unmatchedTmpl = template.Must(template.New("unmatched").Parse(`## ⚠️ Stale Ignore Entry: {{ .ID }}

**Distribution:** ` + "`{{ .Distribution }}`" + `

### Summary

This identifier was never matched against the security tracker for
` + "`{{ .Distribution }}`" + `: it is absent from the dataset, not listed for
the distribution, or has no published status.

### Recommended Actions

1. **Verify** the identifier is spelled correctly.
2. **Remove** the entry if the vulnerability no longer applies.

| Detail | Value |
|--------|-------|
| Tracker | [{{ .ID }}](https://security-tracker.debian.org/tracker/{{ .ID }}) |

---

<sub>Detected by [trivyignore-auditor](https://github.com/trivyignore-auditor)</sub>
`))

func RenderIssueBody(e Entry) string {
	tmpl := unmatchedTmpl
	if e.Resolved {
		tmpl = resolvedTmpl
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e); err != nil {
		return fmt.Sprintf("Error rendering issue template: %v", err)
	}
	return buf.String()
}
