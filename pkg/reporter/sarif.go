package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/trivyignore-auditor/pkg/checker"
)

type SARIFReporter struct{}

func (r *SARIFReporter) Report(result *checker.Result) error {
	sarif := map[string]interface{}{
		"$schema": "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		"version": "2.1.0",
		"runs": []map[string]interface{}{
			{
				"tool": map[string]interface{}{
					"driver": map[string]interface{}{
						"name":           "trivyignore-auditor",
						"informationUri": "https://github.com/trivyignore-auditor",
						"rules":          buildRules(result),
					},
				},
				"results": buildResults(result),
			},
		},
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sarif)
}

func buildRules(result *checker.Result) []map[string]interface{} {
	var rules []map[string]interface{}
	for _, f := range result.Resolved {
		rules = append(rules, map[string]interface{}{
			"id":               f.ID,
			"shortDescription": map[string]string{"text": fmt.Sprintf("Ignored CVE resolved in %s", result.Distribution)},
			"helpUri":          trackerURI(f.ID),
		})
	}
	for _, id := range result.Unmatched {
		rules = append(rules, map[string]interface{}{
			"id":               id,
			"shortDescription": map[string]string{"text": "Ignored CVE not confirmed by the security tracker"},
			"helpUri":          trackerURI(id),
		})
	}
	return rules
}

func buildResults(result *checker.Result) []map[string]interface{} {
	var results []map[string]interface{}
	for _, f := range result.Resolved {
		results = append(results, map[string]interface{}{
			"ruleId":  f.ID,
			"level":   "error",
			"message": map[string]string{"text": fmt.Sprintf("%s is resolved for %s in package %s (fixed version %s); remove it from the ignore file", f.ID, result.Distribution, f.Package, orUnknown(f.FixedVersion))},
		})
	}
	for _, id := range result.Unmatched {
		results = append(results, map[string]interface{}{
			"ruleId":  id,
			"level":   "warning",
			"message": map[string]string{"text": fmt.Sprintf("%s was never matched against the tracker for %s; the ignore entry may be stale or misspelled", id, result.Distribution)},
		})
	}
	return results
}

func trackerURI(cve string) string {
	return "https://security-tracker.debian.org/tracker/" + cve
}
