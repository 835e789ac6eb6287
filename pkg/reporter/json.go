package reporter

import (
	"encoding/json"
	"os"

	"github.com/trivyignore-auditor/pkg/checker"
)

type JSONReporter struct{}

func (r *JSONReporter) Report(result *checker.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	type output struct {
		Failed bool `json:"failed"`
		*checker.Result
	}

	return enc.Encode(output{
		Failed: result.Failed(),
		Result: result,
	})
}
