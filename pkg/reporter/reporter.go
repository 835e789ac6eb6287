package reporter

import (
	"github.com/trivyignore-auditor/pkg/checker"
)

type Reporter interface {
	Report(result *checker.Result) error
}

func New(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "sarif":
		return &SARIFReporter{}
	default:
		return &TableReporter{}
	}
}
