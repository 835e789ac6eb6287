package tracker

// Release is the per-distribution status of a vulnerability as published by
// the security tracker.
type Release struct {
	Status       string            `json:"status"`
	FixedVersion string            `json:"fixed_version"`
	Urgency      string            `json:"urgency"`
	Repositories map[string]string `json:"repositories"`
}

// Record is a single vulnerability entry under a source package.
type Record struct {
	Description string             `json:"description"`
	Scope       string             `json:"scope"`
	Releases    map[string]Release `json:"releases"`
}

// Data is the full tracker dump: source package name → CVE ID → record.
type Data map[string]map[string]Record

// StatusResolved is the tracker's status value for a fixed vulnerability.
const StatusResolved = "resolved"

type Source interface {
	// Fetch retrieves the complete vulnerability dataset in a single call.
	Fetch() (Data, error)
}
