package models

// JobDescriptor identifies one job in a Jenkins jobs listing.
type JobDescriptor struct {
	Name string `json:"name"`
	// URL is the job's own URL as reported by Jenkins; empty for listings read from XML files.
	URL string `json:"url"`
}

// JobListing is the ordered list of jobs on a Jenkins server.
type JobListing struct {
	Jobs []JobDescriptor `json:"jobs"`
}
