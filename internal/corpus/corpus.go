package corpus

import (
	"fmt"
	"sync"
)

// JobPosting is one entry of the static job dataset.
type JobPosting struct {
	JobID                   string `json:"job_id"`
	JobTitle                string `json:"job_title"`
	JobDescription          string `json:"job_description"`
	JobType                 string `json:"job_type"`
	Company                 string `json:"company"`
	Location                string `json:"location"`
	Salary                  string `json:"salary"`
	JobResponsibilities     string `json:"job_responsibilities"`
	PreferredQualifications string `json:"preferred_qualifications"`
	ApplicationDeadline     string `json:"application_deadline"`
}

// Document returns the text that gets embedded for this posting.
func (j JobPosting) Document() string {
	return fmt.Sprintf("%s. %s. %s", j.JobTitle, j.JobDescription, j.JobType)
}

var (
	loadOnce sync.Once
	postings []JobPosting
	byID     map[string]int
)

func load() {
	loadOnce.Do(func() {
		postings = Dedupe(rawPostings)
		byID = make(map[string]int, len(postings))
		for i, job := range postings {
			byID[job.JobID] = i
		}
	})
}

// Postings returns the deduplicated job dataset. The returned slice is shared
// and must be treated as read-only.
func Postings() []JobPosting {
	load()
	return postings
}

// Find looks up a posting by its deduplicated id.
func Find(id string) (JobPosting, bool) {
	load()
	i, ok := byID[id]
	if !ok {
		return JobPosting{}, false
	}
	return postings[i], true
}

// Dedupe returns a copy of the given postings whose ids are pairwise
// distinct. A colliding id gets an "_<index>" suffix, re-checked until it no
// longer collides.
func Dedupe(in []JobPosting) []JobPosting {
	out := make([]JobPosting, len(in))
	copy(out, in)

	seen := make(map[string]struct{}, len(out))
	for i := range out {
		id := out[i].JobID
		for {
			if _, taken := seen[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s_%d", id, i)
		}
		out[i].JobID = id
		seen[id] = struct{}{}
	}
	return out
}
