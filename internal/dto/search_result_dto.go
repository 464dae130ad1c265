package dto

// SearchResult is one ranked job posting rendered to the user. Score is the
// distance between the query embedding and the posting embedding, so lower
// means more similar.
type SearchResult struct {
	ID                      string  `json:"id"`
	Score                   float64 `json:"score"`
	JobTitle                string  `json:"job_title"`
	JobDescription          string  `json:"job_description"`
	JobType                 string  `json:"job_type"`
	Company                 string  `json:"company"`
	Location                string  `json:"location"`
	Salary                  string  `json:"salary"`
	JobResponsibilities     string  `json:"job_responsibilities"`
	PreferredQualifications string  `json:"preferred_qualifications"`
	ApplicationDeadline     string  `json:"application_deadline"`
}

// FilterCriteria holds the structured fields guessed from a free-text query.
// Empty string means the field was not detected.
type FilterCriteria struct {
	Location string `json:"location"`
	JobTitle string `json:"job_title"`
	JobType  string `json:"job_type"`
	Company  string `json:"company"`
	Salary   string `json:"salary"`
}
