package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeDistinctIDs(t *testing.T) {
	in := []JobPosting{
		{JobID: "1", JobTitle: "A"},
		{JobID: "1", JobTitle: "B"},
		{JobID: "2", JobTitle: "C"},
		{JobID: "1", JobTitle: "D"},
	}

	out := Dedupe(in)

	require.Len(t, out, len(in))

	seen := make(map[string]struct{})
	for _, job := range out {
		_, dup := seen[job.JobID]
		assert.False(t, dup, "duplicate id %q", job.JobID)
		seen[job.JobID] = struct{}{}
	}

	// First occurrence keeps its id, collisions get an index suffix.
	assert.Equal(t, "1", out[0].JobID)
	assert.Equal(t, "1_1", out[1].JobID)
	assert.Equal(t, "2", out[2].JobID)
	assert.Equal(t, "1_3", out[3].JobID)
}

func TestDedupeDoesNotMutateInput(t *testing.T) {
	in := []JobPosting{
		{JobID: "1"},
		{JobID: "1"},
	}

	_ = Dedupe(in)

	assert.Equal(t, "1", in[0].JobID)
	assert.Equal(t, "1", in[1].JobID)
}

func TestPostingsPairwiseDistinct(t *testing.T) {
	postings := Postings()
	require.NotEmpty(t, postings)

	seen := make(map[string]struct{})
	for _, job := range postings {
		_, dup := seen[job.JobID]
		assert.False(t, dup, "duplicate id %q", job.JobID)
		seen[job.JobID] = struct{}{}
	}
}

func TestFind(t *testing.T) {
	postings := Postings()
	require.NotEmpty(t, postings)

	job, ok := Find(postings[0].JobID)
	require.True(t, ok)
	assert.Equal(t, postings[0].JobTitle, job.JobTitle)

	_, ok = Find("no-such-id")
	assert.False(t, ok)
}

func TestDocument(t *testing.T) {
	job := JobPosting{JobTitle: "Remote Software Engineer", JobDescription: "Build things", JobType: "Full-time"}
	assert.Equal(t, "Remote Software Engineer. Build things. Full-time", job.Document())
}
