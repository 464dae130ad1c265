package corpus

// rawPostings is the job dataset as shipped. Ids are deduplicated at load
// time; see Dedupe.
var rawPostings = []JobPosting{
	{
		JobID:                   "1",
		JobTitle:                "Remote Software Engineer",
		JobDescription:          "Design, build and ship backend services for our distributed platform. You will own features end to end, from API design to production monitoring.",
		JobType:                 "Full-time",
		Company:                 "Nimbus Labs",
		Location:                "Remote",
		Salary:                  "$120,000 - $150,000",
		JobResponsibilities:     "Develop and maintain Go and Python microservices, review code, participate in on-call rotation.",
		PreferredQualifications: "3+ years backend experience, familiarity with Kubernetes and PostgreSQL.",
		ApplicationDeadline:     "2025-12-31",
	},
	{
		JobID:                   "2",
		JobTitle:                "Frontend Developer",
		JobDescription:          "Build accessible, responsive user interfaces for our analytics dashboard using React and TypeScript.",
		JobType:                 "Full-time",
		Company:                 "Brightpath Analytics",
		Location:                "New York, NY",
		Salary:                  "$100,000 - $130,000",
		JobResponsibilities:     "Implement UI components, collaborate with designers, write unit and integration tests.",
		PreferredQualifications: "Experience with React, state management libraries and CSS-in-JS.",
		ApplicationDeadline:     "2025-11-15",
	},
	{
		JobID:                   "3",
		JobTitle:                "Data Scientist",
		JobDescription:          "Analyze large product datasets, build predictive models and communicate findings to stakeholders.",
		JobType:                 "Full-time",
		Company:                 "Harborview Insights",
		Location:                "San Francisco, CA",
		Salary:                  "$130,000 - $165,000",
		JobResponsibilities:     "Build ML pipelines, run experiments, maintain feature stores.",
		PreferredQualifications: "MSc in a quantitative field, experience with Python, SQL and scikit-learn.",
		ApplicationDeadline:     "2025-10-30",
	},
	{
		JobID:                   "4",
		JobTitle:                "DevOps Engineer",
		JobDescription:          "Own our CI/CD pipelines and cloud infrastructure, improving deployment speed and reliability.",
		JobType:                 "Contract",
		Company:                 "Cloudhaven",
		Location:                "Austin, TX",
		Salary:                  "$90 - $110 per hour",
		JobResponsibilities:     "Manage Terraform stacks, harden Kubernetes clusters, automate incident response.",
		PreferredQualifications: "Strong AWS background, scripting in Bash or Go.",
		ApplicationDeadline:     "2025-11-01",
	},
	{
		JobID:                   "5",
		JobTitle:                "Product Manager",
		JobDescription:          "Drive the roadmap for our B2B integrations product, working with engineering and sales.",
		JobType:                 "Full-time",
		Company:                 "Brightpath Analytics",
		Location:                "New York, NY",
		Salary:                  "$125,000 - $155,000",
		JobResponsibilities:     "Gather requirements, prioritize the backlog, define success metrics.",
		PreferredQualifications: "3+ years product management in SaaS.",
		ApplicationDeadline:     "2025-12-01",
	},
	{
		JobID:                   "6",
		JobTitle:                "Machine Learning Engineer",
		JobDescription:          "Productionize NLP models for semantic search and recommendation, from training to serving.",
		JobType:                 "Full-time",
		Company:                 "Nimbus Labs",
		Location:                "Remote",
		Salary:                  "$140,000 - $175,000",
		JobResponsibilities:     "Train and deploy transformer models, build evaluation harnesses, optimize inference latency.",
		PreferredQualifications: "Experience with PyTorch, vector databases and model serving.",
		ApplicationDeadline:     "2026-01-15",
	},
	{
		JobID:                   "7",
		JobTitle:                "QA Engineer",
		JobDescription:          "Design and automate test suites across our web and mobile products.",
		JobType:                 "Part-time",
		Company:                 "Harborview Insights",
		Location:                "Chicago, IL",
		Salary:                  "$55,000 - $70,000",
		JobResponsibilities:     "Write end-to-end tests, triage regressions, maintain the test matrix.",
		PreferredQualifications: "Familiarity with Playwright or Cypress.",
		ApplicationDeadline:     "2025-10-20",
	},
	{
		JobID:                   "8",
		JobTitle:                "Technical Writer",
		JobDescription:          "Create and maintain developer documentation, API references and onboarding guides.",
		JobType:                 "Contract",
		Company:                 "Cloudhaven",
		Location:                "Remote",
		Salary:                  "$45 - $60 per hour",
		JobResponsibilities:     "Write tutorials, keep API docs in sync with releases, edit engineering RFCs.",
		PreferredQualifications: "Portfolio of developer-facing documentation.",
		ApplicationDeadline:     "2025-11-30",
	},
}
