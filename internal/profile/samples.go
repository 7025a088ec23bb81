package profile

// SampleCandidate returns the built-in candidate record used when no
// resume is supplied or extraction fails.
func SampleCandidate() Candidate {
	return Candidate{
		Name:            "Sample Candidate",
		YearsExperience: 4,
		Skills:          []string{"Go", "PostgreSQL", "Docker", "REST APIs", "Git"},
		Summary:         "Backend engineer with production experience in Go services and relational data modeling.",
	}
}

// SampleRole returns the built-in role record used when no job
// description is supplied or extraction fails.
func SampleRole() Role {
	return Role{
		Title:           "Backend Engineer",
		Seniority:       SeniorityMid,
		PrimarySkills:   []string{"Go", "PostgreSQL", "Kubernetes"},
		SecondarySkills: []string{"Redis", "gRPC", "Terraform"},
		Description:     "Build and operate backend services for a high-traffic platform.",
	}
}
