package generator

import "strings"

// technicalKeywords is the fixed vocabulary used to decide whether a topic
// set warrants coding tasks. Matching is by case-insensitive substring, so
// "Advanced SQL Tuning" hits "sql" and "React Hooks" hits "react".
var technicalKeywords = []string{
	"programming", "coding", "software", "developer", "engineering",
	"algorithm", "data structure", "database", "sql", "nosql",
	"backend", "frontend", "fullstack", "full stack", "devops",
	"java", "python", "golang", "javascript", "typescript", "c++", "c#",
	"ruby", "rust", "kotlin", "swift", "php", "scala",
	"react", "angular", "vue", "node", "django", "flask", "spring",
	"html", "css", "rest", "graphql", "api",
	"docker", "kubernetes", "aws", "azure", "gcp", "cloud", "linux",
	"git", "machine learning", "data science", "system design",
	"microservice", "security", "testing", "android", "ios",
}

// Technical reports whether any topic matches the technical vocabulary.
// Pure and deterministic; unknown topics are treated as non-technical.
func Technical(topics []string) bool {
	for _, topic := range topics {
		t := strings.ToLower(topic)
		for _, kw := range technicalKeywords {
			if strings.Contains(t, kw) {
				return true
			}
		}
	}
	return false
}
