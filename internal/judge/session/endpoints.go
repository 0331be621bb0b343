package session

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public judge site.
const DefaultBaseURL = "https://leetcode.com/"

// Endpoints builds judge URLs relative to a base URL.
type Endpoints struct {
	base string
}

// NewEndpoints normalizes base to end with a slash. An empty base selects
// DefaultBaseURL.
func NewEndpoints(base string) Endpoints {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return Endpoints{base: base}
}

func (e Endpoints) Base() string        { return e.base }
func (e Endpoints) Login() string       { return e.base + "accounts/login/" }
func (e Endpoints) GraphQL() string     { return e.base + "graphql" }
func (e Endpoints) ProblemList() string { return e.base + "api/problems/all" }

func (e Endpoints) ProblemDescription(slug string) string {
	return e.base + "problems/" + url.PathEscape(slug) + "/description"
}

func (e Endpoints) SubmissionReferer(slug string) string {
	return e.base + "problems/" + url.PathEscape(slug) + "/submissions/"
}

func (e Endpoints) Test(slug string) string {
	return e.base + "problems/" + url.PathEscape(slug) + "/interpret_solution/"
}

func (e Endpoints) Submit(slug string) string {
	return e.base + "problems/" + url.PathEscape(slug) + "/submit/"
}

func (e Endpoints) Submission(id string) string {
	return e.base + "submissions/detail/" + url.PathEscape(id) + "/"
}

func (e Endpoints) Check(id string) string {
	return e.base + "submissions/detail/" + url.PathEscape(id) + "/check/"
}
