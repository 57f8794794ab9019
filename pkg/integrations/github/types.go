package github

import (
	"encoding/json"
	"time"
)

type userResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
}

type repoResponse struct {
	Name     string `json:"name"`
	Fork     bool   `json:"fork"`
	Language string `json:"language"`
	Stars    int    `json:"stargazers_count"`
	Forks    int    `json:"forks_count"`
}

type eventResponse struct {
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

type eventPayload struct {
	Action string `json:"action"`
	Size   int    `json:"size"`
}
