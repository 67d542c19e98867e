// Package platform normalizes the three upstream judges (LeetCode GraphQL,
// Codeforces REST, CodeChef HTML) into per-platform stats records behind a
// single two-outcome contract: stats or a typed failure.
package platform

import (
	"errors"

	"github.com/cphub/cphub/backend/internal/config"
	"github.com/go-resty/resty/v2"
)

const (
	LeetCode   = "leetcode"
	Codeforces = "codeforces"
	CodeChef   = "codechef"
)

var (
	// ErrNotFound means the upstream platform has no such handle.
	ErrNotFound = errors.New("platform user not found")
	// ErrUpstream means the platform was unreachable or returned malformed data.
	ErrUpstream = errors.New("upstream platform error")
)

// LeetCodeStats is the normalized LeetCode record.
type LeetCodeStats struct {
	Platform         string  `json:"platform"`
	Username         string  `json:"username"`
	ProblemsSolved   int     `json:"problemsSolved"`
	EasySolved       int     `json:"easySolved"`
	MediumSolved     int     `json:"mediumSolved"`
	HardSolved       int     `json:"hardSolved"`
	ContestRating    float64 `json:"contestRating"`
	ContestRanking   int     `json:"contestRanking"`
	ContestsAttended int     `json:"contestsAttended"`
}

// CodeforcesStats is the normalized Codeforces record.
type CodeforcesStats struct {
	Platform         string `json:"platform"`
	Username         string `json:"username"`
	Rating           int    `json:"rating"`
	MaxRating        int    `json:"maxRating"`
	ContestsAttended int    `json:"contestsAttended"`
	Rank             string `json:"rank"`
	Country          string `json:"country"`
	FriendOfCount    int    `json:"friendOfCount"`
	Contribution     int    `json:"contribution"`
	LastOnline       int64  `json:"lastOnline"`
	RegistrationTime int64  `json:"registrationTime"`
}

// CodeChefStats is the normalized CodeChef record.
type CodeChefStats struct {
	Platform        string `json:"platform"`
	Username        string `json:"username"`
	Rating          int    `json:"rating"`
	MaxRating       int    `json:"maxRating"`
	Stars           string `json:"stars"`
	GlobalRank      int    `json:"globalRank"`
	CountryRank     int    `json:"countryRank"`
	FullySolved     int    `json:"fullySolved"`
	PartiallySolved int    `json:"partiallySolved"`
}

// Service issues the upstream calls for all three adapters.
type Service struct {
	client *resty.Client
	cfg    config.PlatformsConfig
}

// NewService builds a Service with a shared outbound HTTP client.
func NewService(cfg config.PlatformsConfig) *Service {
	cli := resty.New().SetTimeout(cfg.Timeout)
	return &Service{client: cli, cfg: cfg}
}
