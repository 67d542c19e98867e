package platform

import (
	"context"
	"encoding/json"
	"fmt"
)

const leetcodeQuery = `
query getUserProfile($username: String!) {
  matchedUser(username: $username) {
    username
    submitStats: submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
  userContestRanking(username: $username) {
    attendedContestsCount
    rating
    globalRanking
  }
}`

type leetcodeResponse struct {
	Data struct {
		MatchedUser *struct {
			Username    string `json:"username"`
			SubmitStats struct {
				ACSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			AttendedContestsCount int     `json:"attendedContestsCount"`
			Rating                float64 `json:"rating"`
			GlobalRanking         int     `json:"globalRanking"`
		} `json:"userContestRanking"`
	} `json:"data"`
}

// LeetCodeStats fetches submission counts and contest ranking for the handle
// via a single GraphQL query. A null matchedUser maps to ErrNotFound; a user
// with no ranked contest history gets zero contest fields.
func (s *Service) LeetCodeStats(ctx context.Context, username string) (*LeetCodeStats, error) {
	body := map[string]interface{}{
		"query":     leetcodeQuery,
		"variables": map[string]string{"username": username},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.cfg.LeetCodeGraphQLURL)
	if err != nil {
		return nil, fmt.Errorf("%w: leetcode graphql: %v", ErrUpstream, err)
	}

	var lr leetcodeResponse
	if err := json.Unmarshal(resp.Body(), &lr); err != nil {
		return nil, fmt.Errorf("%w: leetcode decode: %v", ErrUpstream, err)
	}
	if lr.Data.MatchedUser == nil {
		return nil, ErrNotFound
	}

	stats := &LeetCodeStats{
		Platform: LeetCode,
		Username: lr.Data.MatchedUser.Username,
	}
	for _, bucket := range lr.Data.MatchedUser.SubmitStats.ACSubmissionNum {
		switch bucket.Difficulty {
		case "All":
			// synthetic total bucket, excluded from the sum
		case "Easy":
			stats.EasySolved = bucket.Count
			stats.ProblemsSolved += bucket.Count
		case "Medium":
			stats.MediumSolved = bucket.Count
			stats.ProblemsSolved += bucket.Count
		case "Hard":
			stats.HardSolved = bucket.Count
			stats.ProblemsSolved += bucket.Count
		default:
			stats.ProblemsSolved += bucket.Count
		}
	}
	if ranking := lr.Data.UserContestRanking; ranking != nil {
		stats.ContestRating = ranking.Rating
		stats.ContestRanking = ranking.GlobalRanking
		stats.ContestsAttended = ranking.AttendedContestsCount
	}
	return stats, nil
}
