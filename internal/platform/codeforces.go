package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type codeforcesUserInfoResponse struct {
	Status string `json:"status"`
	Result []struct {
		Handle                  string `json:"handle"`
		Rank                    string `json:"rank"`
		Country                 string `json:"country"`
		FriendOfCount           int    `json:"friendOfCount"`
		Contribution            int    `json:"contribution"`
		LastOnlineTimeSeconds   int64  `json:"lastOnlineTimeSeconds"`
		RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
	} `json:"result"`
}

type codeforcesRatingResponse struct {
	Status string `json:"status"`
	Result []struct {
		NewRating int `json:"newRating"`
	} `json:"result"`
}

// CodeforcesStats joins the user.info and user.rating endpoints, fetched
// concurrently. A non-OK user.info status or empty result set maps to
// ErrNotFound. Current rating is the last entry of the chronological history;
// both ratings default to 0 for users who never competed.
func (s *Service) CodeforcesStats(ctx context.Context, username string) (*CodeforcesStats, error) {
	var (
		wg        sync.WaitGroup
		info      codeforcesUserInfoResponse
		ratings   codeforcesRatingResponse
		infoErr   error
		ratingErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		infoErr = s.getJSON(ctx, s.cfg.CodeforcesUserInfoURL+username, &info)
	}()
	go func() {
		defer wg.Done()
		ratingErr = s.getJSON(ctx, s.cfg.CodeforcesUserRatingURL+username, &ratings)
	}()
	wg.Wait()

	if infoErr != nil {
		return nil, fmt.Errorf("%w: codeforces user.info: %v", ErrUpstream, infoErr)
	}
	if info.Status != "OK" || len(info.Result) == 0 {
		return nil, ErrNotFound
	}
	if ratingErr != nil {
		return nil, fmt.Errorf("%w: codeforces user.rating: %v", ErrUpstream, ratingErr)
	}

	userInfo := info.Result[0]
	history := ratings.Result

	stats := &CodeforcesStats{
		Platform:         Codeforces,
		Username:         userInfo.Handle,
		ContestsAttended: len(history),
		Rank:             userInfo.Rank,
		Country:          userInfo.Country,
		FriendOfCount:    userInfo.FriendOfCount,
		Contribution:     userInfo.Contribution,
		LastOnline:       userInfo.LastOnlineTimeSeconds,
		RegistrationTime: userInfo.RegistrationTimeSeconds,
	}
	if stats.Rank == "" {
		stats.Rank = "unrated"
	}
	if len(history) > 0 {
		stats.Rating = history[len(history)-1].NewRating
		for _, entry := range history {
			if entry.NewRating > stats.MaxRating {
				stats.MaxRating = entry.NewRating
			}
		}
	}
	return stats, nil
}

// getJSON fetches the URL and decodes the body. Codeforces reports unknown
// handles via status "FAILED" in the body (often with a 400), so the body is
// decoded regardless of the HTTP status code.
func (s *Service) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
