package platform

import (
	"context"
	"fmt"
)

// browserUserAgent is required: CodeChef blocks clients that do not identify
// as a browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// CodeChefStats fetches the public profile page and scrapes it. A non-success
// HTTP status maps to ErrNotFound; missing markup degrades to zero/empty
// fields rather than an error.
func (s *Service) CodeChefStats(ctx context.Context, username string) (*CodeChefStats, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", browserUserAgent).
		Get(s.cfg.CodeChefProfileURL + username)
	if err != nil {
		return nil, fmt.Errorf("%w: codechef profile: %v", ErrUpstream, err)
	}
	if !resp.IsSuccess() {
		return nil, ErrNotFound
	}

	stats, err := ParseCodeChefProfile(resp.Body(), username)
	if err != nil {
		return nil, fmt.Errorf("%w: codechef parse: %v", ErrUpstream, err)
	}
	return stats, nil
}
