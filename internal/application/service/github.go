package service

import "context"

// RepoLister fetches a user's public repositories from the external listing
// service. Implementations must translate upstream failures per the rules in
// adapters/github; handlers never see transport detail.
type RepoLister interface {
	// ListRepos returns the upstream payload decoded as JSON, ready to be
	// re-emitted verbatim.
	ListRepos(ctx context.Context, username string) (any, error)
}
