package profile

import (
	"context"
	"fmt"

	"github.com/devconnect/devconnect-api/internal/application/service"
)

type GithubReposUseCase struct {
	repoLister service.RepoLister
}

func NewGithubReposUseCase(lister service.RepoLister) *GithubReposUseCase {
	return &GithubReposUseCase{repoLister: lister}
}

type GithubReposInput struct {
	Username string
}

type GithubReposOutput struct {
	Repos any
}

func (uc *GithubReposUseCase) Execute(ctx context.Context, input GithubReposInput) (*GithubReposOutput, error) {
	repos, err := uc.repoLister.ListRepos(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("list github repos failed: %w", err)
	}
	return &GithubReposOutput{Repos: repos}, nil
}
