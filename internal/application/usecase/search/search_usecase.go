package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/panchofdez/portfolio-api/internal/domain/portfolio"
	"github.com/panchofdez/portfolio-api/pkg/apperror"
	"github.com/panchofdez/portfolio-api/pkg/logger"
)

// SearchUseCase backs the public portfolio search over name, location
// and category.
type SearchUseCase struct {
	portfolios portfolio.Repository
	logger     logger.Logger
}

func NewSearchUseCase(portfolios portfolio.Repository, log logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		portfolios: portfolios,
		logger:     log,
	}
}

type SearchInput struct {
	Query string
	Limit int
	Page  int
}

type SearchOutput struct {
	Results []portfolio.Summary
}

func (uc *SearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	if input.Query == "" {
		return &SearchOutput{Results: []portfolio.Summary{}}, nil
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Page <= 0 {
		input.Page = 1
	}

	uc.logger.Info("Executing public portfolio search", zap.String("query", input.Query))
	results, err := uc.portfolios.Search(ctx, input.Query, input.Limit, (input.Page-1)*input.Limit)
	if err != nil {
		uc.logger.Error("Search execution failed", err)
		return nil, apperror.NewInternal("search failed", err)
	}

	return &SearchOutput{Results: results}, nil
}
