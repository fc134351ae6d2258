package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	searchUC "github.com/panchofdez/portfolio-api/internal/application/usecase/search"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
}

func NewSearchHandler(uc *searchUC.SearchUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: uc}
}

// SearchPortfolios is public: it lists portfolio summaries matching the
// query against name, location or category.
func (h *SearchHandler) SearchPortfolios(c *gin.Context) {
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.searchUseCase.Execute(c.Request.Context(), searchUC.SearchInput{
		Query: query,
		Limit: limit,
		Page:  page,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Results)
}
