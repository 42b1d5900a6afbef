package http

import (
	"net/http"

	"github.com/DRSN-tech/semantic-search/internal/usecase"
	"github.com/DRSN-tech/semantic-search/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

// search
//
//	@Summary		Семантический поиск по каталогу
//	@Description	Ищет товары по текстовому запросу или по картинке с учётом фильтров
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SearchRequest	true	"Параметры поиска"
//	@Success		200		{object}	SearchResponse	"Ранжированная выдача"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		500		{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/search [post]
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	const maxRequestSize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	httpReq, err := decodeSearchRequest(r.Body)
	if err != nil {
		h.logger.Warnf("%d bad search request: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	req, err := toUsecaseReq(httpReq)
	if err != nil {
		h.logger.Warnf("%d bad search filters: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.Search(r.Context(), req)
	if err != nil {
		h.logger.Warnf("Search failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}
