package service

import (
	"context"
	nethttp "net/http"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"voxagent/internal/biz"
)

// OperationSearch names the search operation for the middleware chain.
const OperationSearch = "/voxagent.gateway/Search"

// SearchService exposes the query gateway over HTTP.
type SearchService struct {
	uc  *biz.SearchUseCase
	log *log.Helper
}

func NewSearchService(uc *biz.SearchUseCase, logger log.Logger) *SearchService {
	return &SearchService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// errorBody is the wire shape of every failure.
type errorBody struct {
	Error string `json:"error"`
}

// RegisterRoutes mounts the gateway routes on the server.
func (s *SearchService) RegisterRoutes(srv *khttp.Server) {
	r := srv.Route("/api")
	r.GET("/search", s.Search)
}

// Search handles GET /api/search?query=<text>.
func (s *SearchService) Search(ctx khttp.Context) error {
	khttp.SetOperation(ctx, OperationSearch)
	query := ctx.Query().Get("query")

	h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		return s.uc.Search(c, req.(string))
	})

	out, err := h(ctx, query)
	if err != nil {
		se := kerrors.FromError(err)
		code := int(se.Code)
		if code < 100 || code > 599 {
			code = nethttp.StatusInternalServerError
		}
		return ctx.JSON(code, errorBody{Error: se.Message})
	}

	return ctx.JSON(nethttp.StatusOK, out.(*biz.SearchReply))
}
