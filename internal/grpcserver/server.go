// Package grpcserver exposes the catalog and favorites over gRPC. Messages
// are JSON-encoded Go structs (see CodecName).
package grpcserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moviehub/internal/catalog"
	"moviehub/internal/favorites"
	"moviehub/internal/movies"
	"moviehub/internal/sync"
	"moviehub/pkg/models"
)

type Server struct {
	Catalog   movies.Catalog
	Favorites *favorites.Registry
	Hub       sync.Broadcaster
	MaxPage   int
	log       zerolog.Logger
}

var (
	_ CatalogServer   = (*Server)(nil)
	_ FavoritesServer = (*Server)(nil)
)

func NewServer(cat movies.Catalog, favs *favorites.Registry, hub sync.Broadcaster, maxPage int, log zerolog.Logger) *Server {
	if maxPage < 1 {
		maxPage = movies.DefaultMaxPage
	}
	return &Server{Catalog: cat, Favorites: favs, Hub: hub, MaxPage: maxPage, log: log}
}

// Register attaches both services to gs.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(&CatalogServiceDesc, s)
	gs.RegisterService(&FavoritesServiceDesc, s)
}

// UnaryLogger logs every call with its status code.
func UnaryLogger(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		ev := log.Info()
		if code != codes.OK {
			ev = log.Warn().Err(err)
		}
		ev.Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("latency", time.Since(start)).
			Msg("rpc")
		return resp, err
	}
}

// catalogError maps a catalog failure to a status.
func catalogError(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return status.Error(codes.NotFound, "not found")
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "canceled")
	}
	return status.Error(codes.Unavailable, "catalog unavailable")
}

func (s *Server) favoriteSet(ctx context.Context, userID string) favorites.Set {
	if s.Favorites == nil {
		return favorites.Set{}
	}
	return s.Favorites.For(ctx, strings.TrimSpace(userID)).Snapshot()
}

func cards(list []models.Movie, set favorites.Set) []models.Card {
	out := make([]models.Card, 0, len(list))
	for _, m := range list {
		out = append(out, models.NewCard(m, favorites.IsFavorite(set, m.ID)))
	}
	return out
}

func (s *Server) ListMovies(ctx context.Context, req *ListMoviesRequest) (*ListMoviesResponse, error) {
	p := movies.Pager{Page: int(req.Page), Max: s.MaxPage}.Clamp()

	res, err := s.Catalog.ListMovies(ctx, p.Page)
	if err != nil {
		s.log.Warn().Err(err).Int("page", p.Page).Msg("list movies")
		return nil, catalogError(err)
	}
	return &ListMoviesResponse{
		Page:    int32(p.Page),
		MaxPage: int32(p.Max),
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		Items:   cards(res.Movies, s.favoriteSet(ctx, req.UserID)),
	}, nil
}

func (s *Server) GetMovie(ctx context.Context, req *GetMovieRequest) (*GetMovieResponse, error) {
	id := models.MovieID(strings.TrimSpace(req.ID))
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	m, err := s.Catalog.Movie(ctx, id)
	if err != nil {
		return nil, catalogError(err)
	}
	fav := favorites.IsFavorite(s.favoriteSet(ctx, req.UserID), m.ID)
	return &GetMovieResponse{Movie: models.NewDetailCard(*m, fav)}, nil
}

func (s *Server) SearchMovies(ctx context.Context, req *SearchMoviesRequest) (*SearchMoviesResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return &SearchMoviesResponse{Items: []models.Card{}}, nil
	}

	res, err := s.Catalog.Search(ctx, req.Query)
	if err != nil {
		return nil, catalogError(err)
	}
	return &SearchMoviesResponse{Items: cards(res, s.favoriteSet(ctx, req.UserID))}, nil
}

func (s *Server) ListGenres(ctx context.Context, _ *ListGenresRequest) (*ListGenresResponse, error) {
	gs, err := s.Catalog.Genres(ctx)
	if err != nil {
		return nil, catalogError(err)
	}
	return &ListGenresResponse{Genres: gs}, nil
}

func (s *Server) ListFavorites(ctx context.Context, req *ListFavoritesRequest) (*ListFavoritesResponse, error) {
	set := s.favoriteSet(ctx, req.UserID)
	return &ListFavoritesResponse{IDs: set.Strings(), Count: int32(set.Len())}, nil
}

func (s *Server) IsFavorite(ctx context.Context, req *FavoriteRequest) (*FavoriteResponse, error) {
	id := strings.TrimSpace(req.MovieID)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "movie_id required")
	}
	fav := favorites.IsFavorite(s.favoriteSet(ctx, req.UserID), models.MovieID(id))
	return &FavoriteResponse{MovieID: id, Favorite: fav}, nil
}

func (s *Server) ToggleFavorite(ctx context.Context, req *FavoriteRequest) (*FavoriteResponse, error) {
	id := strings.TrimSpace(req.MovieID)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "movie_id required")
	}
	if s.Favorites == nil {
		return nil, status.Error(codes.Unimplemented, "favorites not configured")
	}

	userID := strings.TrimSpace(req.UserID)
	set, fav := s.Favorites.For(ctx, userID).Toggle(ctx, models.MovieID(id))

	if s.Hub != nil {
		ev := sync.FavoriteEvent{
			Type:    sync.EventFavoriteRemoved,
			UserID:  userID,
			MovieID: id,
			Count:   set.Len(),
			At:      time.Now().UTC(),
		}
		if fav {
			ev.Type = sync.EventFavoriteAdded
		}
		go s.Hub.BroadcastJSON(ev)
	}

	return &FavoriteResponse{MovieID: id, Favorite: fav, IDs: set.Strings(), Count: int32(set.Len())}, nil
}
