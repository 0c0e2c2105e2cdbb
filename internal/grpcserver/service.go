package grpcserver

import (
	"context"

	"google.golang.org/grpc"
)

const (
	CatalogService   = "moviehub.v1.Catalog"
	FavoritesService = "moviehub.v1.Favorites"
)

type CatalogServer interface {
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesResponse, error)
	GetMovie(context.Context, *GetMovieRequest) (*GetMovieResponse, error)
	SearchMovies(context.Context, *SearchMoviesRequest) (*SearchMoviesResponse, error)
	ListGenres(context.Context, *ListGenresRequest) (*ListGenresResponse, error)
}

type FavoritesServer interface {
	ListFavorites(context.Context, *ListFavoritesRequest) (*ListFavoritesResponse, error)
	IsFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error)
	ToggleFavorite(context.Context, *FavoriteRequest) (*FavoriteResponse, error)
}

// unary builds a MethodDesc for fn, which receives the registered
// implementation as srv.
func unary[S, Req, Resp any](service, method string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			})
		},
	}
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogService,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogService, "ListMovies", CatalogServer.ListMovies),
		unary(CatalogService, "GetMovie", CatalogServer.GetMovie),
		unary(CatalogService, "SearchMovies", CatalogServer.SearchMovies),
		unary(CatalogService, "ListGenres", CatalogServer.ListGenres),
	},
	Metadata: "moviehub/v1/catalog",
}

var FavoritesServiceDesc = grpc.ServiceDesc{
	ServiceName: FavoritesService,
	HandlerType: (*FavoritesServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(FavoritesService, "ListFavorites", FavoritesServer.ListFavorites),
		unary(FavoritesService, "IsFavorite", FavoritesServer.IsFavorite),
		unary(FavoritesService, "ToggleFavorite", FavoritesServer.ToggleFavorite),
	},
	Metadata: "moviehub/v1/favorites",
}
