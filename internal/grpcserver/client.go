package grpcserver

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls both services over one connection.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to target without TLS. Extra options come after the
// defaults, so tests can pass a context dialer.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
	cc, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial grpc: %w", err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error { return c.cc.Close() }

func invoke[Resp any](ctx context.Context, c *Client, service, method string, req any) (*Resp, error) {
	out := new(Resp)
	if err := c.cc.Invoke(ctx, "/"+service+"/"+method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMovies(ctx context.Context, page int, userID string) (*ListMoviesResponse, error) {
	return invoke[ListMoviesResponse](ctx, c, CatalogService, "ListMovies", &ListMoviesRequest{Page: int32(page), UserID: userID})
}

func (c *Client) GetMovie(ctx context.Context, id, userID string) (*GetMovieResponse, error) {
	return invoke[GetMovieResponse](ctx, c, CatalogService, "GetMovie", &GetMovieRequest{ID: id, UserID: userID})
}

func (c *Client) SearchMovies(ctx context.Context, q, userID string) (*SearchMoviesResponse, error) {
	return invoke[SearchMoviesResponse](ctx, c, CatalogService, "SearchMovies", &SearchMoviesRequest{Query: q, UserID: userID})
}

func (c *Client) ListGenres(ctx context.Context) (*ListGenresResponse, error) {
	return invoke[ListGenresResponse](ctx, c, CatalogService, "ListGenres", &ListGenresRequest{})
}

func (c *Client) ListFavorites(ctx context.Context, userID string) (*ListFavoritesResponse, error) {
	return invoke[ListFavoritesResponse](ctx, c, FavoritesService, "ListFavorites", &ListFavoritesRequest{UserID: userID})
}

func (c *Client) IsFavorite(ctx context.Context, userID, movieID string) (*FavoriteResponse, error) {
	return invoke[FavoriteResponse](ctx, c, FavoritesService, "IsFavorite", &FavoriteRequest{UserID: userID, MovieID: movieID})
}

func (c *Client) ToggleFavorite(ctx context.Context, userID, movieID string) (*FavoriteResponse, error) {
	return invoke[FavoriteResponse](ctx, c, FavoritesService, "ToggleFavorite", &FavoriteRequest{UserID: userID, MovieID: movieID})
}
