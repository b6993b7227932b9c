package gisttest

import (
	"context"

	"github.com/iudanet/novelsync/pkg/api"
)

type requestKey struct{}

func withRequest(ctx context.Context, req *api.GistRequest) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

func requestFrom(ctx context.Context) *api.GistRequest {
	req, _ := ctx.Value(requestKey{}).(*api.GistRequest)
	if req == nil {
		return &api.GistRequest{}
	}
	return req
}
