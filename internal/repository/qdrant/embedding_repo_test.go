package qdrant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DRSN-tech/semantic-search/pkg/e"
)

func TestClassifyStoreErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "invalid argument is a validation failure",
			err:  status.Error(codes.InvalidArgument, "wrong vector size"),
			want: e.ErrStoreValidation,
		},
		{
			name: "failed precondition is a validation failure",
			err:  status.Error(codes.FailedPrecondition, "collection missing"),
			want: e.ErrStoreValidation,
		},
		{
			name: "unavailable is a connection failure",
			err:  status.Error(codes.Unavailable, "connection refused"),
			want: e.ErrStoreConnection,
		},
		{
			name: "plain error is a connection failure",
			err:  errors.New("dial tcp: timeout"),
			want: e.ErrStoreConnection,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyStoreErr(tc.err)
			assert.True(t, errors.Is(got, tc.want))
		})
	}
}
