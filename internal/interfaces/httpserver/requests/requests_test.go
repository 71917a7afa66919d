package requests

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apkraft/internal/domain/query"
	"apkraft/internal/utils/platformerrors"
)

func intPtr(v int) *int { return &v }

func TestPageQuery_Pagination(t *testing.T) {
	tests := []struct {
		name    string
		query   PageQuery
		want    query.Pagination
		wantErr bool
	}{
		{name: "defaults", query: PageQuery{}, want: query.Pagination{Page: 1, PageSize: 20}},
		{name: "explicit", query: PageQuery{Page: intPtr(4), PageSize: intPtr(10)}, want: query.Pagination{Page: 4, PageSize: 10}},
		{name: "capped", query: PageQuery{PageSize: intPtr(1000)}, want: query.Pagination{Page: 1, PageSize: 100}},
		{name: "zero page size", query: PageQuery{PageSize: intPtr(0)}, wantErr: true},
		{name: "negative page", query: PageQuery{Page: intPtr(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Pagination(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNullable(t *testing.T) {
	var req PatchAppRequest
	require.NoError(t, jsonUnmarshal(`{"icon_file_id":null,"description":"hi"}`, &req))

	icon, ok := req.ToDomain().IconFileID.Get()
	assert.True(t, ok)
	assert.Nil(t, icon)

	desc, ok := req.ToDomain().Description.Get()
	require.True(t, ok)
	assert.Equal(t, "hi", *desc)

	assert.False(t, req.ToDomain().CurrentVersionID.IsSet())
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
