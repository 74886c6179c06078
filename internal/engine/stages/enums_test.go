package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    ProductCategory
		wantErr bool
	}{
		{"online-course", CategoryOnlineCourse, false},
		{"APP", CategoryApp, false},
		{"線上課程", CategoryOnlineCourse, false},
		{" app ", CategoryApp, false},
		{"ebook", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProductCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFunnelStages(t *testing.T) {
	assert.Equal(t, "階段0：陌生、未知", FunnelUnaware.String())
	assert.Equal(t, "階段6：分享、推薦", FunnelAdvocate.String())
	for i := range FunnelStageCount {
		st := FunnelStage(i)
		assert.True(t, st.Valid())
		parsed, err := ParseFunnelStage(st.Name())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	got, err := ParseFunnelStage("3")
	require.NoError(t, err)
	assert.Equal(t, FunnelTrial, got)

	_, err = ParseFunnelStage("7")
	assert.Error(t, err)
	_, err = ParseFunnelStage("loyal")
	assert.Error(t, err)
	assert.False(t, FunnelStage(-1).Valid())
}

func TestParseAudienceSegment(t *testing.T) {
	got, err := ParseAudienceSegment("")
	require.NoError(t, err)
	assert.Equal(t, SegmentCommunityFree, got)

	got, err = ParseAudienceSegment("App付費用戶")
	require.NoError(t, err)
	assert.Equal(t, SegmentAppPaid, got)

	_, err = ParseAudienceSegment("vip")
	assert.Error(t, err)
}
