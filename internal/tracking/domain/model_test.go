package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSubscriptions(t *testing.T) {
	projects := []Project{
		{Code: "QABCD", Title: "Alpha"},
		{Code: "QEFGH", Title: "Beta", Subscribed: true},
		{Code: "QIJKL", Title: "Gamma"},
	}
	subs := []Subscription{{ProjectCode: "QABCD"}, {ProjectCode: "QZZZZ"}}

	merged := MergeSubscriptions(projects, subs)

	require.Len(t, merged, 3)
	assert.True(t, merged[0].Subscribed)
	assert.False(t, merged[1].Subscribed, "flag must come from subscriptions only")
	assert.False(t, merged[2].Subscribed)

	t.Run("does not mutate input", func(t *testing.T) {
		assert.False(t, projects[0].Subscribed)
		assert.True(t, projects[1].Subscribed)
	})

	t.Run("keeps first of duplicate codes", func(t *testing.T) {
		dup := []Project{{Code: "QA", Title: "first"}, {Code: "QA", Title: "second"}}
		out := MergeSubscriptions(dup, nil)
		require.Len(t, out, 1)
		assert.Equal(t, "first", out[0].Title)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeSubscriptions(nil, subs))
	})
}

func TestParseSampleStatus(t *testing.T) {
	st, err := ParseSampleStatus(" sample_qc_pass ")
	require.NoError(t, err)
	assert.Equal(t, StatusSampleQCPass, st)

	_, err = ParseSampleStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	assert.True(t, StatusDataAvailable.Valid())
	assert.False(t, SampleStatus("").Valid())
}

func TestAllSampleStatusesOrder(t *testing.T) {
	assert.Equal(t, []SampleStatus{
		StatusMetadataRegistered,
		StatusSampleReceived,
		StatusSampleQCFail,
		StatusSampleQCPass,
		StatusLibraryPrepFinished,
		StatusDataAvailable,
	}, AllSampleStatuses())

	all := AllSampleStatuses()
	all[0] = "CHANGED"
	assert.Equal(t, StatusMetadataRegistered, AllSampleStatuses()[0])
}
