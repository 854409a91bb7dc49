package optimistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterView struct {
	Count int
	Tags  []string
}

func cloneView(v counterView) counterView {
	v.Tags = append([]string(nil), v.Tags...)
	return v
}

func TestApplyKeepsMutationOnSuccess(t *testing.T) {
	view := counterView{Count: 1, Tags: []string{"a"}}

	err := Apply(&view, cloneView,
		func(v *counterView) {
			v.Count++
			v.Tags = append(v.Tags, "b")
		},
		func() error { return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, []string{"a", "b"}, view.Tags)
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	view := counterView{Count: 1, Tags: []string{"a"}}
	boom := errors.New("network down")

	err := Apply(&view, cloneView,
		func(v *counterView) {
			v.Count++
			v.Tags = append(v.Tags, "b")
		},
		func() error { return boom },
	)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, []string{"a"}, view.Tags)
}

func TestApplyCommitSeesMutatedState(t *testing.T) {
	view := counterView{Count: 0}
	var seen int

	err := Apply(&view, cloneView,
		func(v *counterView) { v.Count = 7 },
		func() error {
			seen = view.Count
			return nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 7, seen)
}
