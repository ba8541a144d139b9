package offset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
)

func TestTranslate_Identity(t *testing.T) {
	tr := New([]int{1, 1, 1, 1, 1, 1, 1}, 0)

	start, end, err := tr.Translate(0, 3)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	start, end, err = tr.Translate(4, 7)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 7}, [2]int{start, end})
}

func TestTranslate_Origin(t *testing.T) {
	// "bar" starting at byte 12 of the original input.
	tr := New([]int{1, 1, 1}, 12)

	start, end, err := tr.Translate(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, start)
	assert.Equal(t, 15, end)
}

func TestTranslate_EntityExpansion(t *testing.T) {
	// "&amp;b" decodes to "&b".
	tr := New([]int{5, 1}, 0)

	start, end, err := tr.Translate(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)
}

func TestTranslate_MultiByteReference(t *testing.T) {
	// "x caf&eacute; y" decodes to "x café y".
	lengths := []int{1, 1, 1, 1, 1, 8, 0, 1, 1}
	tr := New(lengths, 100)

	start, end, err := tr.Translate(0, 1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{100, 101}, [2]int{start, end})

	start, end, err = tr.Translate(2, 7)
	require.NoError(t, err)
	assert.Equal(t, [2]int{102, 113}, [2]int{start, end})

	start, end, err = tr.Translate(8, 9)
	require.NoError(t, err)
	assert.Equal(t, [2]int{114, 115}, [2]int{start, end})
}

func TestTranslate_AdjacentAndEmptyTokens(t *testing.T) {
	tr := New([]int{1, 1, 1, 1}, 0)

	_, _, err := tr.Translate(0, 2)
	require.NoError(t, err)

	start, end, err := tr.Translate(2, 2)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 2}, [2]int{start, end})

	start, end, err = tr.Translate(2, 4)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 4}, [2]int{start, end})
}

func TestTranslate_OrderingViolations(t *testing.T) {
	tests := []struct {
		name       string
		first      [2]int
		start, end int
	}{
		{"overlapping", [2]int{0, 3}, 2, 4},
		{"backwards", [2]int{2, 3}, 0, 1},
		{"end before start", [2]int{0, 0}, 3, 2},
		{"past end of run", [2]int{0, 1}, 2, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New([]int{1, 1, 1, 1, 1}, 0)
			_, _, err := tr.Translate(tt.first[0], tt.first[1])
			require.NoError(t, err)

			_, _, err = tr.Translate(tt.start, tt.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrOffsetOrder)
		})
	}
}

func TestWrap_ForwardsTranslatedToken(t *testing.T) {
	tr := New([]int{5, 1, 1}, 10)

	var got []domain.Token
	emit := tr.Wrap(func(tok domain.Token) error {
		got = append(got, tok)
		return nil
	})

	require.NoError(t, emit(domain.Token{Flags: domain.TokenColocated, Text: []byte("&b"), Start: 0, End: 2}))
	require.Len(t, got, 1)
	assert.Equal(t, domain.TokenColocated, got[0].Flags)
	assert.Equal(t, "&b", string(got[0].Text))
	assert.Equal(t, 10, got[0].Start)
	assert.Equal(t, 16, got[0].End)
}

func TestWrap_PropagatesErrors(t *testing.T) {
	stop := errors.New("stop")
	tr := New([]int{1, 1}, 0)
	emit := tr.Wrap(func(domain.Token) error { return stop })

	assert.ErrorIs(t, emit(domain.Token{Start: 0, End: 1}), stop)
	assert.ErrorIs(t, emit(domain.Token{Start: 0, End: 1}), domain.ErrOffsetOrder)
}
