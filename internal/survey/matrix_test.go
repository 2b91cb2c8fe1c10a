package survey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	t.Run("valid matrix", func(t *testing.T) {
		m, err := NewMatrix([]Question{1, 2}, [][]string{
			{"SS", "S"},
			{"STS", "CS"},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, m.Respondents())
		assert.Equal(t, 2, m.NumQuestions())
		assert.Equal(t, 4, m.TotalCells())
		assert.Equal(t, StronglyDisagree, m.Cell(1, 0))
		assert.Equal(t, []ScaleCode{Agree, SomewhatAgree}, m.Column(1))
		assert.Equal(t, [][]float64{{6, 5}, {1, 4}}, m.Scores())
	})

	t.Run("columns are ordered by question number", func(t *testing.T) {
		m, err := NewMatrix([]Question{10, 2, 9}, [][]string{
			{"SS", "TS", "CS"},
		})
		require.NoError(t, err)

		assert.Equal(t, []Question{2, 9, 10}, m.Questions())
		assert.Equal(t, []ScaleCode{Disagree, SomewhatAgree, StronglyAgree}, m.Rows()[0])
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewMatrix(nil, [][]string{{"SS"}})
		assert.ErrorIs(t, err, ErrEmptyMatrix)

		_, err = NewMatrix([]Question{1}, nil)
		assert.ErrorIs(t, err, ErrEmptyMatrix)
	})

	t.Run("invalid question", func(t *testing.T) {
		_, err := NewMatrix([]Question{0}, [][]string{{"SS"}})
		assert.ErrorIs(t, err, ErrInvalidQuestion)

		_, err = NewMatrix([]Question{18}, [][]string{{"SS"}})
		assert.ErrorIs(t, err, ErrInvalidQuestion)
	})

	t.Run("duplicate question", func(t *testing.T) {
		_, err := NewMatrix([]Question{3, 3}, [][]string{{"SS", "S"}})
		assert.ErrorIs(t, err, ErrInvalidQuestion)
		assert.Contains(t, err.Error(), "duplicate Q3")
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := NewMatrix([]Question{1, 2}, [][]string{{"SS", "S"}, {"SS"}})
		assert.ErrorIs(t, err, ErrRaggedRow)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		_, err := NewMatrix([]Question{1, 2, 3}, [][]string{
			{"SS", "N", "S"},
			{"", "N", "ss"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValue)

		var invalid *InvalidValuesError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, []string{"", "N", "ss"}, invalid.Values)
		assert.Equal(t, `invalid scale value: "", "N", "ss"`, err.Error())
	})
}

func TestMatrix_AccessorsReturnCopies(t *testing.T) {
	m, err := NewMatrix([]Question{1}, [][]string{{"SS"}})
	require.NoError(t, err)

	m.Questions()[0] = 5
	m.Column(0)[0] = Disagree
	m.Rows()[0][0] = Disagree

	assert.Equal(t, []Question{1}, m.Questions())
	assert.Equal(t, StronglyAgree, m.Cell(0, 0))
}
