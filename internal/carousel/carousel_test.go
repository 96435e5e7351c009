package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveWindow(t *testing.T) {
	for _, size := range []int{0, -1} {
		c, err := New([]string{"A"}, size)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestFourItemsWindowOfThree(t *testing.T) {
	c, err := New([]string{"A", "B", "C", "D"}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, c.Window())
	assert.False(t, c.CanRetreat())
	assert.True(t, c.CanAdvance())

	assert.True(t, c.Advance())
	assert.Equal(t, []string{"B", "C", "D"}, c.Window())
	assert.False(t, c.CanAdvance())
	assert.True(t, c.CanRetreat())

	assert.True(t, c.Retreat())
	assert.Equal(t, []string{"A", "B", "C"}, c.Window())
}

func TestAdvanceSaturates(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	const window = 3
	c, err := New(items, window)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Start())
	assert.Len(t, c.Window(), window)

	for i := 0; i < len(items)-window; i++ {
		assert.True(t, c.Advance())
		assert.Len(t, c.Window(), window)
	}
	assert.Equal(t, len(items)-window, c.Start())
	assert.False(t, c.CanAdvance())
	assert.Equal(t, []int{5, 6, 7}, c.Window())

	assert.False(t, c.Advance())
	assert.Equal(t, len(items)-window, c.Start())
}

func TestRetreatAtStartIsNoop(t *testing.T) {
	c, err := New([]string{"A", "B", "C", "D"}, 2)
	require.NoError(t, err)

	assert.False(t, c.Retreat())
	assert.Equal(t, 0, c.Start())
	assert.False(t, c.CanRetreat())

	c.Advance()
	assert.True(t, c.CanRetreat())
	c.Retreat()
	assert.False(t, c.CanRetreat())
}

func TestShortListClipsWindow(t *testing.T) {
	c, err := New([]string{"A", "B"}, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, c.Window())
	assert.False(t, c.CanAdvance())
	assert.False(t, c.CanRetreat())
	assert.False(t, c.Advance())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.WindowSize())
}

func TestEmptyList(t *testing.T) {
	c, err := New[string](nil, 3)
	require.NoError(t, err)

	assert.Empty(t, c.Window())
	assert.False(t, c.Advance())
	assert.False(t, c.Retreat())
}

func TestWindowIsACopy(t *testing.T) {
	items := []string{"A", "B", "C"}
	c, err := New(items, 2)
	require.NoError(t, err)

	items[0] = "changed"
	w := c.Window()
	w[1] = "mutated"

	assert.Equal(t, []string{"A", "B"}, c.Window())
}

func TestView(t *testing.T) {
	c, err := New([]string{"A", "B", "C", "D"}, 3)
	require.NoError(t, err)
	c.Advance()

	assert.Equal(t, View[string]{
		Items:      []string{"B", "C", "D"},
		Start:      1,
		Total:      4,
		WindowSize: 3,
		CanAdvance: false,
		CanRetreat: true,
	}, c.View())
}

func TestSubscribeOnlyOnMove(t *testing.T) {
	c, err := New([]string{"A", "B", "C", "D"}, 3)
	require.NoError(t, err)

	var starts []int
	unsubscribe := c.Subscribe(func(v View[string]) {
		starts = append(starts, v.Start)
	})

	c.Retreat()
	c.Advance()
	c.Advance()
	c.Retreat()
	unsubscribe()
	c.Advance()

	assert.Equal(t, []int{1, 0}, starts)
}

func TestSubscriberMayQueryCarousel(t *testing.T) {
	c, err := New([]string{"A", "B", "C"}, 2)
	require.NoError(t, err)

	var window []string
	c.Subscribe(func(View[string]) {
		window = c.Window()
	})
	c.Advance()

	assert.Equal(t, []string{"B", "C"}, window)
}
