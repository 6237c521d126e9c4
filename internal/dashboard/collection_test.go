package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeByID_ExistingWins(t *testing.T) {
	existing := []item{{1, "old"}, {2, "old"}}
	incoming := []item{{2, "new"}, {3, "new"}, {3, "dup"}}

	got := MergeByID(existing, incoming, itemID)

	assert.Equal(t, []item{{1, "old"}, {2, "old"}, {3, "new"}}, got)
}

func TestCollection_MergeNeverDuplicates(t *testing.T) {
	c := NewCollection(itemID, item{1, "a"})

	assert.Equal(t, 1, c.Merge([]item{{1, "b"}, {2, "c"}}))
	assert.Equal(t, 0, c.Merge([]item{{1, "x"}, {2, "y"}}))
	assert.Equal(t, []item{{1, "a"}, {2, "c"}}, c.Items())
}

func TestCollection_CaptureRestoresPosition(t *testing.T) {
	c := NewCollection(itemID, item{1, "a"}, item{2, "b"}, item{3, "c"})

	restore := c.capture(2)
	c.Remove(2)
	assert.Equal(t, 2, c.Len())

	restore()
	assert.Equal(t, []item{{1, "a"}, {2, "b"}, {3, "c"}}, c.Items())

	restore = c.capture(3)
	c.Update(3, func(i item) item { i.Value = "changed"; return i })
	restore()
	got, _ := c.Get(3)
	assert.Equal(t, "c", got.Value)

	restore = c.capture(9)
	c.Upsert(item{9, "new"})
	restore()
	_, ok := c.Get(9)
	assert.False(t, ok)
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	c := NewCollection(itemID, item{1, "a"})
	items := c.Items()
	items[0].Value = "mutated"

	got, _ := c.Get(1)
	assert.Equal(t, "a", got.Value)
}
