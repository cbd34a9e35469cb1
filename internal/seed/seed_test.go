package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/faq-catalog/internal/model"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.Len(t, d.Categories, 5)
	assert.Equal(t, "Giới thiệu", d.Categories[0].Name)
	assert.Len(t, d.Tags, 4)
	assert.Equal(t, []string{"FAQ", "Chào tự động", "Tình huống đặc biệt", "Lộ trình môn học"}, d.ContentTypes)
	assert.Contains(t, d.SubCategories, "Chung")

	require.Len(t, d.Entries, 1)
	e := d.Entries[0]
	assert.Equal(t, "1001", e.ID)
	assert.Equal(t, model.StatusApproved, e.Status)
	assert.Equal(t, []string{"t1"}, e.Tags)
	require.NotNil(t, e.ApprovedAt)
	assert.False(t, e.CreatedAt.IsZero())
	assert.NoError(t, e.Validate())
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	a.Entries[0].Title = "changed"

	b, err := Load()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", b.Entries[0].Title)
}
