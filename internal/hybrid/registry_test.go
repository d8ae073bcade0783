package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Has("tab1"))
	assert.Equal(t, 0, r.Len())

	r.Set(WindowRecord{TabID: "tab1", WindowLabel: "browser_tab1", URL: "https://a.example", Visible: true})
	assert.True(t, r.Has("tab1"))

	rec, ok := r.Get("tab1")
	assert.True(t, ok)
	assert.Equal(t, "browser_tab1", rec.WindowLabel)

	// Set replaces in place.
	rec.URL = "https://b.example"
	r.Set(rec)
	rec2, _ := r.Get("tab1")
	assert.Equal(t, "https://b.example", rec2.URL)
	assert.Equal(t, 1, r.Len())

	r.Remove("tab1")
	assert.False(t, r.Has("tab1"))

	// Removing again is a no-op.
	r.Remove("tab1")
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySnapshotsAndClear(t *testing.T) {
	r := NewRegistry()
	r.Set(WindowRecord{TabID: "a", WindowLabel: "browser_a"})
	r.Set(WindowRecord{TabID: "b", WindowLabel: "browser_b"})

	assert.ElementsMatch(t, []string{"a", "b"}, r.TabIDs())
	assert.Len(t, r.Records(), 2)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.TabIDs())
}
