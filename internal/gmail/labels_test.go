package gmail

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLabels_FindByPath(t *testing.T) {
	m := NewMemoryLabels(Label{ID: "Label_1", Name: "Work"}, Label{ID: "Label_2", Name: "Straße"})

	id, found, err := m.FindByPath("work", false)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Label_1", id)

	_, found, err = m.FindByPath("work", true)
	require.NoError(t, err)
	assert.False(t, found)

	id, found, _ = m.FindByPath("STRASSE", false)
	assert.True(t, found, "case folding should match ß with SS")
	assert.Equal(t, "Label_2", id)
}

func TestMemoryLabels_GetOrCreateReusesPrefixes(t *testing.T) {
	m := NewMemoryLabels(Label{ID: "Label_1", Name: "Work"})

	id, err := m.GetOrCreate("work/Clients/Acme", false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "Label_"))

	created := m.Created()
	require.Len(t, created, 2)
	assert.Equal(t, "Work/Clients", created[0].Name)
	assert.Equal(t, "Work/Clients/Acme", created[1].Name)
	assert.Equal(t, id, created[1].ID)

	again, err := m.GetOrCreate("Work/clients/acme", false)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Len(t, m.Labels(), 3)
}

func TestMemoryLabels_ConcurrentGetOrCreate(t *testing.T) {
	m := NewMemoryLabels()

	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := m.GetOrCreate("Shared/Path", false)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, m.Created(), 2)
}
