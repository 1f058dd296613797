package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticStore_Lookup(t *testing.T) {
	store, err := NewStaticStore(
		Principal{ID: "admin", Verifier: "v1", Capabilities: []Capability{CapabilityAdmin}},
		Principal{ID: "reader", Verifier: "v2"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	ctx := context.Background()

	p, err := store.Lookup(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", p.ID)
	assert.True(t, p.HasCapability(CapabilityAdmin))

	p, err = store.Lookup(ctx, "reader")
	require.NoError(t, err)
	assert.False(t, p.HasCapability(CapabilityAdmin))

	t.Run("exact case-sensitive match", func(t *testing.T) {
		_, err := store.Lookup(ctx, "Admin")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.Lookup(ctx, "adm")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returned principal is a copy", func(t *testing.T) {
		p, err := store.Lookup(ctx, "admin")
		require.NoError(t, err)
		p.Capabilities[0] = "nothing"
		p.Verifier = "changed"

		again, err := store.Lookup(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "v1", again.Verifier)
		assert.True(t, again.HasCapability(CapabilityAdmin))
	})
}

func TestNewStaticStore_Rejects(t *testing.T) {
	tests := []struct {
		name string
		list []Principal
	}{
		{"empty id", []Principal{{ID: "", Verifier: "v"}}},
		{"missing verifier", []Principal{{ID: "a"}}},
		{"duplicate", []Principal{{ID: "a", Verifier: "v"}, {ID: "a", Verifier: "w"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticStore(tt.list...)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "principals.yaml")
	content := `principals:
  - id: admin
    verifier: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"
    capabilities: [admin]
  - id: auditor
    verifier: "$2b$10$abcdefghijklmnopqrstuv"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	p, err := store.Lookup(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, []Capability{CapabilityAdmin}, p.Capabilities)

	p, err = store.Lookup(context.Background(), "auditor")
	require.NoError(t, err)
	assert.Empty(t, p.Capabilities)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Parse([]byte("principals: [oops"))
		assert.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := Parse([]byte(`principals:
  - {id: a, verifier: x}
  - {id: a, verifier: y}
`))
		assert.Error(t, err)
	})
}

func TestStaticStore_LegacyVerifiers(t *testing.T) {
	modern, _, err := HashPassword("password123")
	require.NoError(t, err)

	store, err := NewStaticStore(
		Principal{ID: "zed", Verifier: "$2a$10$abcdefghijklmnopqrstuu"},
		Principal{ID: "admin", Verifier: modern},
		Principal{ID: "bob", Verifier: "$2b$10$abcdefghijklmnopqrstuu"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"bob", "zed"}, store.LegacyVerifiers())

	clean, err := NewStaticStore(Principal{ID: "admin", Verifier: modern})
	require.NoError(t, err)
	assert.Empty(t, clean.LegacyVerifiers())
}
