package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tragikomedia/shortener/internal/db"
)

func TestFactory(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		svc, err := Factory(FactoryParams{Conn: db.NewMemStorage()})
		require.NoError(t, err)
		assert.NoError(t, svc.Ping.CheckConnection(context.Background()))

		link, err := svc.Links.Create(context.Background(), CreateLinkParams{RawURL: "example.com"})
		require.NoError(t, err)

		found, err := svc.Links.FindByCode(context.Background(), link.Code)
		require.NoError(t, err)
		assert.Equal(t, "example.com", found.TargetURL)
	})

	t.Run("sqlite", func(t *testing.T) {
		conn, err := db.NewSQLite(filepath.Join(t.TempDir(), "factory.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })

		svc, err := Factory(FactoryParams{Conn: conn})
		require.NoError(t, err)

		user, err := svc.Users.FindOrCreate(context.Background(), "google", "42", "Jan")
		require.NoError(t, err)

		link, err := svc.Links.Create(context.Background(), CreateLinkParams{
			RawURL:  "https://www.wykop.pl/wpis/55931437/",
			OwnerID: &user.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "wykop.pl/wpis/55931437/", link.TargetURL)

		links, err := svc.Links.ListByOwner(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("unsupported connection", func(t *testing.T) {
		_, err := Factory(FactoryParams{Conn: "nope"})
		assert.Error(t, err)

		_, err = Factory(FactoryParams{})
		assert.Error(t, err)
	})
}

func TestUserService_GetByID(t *testing.T) {
	svc, err := Factory(FactoryParams{Conn: db.NewMemStorage()})
	require.NoError(t, err)

	_, err = svc.Users.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := svc.Users.FindOrCreate(context.Background(), "facebook", "7", "Ola")
	require.NoError(t, err)

	got, err := svc.Users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ola", got.Name)

	_, err = svc.Users.FindOrCreate(context.Background(), "", "7", "Ola")
	assert.ErrorIs(t, err, ErrValidation)
}
