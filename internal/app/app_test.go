package app

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tragikomedia/shortener/internal/config"
	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/services"
)

func TestWhatIsDBStorageType(t *testing.T) {
	tests := []struct {
		name string
		conf config.Config
		want db.StorageType
	}{
		{name: "memory", want: db.StorageTypeInMemory},
		{name: "sqlite", conf: config.Config{SQLitePath: "links.db"}, want: db.StorageTypeSQLite},
		{name: "postgres wins", conf: config.Config{SQLitePath: "links.db", DatabaseDSN: "postgres://"}, want: db.StorageTypePostgres},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, whatIsDBStorageType(&tt.conf))
		})
	}
}

func newTestApp(t *testing.T, conf config.Config) *App {
	t.Helper()
	conf.JWTSecret = "secret"
	conf.LogLevel = "error"
	a, err := New(conf)
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func TestNew_SQLite(t *testing.T) {
	a := newTestApp(t, config.Config{SQLitePath: filepath.Join(t.TempDir(), "links.db")})

	_, ok := a.conn.(*db.SQLConnection)
	require.True(t, ok)
	require.NoError(t, a.services.Ping.CheckConnection(context.Background()))

	link, err := a.services.Links.Create(context.Background(), services.CreateLinkParams{RawURL: "example.com"})
	require.NoError(t, err)
	assert.True(t, services.ValidCode(link.Code))
}

func TestClickRecorder(t *testing.T) {
	tests := []struct {
		name string
		mode config.ClickMode
		want any
	}{
		{name: "inline", mode: config.ClickModeInline, want: &services.InlineRecorder{}},
		{name: "worker", mode: config.ClickModeWorker, want: &services.ClickWorker{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, config.Config{ClickMode: tt.mode, ClickWorkers: 2, ClickQueue: 8})
			recorder, stop, err := a.clickRecorder()
			require.NoError(t, err)
			assert.IsType(t, tt.want, recorder)
			stop()
		})
	}
}

func TestProviders(t *testing.T) {
	public, err := url.Parse("https://sho.rt")
	require.NoError(t, err)

	a := newTestApp(t, config.Config{PublicURL: public, GoogleClientID: "gid", GoogleClientSecret: "gsecret"})
	providers := a.providers()
	require.Len(t, providers, 1)
	assert.Equal(t, "google", providers[0].Name)
	assert.Equal(t, "https://sho.rt/auth/google/callback", providers[0].Config.RedirectURL)
}

func TestWarmAllocator(t *testing.T) {
	a := newTestApp(t, config.Config{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	a.warmAllocator(ctx)
}
