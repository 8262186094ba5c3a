package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/schooluniforms-web/internal/database"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()

	_, err := s.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, id, "tok-1"))
	require.NoError(t, s.Save(ctx, id, "tok-2"))
	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.LoadCookies(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.SaveCookies(ctx, id, []*http.Cookie{{Name: "sessionid", Value: "abc"}}))
	require.NoError(t, s.SaveCookies(ctx, id, []*http.Cookie{
		{Name: "sessionid", Value: "def"},
		{Name: "csrftoken", Value: "xyz"},
	}))
	cookies, err := s.LoadCookies(ctx, id)
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "def", cookies[0].Value)
	assert.Equal(t, "csrftoken", cookies[1].Name)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLStore(t *testing.T) {
	dsn := os.Getenv("TOKEN_STORE_TEST_DSN")
	if dsn == "" {
		t.Skip("TOKEN_STORE_TEST_DSN not set")
	}
	db, err := database.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewSQLStore(db)
	require.NoError(t, s.EnsureSchema(context.Background()))
	exerciseStore(t, s)
}

func TestVisitorTokensWriteThrough(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "v1", "saved"))

	vt := Bind(ctx, s, "v1")
	assert.Equal(t, "saved", vt.Token())

	require.NoError(t, vt.SetToken("fresh"))
	got, err := s.Load(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	require.NoError(t, vt.ClearToken())
	assert.Empty(t, vt.Token())
	_, err = s.Load(ctx, "v1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, Bind(ctx, s, "unknown").Token())
}

func TestVisitorJarPersistsAPICookies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "xyz", Path: "/"})
	}))
	t.Cleanup(srv.Close)

	jar, err := NewJar(ctx, s, "v1", srv.URL+"/api")
	require.NoError(t, err)
	resp, err := (&http.Client{Jar: jar}).Get(srv.URL + "/api/cart/")
	require.NoError(t, err)
	resp.Body.Close()

	saved, err := s.LoadCookies(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	restored, err := NewJar(ctx, s, "v1", srv.URL+"/api/")
	require.NoError(t, err)
	u, err := url.Parse(srv.URL + "/api/orders/")
	require.NoError(t, err)
	names := map[string]string{}
	for _, ck := range restored.Cookies(u) {
		names[ck.Name] = ck.Value
	}
	assert.Equal(t, map[string]string{"sessionid": "abc", "csrftoken": "xyz"}, names)

	other, err := NewJar(ctx, s, "v2", srv.URL+"/api")
	require.NoError(t, err)
	assert.Empty(t, other.Cookies(u))
}
