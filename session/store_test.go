package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, time.Hour, false), mr
}

func TestStore_SaveAndGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	data := &Data{
		BearerToken: "token",
		UserInfo:    &UserInfo{ID: "123", Username: "foxy", GlobalName: "Foxy"},
	}

	id, err := store.Save(ctx, "", data)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	loaded, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, data, loaded)
	assert.True(t, loaded.Authenticated())
}

func TestStore_SaveKeepsID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "fixed", &Data{})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupStore(t)

	data, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = store.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_Expires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "", &Data{BearerToken: "token"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	data, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_Destroy(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, "", &Data{BearerToken: "token"})
	require.NoError(t, err)
	require.NoError(t, store.Destroy(ctx, id))

	data, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_Cookies(t *testing.T) {
	store, _ := setupStore(t)

	rec := httptest.NewRecorder()
	store.SetCookie(rec, "abc")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	assert.Equal(t, "abc", IDFromRequest(req))

	assert.Equal(t, "", IDFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestData_Authenticated(t *testing.T) {
	var nilData *Data
	assert.False(t, nilData.Authenticated())
	assert.False(t, (&Data{BearerToken: "t"}).Authenticated())
	assert.False(t, (&Data{UserInfo: &UserInfo{ID: "1"}}).Authenticated())
}
