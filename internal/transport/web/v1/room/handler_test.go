package room

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type fakeRooms struct {
	rooms      []domain.Room
	typesCalls int
}

func (f *fakeRooms) CreateRoom(_ context.Context, room domain.Room) (domain.Room, error) {
	room.ID = domain.RoomID(len(f.rooms) + 1)
	f.rooms = append(f.rooms, room)
	return room, nil
}

func (f *fakeRooms) RoomByID(_ context.Context, id domain.RoomID) (domain.Room, error) {
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Room{}, domain.ErrRoomNotFound
}

func (f *fakeRooms) ListRooms(context.Context) ([]domain.Room, error) { return f.rooms, nil }

func (f *fakeRooms) UpdateRoom(_ context.Context, room domain.Room) (domain.Room, error) {
	return room, nil
}

func (f *fakeRooms) DeleteRoom(context.Context, domain.RoomID) error { return nil }

func (f *fakeRooms) RoomTypes(context.Context) ([]string, error) {
	f.typesCalls++
	seen := map[string]bool{}
	var out []string
	for _, r := range f.rooms {
		if !seen[r.Type] {
			seen[r.Type] = true
			out = append(out, r.Type)
		}
	}
	return out, nil
}

func (f *fakeRooms) AvailableRooms(context.Context, domain.Date, domain.Date, string) ([]domain.Room, error) {
	return f.rooms, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return b, nil
}

func (m *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	m.data[key] = val
	return nil
}

func (m *memCache) SetNX(_ context.Context, key string, val []byte, _ int) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = val
	return true, nil
}

func (m *memCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) Ping(context.Context) error { return nil }
func (m *memCache) Close()                     {}

func typesHandler() (*Handler, *fakeRooms, *memCache) {
	rooms := &fakeRooms{rooms: []domain.Room{
		{ID: 1, Type: "Standard", Price: "100.00"},
		{ID: 2, Type: "Deluxe", Price: "250.00"},
		{ID: 3, Type: "Standard", Price: "110.00"},
	}}
	cache := newMemCache()
	h := &Handler{
		Log:   log.New(io.Discard, "", 0),
		Rooms: rooms,
		Cache: cache,
	}
	return h, rooms, cache
}

func getTypes(t *testing.T, h *Handler) []string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Types(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/types", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var types []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &types))
	return types
}

func TestTypesPopulatesCache(t *testing.T) {
	h, rooms, cache := typesHandler()

	types := getTypes(t, h)
	assert.ElementsMatch(t, []string{"Standard", "Deluxe"}, types)
	assert.Equal(t, 1, rooms.typesCalls)

	_, ok := cache.data[domain.CacheKeyRoomTypes()]
	assert.True(t, ok, "types must be cached after first read")
}

func TestTypesServedFromCache(t *testing.T) {
	h, rooms, _ := typesHandler()

	first := getTypes(t, h)
	second := getTypes(t, h)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rooms.typesCalls, "second read must hit the cache")
}

func TestTypesCorruptCacheFallsBackToRepo(t *testing.T) {
	h, rooms, cache := typesHandler()
	cache.data[domain.CacheKeyRoomTypes()] = []byte("{broken json")

	types := getTypes(t, h)
	assert.ElementsMatch(t, []string{"Standard", "Deluxe"}, types)
	assert.Equal(t, 1, rooms.typesCalls)
}
