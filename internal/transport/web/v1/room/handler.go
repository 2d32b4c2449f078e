package room

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

const roomTypesCacheTTL = 300 // секунд

type Handler struct {
	Log    *log.Logger
	Rooms  domain.RoomsRepo
	Photos domain.PhotoStorage
	Cache  domain.Cache
}

// Add godoc
// @Summary     Add room
// @Description Создаёт номер (multipart: roomType, roomPrice, опционально photo). Только ROLE_ADMIN.
// @Tags        rooms
// @Accept      mpfd
// @Produce     json
// @Success     201 {object} domain.Room
// @Failure     400 {object} v1.ErrorObject
// @Router      /v1/rooms [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "room.add"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "bad multipart", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	roomType := r.FormValue("roomType")
	roomPrice := r.FormValue("roomPrice")
	if roomType == "" || roomPrice == "" {
		logx.Error(h.Log, reqID, op, "missing roomType or roomPrice", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if _, err := strconv.ParseFloat(roomPrice, 64); err != nil {
		logx.Error(h.Log, reqID, op, "bad roomPrice", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	photoKey, err := h.storePhoto(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "photo upload failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	room, err := h.Rooms.CreateRoom(r.Context(), domain.Room{
		Type:     roomType,
		Price:    roomPrice,
		PhotoKey: photoKey,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	// новый тип номера мог появиться — сбрасываем кеш списка типов
	_ = h.Cache.Del(r.Context(), domain.CacheKeyRoomTypes())

	logx.Info(h.Log, reqID, op, "ok", "room_id", room.ID)
	v1.WriteJSON(w, r, http.StatusCreated, room)
}

// Types godoc
// @Summary     Get distinct room types
// @Description Список типов номеров; кешируется в Redis.
// @Tags        rooms
// @Produce     json
// @Success     200 {array} string
// @Router      /v1/rooms/types [get]
func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	const op = "room.types"
	reqID := mw.RequestIDFromCtx(r.Context())

	if b, err := h.Cache.Get(r.Context(), domain.CacheKeyRoomTypes()); err == nil && len(b) > 0 {
		var types []string
		if json.Unmarshal(b, &types) == nil {
			logx.Info(h.Log, reqID, op, "cache hit", "count", len(types))
			v1.WriteJSON(w, r, http.StatusOK, types)
			return
		}
	}

	types, err := h.Rooms.RoomTypes(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "query failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if b, err := json.Marshal(types); err == nil {
		_ = h.Cache.Set(r.Context(), domain.CacheKeyRoomTypes(), b, roomTypesCacheTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(types))
	v1.WriteJSON(w, r, http.StatusOK, types)
}

// ByID godoc
// @Summary     Get room by id
// @Tags        rooms
// @Produce     json
// @Param       roomID path int true "room id"
// @Success     200 {object} domain.Room
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/rooms/{roomID} [get]
func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	const op = "room.by_id"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	room, err := h.Rooms.RoomByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "room_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteJSON(w, r, http.StatusOK, room)
}

// List godoc
// @Summary     Get all rooms
// @Tags        rooms
// @Produce     json
// @Success     200 {array} domain.Room
// @Router      /v1/rooms [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "room.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	rooms, err := h.Rooms.ListRooms(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "query failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "count", len(rooms))
	v1.WriteJSON(w, r, http.StatusOK, rooms)
}

// Available godoc
// @Summary     Get available rooms
// @Description Номера типа roomType без броней, пересекающих диапазон дат (даты dd-MM-yyyy).
// @Tags        rooms
// @Produce     json
// @Param       checkInDate  query string true "dd-MM-yyyy"
// @Param       checkOutDate query string true "dd-MM-yyyy"
// @Param       roomType     query string true "room type"
// @Success     200 {array} domain.Room
// @Failure     400 {object} v1.ErrorObject
// @Router      /v1/rooms/available [get]
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	const op = "room.available"
	reqID := mw.RequestIDFromCtx(r.Context())

	checkIn, err1 := domain.ParseDate(r.URL.Query().Get("checkInDate"))
	checkOut, err2 := domain.ParseDate(r.URL.Query().Get("checkOutDate"))
	roomType := r.URL.Query().Get("roomType")
	if err1 != nil || err2 != nil || roomType == "" {
		logx.Error(h.Log, reqID, op, "bad query params", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	rooms, err := h.Rooms.AvailableRooms(r.Context(), checkIn, checkOut, roomType)
	if err != nil {
		logx.Error(h.Log, reqID, op, "query failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "count", len(rooms))
	v1.WriteJSON(w, r, http.StatusOK, rooms)
}

// Update godoc
// @Summary     Update room
// @Description Обновляет тип/цену и (опционально) фото. Только ROLE_ADMIN.
// @Tags        rooms
// @Accept      mpfd
// @Produce     json
// @Param       roomID path int true "room id"
// @Success     200 {object} domain.Room
// @Failure     400 {object} v1.ErrorObject
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/rooms/{roomID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "room.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	room, err := h.Rooms.RoomByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "room_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if t := r.FormValue("roomType"); t != "" {
		room.Type = t
	}
	if p := r.FormValue("roomPrice"); p != "" {
		if _, err := strconv.ParseFloat(p, 64); err != nil {
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		room.Price = p
	}

	if key, err := h.storePhoto(r); err != nil {
		logx.Error(h.Log, reqID, op, "photo upload failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	} else if key != "" {
		if room.PhotoKey != "" {
			_ = h.Photos.Delete(r.Context(), room.PhotoKey)
		}
		room.PhotoKey = key
	}

	updated, err := h.Rooms.UpdateRoom(r.Context(), room)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "room_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	_ = h.Cache.Del(r.Context(), domain.CacheKeyRoomTypes())

	logx.Info(h.Log, reqID, op, "ok", "room_id", updated.ID)
	v1.WriteJSON(w, r, http.StatusOK, updated)
}

// Delete godoc
// @Summary     Delete room
// @Description Удаляет номер вместе с бронями и фото. Только ROLE_ADMIN.
// @Tags        rooms
// @Produce     plain
// @Param       roomID path int true "room id"
// @Success     200 {string} string "Room deleted successfully"
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/rooms/{roomID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "room.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	room, err := h.Rooms.RoomByID(r.Context(), id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Rooms.DeleteRoom(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "room_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if room.PhotoKey != "" {
		_ = h.Photos.Delete(r.Context(), room.PhotoKey)
	}
	_ = h.Cache.Del(r.Context(), domain.CacheKeyRoomTypes())

	logx.Info(h.Log, reqID, op, "ok", "room_id", id)
	v1.WriteText(w, r, http.StatusOK, "Room deleted successfully")
}

// Photo godoc
// @Summary     Get room photo
// @Tags        rooms
// @Produce     octet-stream
// @Param       roomID path int true "room id"
// @Success     200 {file} binary
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/rooms/{roomID}/photo [get]
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	const op = "room.photo"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("roomID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	room, err := h.Rooms.RoomByID(r.Context(), id)
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	if room.PhotoKey == "" {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	rc, contentType, err := h.Photos.Get(r.Context(), room.PhotoKey)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage get failed", err, "key", room.PhotoKey)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// storePhoto загружает файл photo из формы (если он есть), возвращает ключ
func (h *Handler) storePhoto(r *http.Request) (string, error) {
	file, hdr, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	contentType := hdr.Header.Get("Content-Type")
	return h.Photos.Put(r.Context(), file, hdr.Size, contentType)
}
