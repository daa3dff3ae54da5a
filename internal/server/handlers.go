/* Copyright (c) 2025 David Bulkow */

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/schedule"
)

type handler struct {
	store  *Store
	tokens *TokenAuthority
	log    *zap.Logger
}

func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, api.ErrorResponse{Error: message})
}

func (h *handler) register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if req.StudentID == "" || req.Name == "" || req.Password == "" {
		jsonError(c, http.StatusBadRequest, "studentId, name and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "cannot hash password")
		return
	}

	user := &User{StudentID: req.StudentID, Name: req.Name, PasswordHash: hash}
	if err := h.store.AddUser(user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			jsonError(c, http.StatusConflict, ErrDuplicateUser.Error())
			return
		}
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.Info("student registered", zap.String("studentId", req.StudentID))
	c.JSON(http.StatusCreated, api.RegisterResponse{
		StudentID: req.StudentID,
		Name:      req.Name,
		Message:   "registration complete",
	})
}

func (h *handler) login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	user, ok := h.store.UserByID(req.StudentID)
	if !ok || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		jsonError(c, http.StatusUnauthorized, "invalid student id or password")
		return
	}

	token, err := h.tokens.Issue(user.StudentID, user.Name)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "cannot issue token")
		return
	}

	h.log.Info("student logged in", zap.String("studentId", user.StudentID))
	c.JSON(http.StatusOK, api.LoginResponse{
		StudentID: user.StudentID,
		Name:      user.Name,
		Token:     token,
	})
}

func (h *handler) rooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Rooms())
}

func (h *handler) reservations(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		jsonError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	c.JSON(http.StatusOK, h.store.ReservationsByDate(date))
}

// availability answers a bare boolean: is the room free for the
// "HH:MM-HH:MM" slot on the date.
func (h *handler) availability(c *gin.Context) {
	building := c.Query("building")
	name := c.Query("room")
	date := c.Query("date")
	slot := c.Query("timeSlot")

	floor, err := strconv.Atoi(c.Query("floor"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "floor must be a number")
		return
	}

	startStr, endStr, ok := strings.Cut(slot, "-")
	if !ok {
		jsonError(c, http.StatusBadRequest, "timeSlot must be HH:MM-HH:MM")
		return
	}
	start, err := schedule.ParseTimeOfDay(strings.TrimSpace(startStr))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "timeSlot must be HH:MM-HH:MM")
		return
	}
	end, err := schedule.ParseTimeOfDay(strings.TrimSpace(endStr))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "timeSlot must be HH:MM-HH:MM")
		return
	}

	room, ok := h.store.RoomByLocation(building, floor, name)
	if !ok {
		jsonError(c, http.StatusNotFound, ErrUnknownRoom.Error())
		return
	}

	c.JSON(http.StatusOK, h.store.Available(room.ID, date, start, end))
}

func (h *handler) create(c *gin.Context) {
	var res api.Reservation
	if err := c.ShouldBindJSON(&res); err != nil {
		jsonError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	// The token decides who is booking, not the body.
	if res.StudentID != c.GetString(identityKey) {
		jsonError(c, http.StatusForbidden, "cannot reserve for another student")
		return
	}

	created, err := h.store.AddReservation(&res)
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			jsonError(c, http.StatusConflict, err.Error())
		case errors.Is(err, ErrUnknownRoom):
			jsonError(c, http.StatusNotFound, err.Error())
		default:
			jsonError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.log.Info("reservation created",
		zap.Int64("id", created.ID),
		zap.Int64("roomId", created.RoomID),
		zap.String("date", created.Date))
	c.JSON(http.StatusCreated, created)
}

func (h *handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}

	err = h.store.DeleteReservation(id, c.GetString(identityKey))
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		jsonError(c, http.StatusForbidden, err.Error())
	case err != nil:
		jsonError(c, http.StatusInternalServerError, err.Error())
	default:
		c.Status(http.StatusNoContent)
	}
}
