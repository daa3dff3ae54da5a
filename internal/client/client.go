/* Copyright (c) 2025 David Bulkow */

// Package client implements the reservation store client engine: an
// authenticated JSON request executor, the login session, the room
// identifier directory and the reservation coordinator. Components are
// constructed explicitly and injected; the package keeps no globals.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbulkow/classrooms/api"
)

// limit when draining or reading response bodies
const maxRead = 128 * 1024

// Options tunes the transport. Zero values fall back to the defaults
// of the deployed store: 10s to connect, 30s for the whole exchange.
type Options struct {
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// Client executes requests against the reservation store. All methods
// are safe for concurrent use; every outcome, including transport
// failures, is delivered as a return value classified by Kind.
type Client struct {
	base    *url.URL
	http    *http.Client
	session *Session
	log     *zap.Logger
}

func New(baseURL string, session *Session, log *zap.Logger, opts Options) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("service URL invalid: %v", err)
	}

	connect := opts.ConnectTimeout
	if connect == 0 {
		connect = 10 * time.Second
	}
	request := opts.RequestTimeout
	if request == 0 {
		request = 30 * time.Second
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: request,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connect}).DialContext,
			},
		},
		session: session,
		log:     log,
	}, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session { return c.session }

// do runs one JSON exchange. body and out may be nil. With
// requiresAuth the session's bearer token is attached, failing fast
// when no one is logged in.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, requiresAuth bool) error {
	u := *c.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return wrapError(Validation, fmt.Sprintf("encode request: %v", err), err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return wrapError(Validation, fmt.Sprintf("new request: %v", err), err)
	}

	reqid := uuid.NewString()
	req.Header.Set("X-Request-Id", reqid)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if requiresAuth {
		auth, err := c.session.AuthorizationValue()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", auth)
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("reqid", reqid))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("reqid", reqid), zap.Error(err))
		return wrapError(Network, fmt.Sprintf("cannot reach reservation server: %v", err), err)
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxRead))
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxRead)).Decode(out); err != nil {
			return wrapError(Server, fmt.Sprintf("malformed response: %v", err), err)
		}
	}

	return nil
}

// errorFromResponse classifies a non-success status. The message comes
// from a structured {"error"} body when one parses, falling back to
// the raw body text and finally to the status line.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRead))
	if err != nil {
		return wrapError(Network, fmt.Sprintf("read response: %v", err), err)
	}

	message := ""
	var body api.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		message = body.Error
	} else {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	kind := Server
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// Always classified as an expired session, whatever the body.
		kind = AuthExpired
		if message == "" || message == fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)) {
			message = "session expired, log in again"
		}
	case http.StatusConflict:
		kind = Conflict
	}

	return newError(kind, resp.StatusCode, message)
}

// Login authenticates and installs the resulting identity into the
// session.
func (c *Client) Login(ctx context.Context, studentID, password string) (*api.LoginResponse, error) {
	var reply api.LoginResponse
	err := c.do(ctx, http.MethodPost, api.AuthLogin,
		nil, &api.LoginRequest{StudentID: studentID, Password: password}, &reply, false)
	if err != nil {
		return nil, err
	}

	c.session.Set(reply.StudentID, reply.Name, reply.Token)
	c.log.Info("logged in", zap.String("studentId", reply.StudentID))
	return &reply, nil
}

// Register creates an account. The store does not return a token on
// registration; callers log in afterwards.
func (c *Client) Register(ctx context.Context, studentID, name, password string) (*api.RegisterResponse, error) {
	var reply api.RegisterResponse
	err := c.do(ctx, http.MethodPost, api.AuthRegister,
		nil, &api.RegisterRequest{StudentID: studentID, Name: name, Password: password}, &reply, false)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// Logout clears the local session. The store keeps no server-side
// session state.
func (c *Client) Logout() {
	c.session.Clear()
}

// Rooms fetches the store's room catalog.
func (c *Client) Rooms(ctx context.Context) ([]api.Room, error) {
	var rooms []api.Room
	if err := c.do(ctx, http.MethodGet, api.Rooms, nil, nil, &rooms, false); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Reservations fetches every reservation on the given date.
func (c *Client) Reservations(ctx context.Context, date string) ([]api.Reservation, error) {
	q := url.Values{}
	q.Set("date", date)

	var reservations []api.Reservation
	if err := c.do(ctx, http.MethodGet, api.Reservations, q, nil, &reservations, false); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CheckAvailability asks the store whether the room is free for the
// "HH:MM-HH:MM" slot on the given date. The answer is advisory: the
// create call remains the final authority.
func (c *Client) CheckAvailability(ctx context.Context, building string, floor int, room, date, slot string) (bool, error) {
	q := url.Values{}
	q.Set("building", building)
	q.Set("floor", fmt.Sprintf("%d", floor))
	q.Set("room", room)
	q.Set("date", date)
	q.Set("timeSlot", slot)

	var available bool
	if err := c.do(ctx, http.MethodGet, api.Availability, q, nil, &available, false); err != nil {
		return false, err
	}
	return available, nil
}

// CreateReservation submits a reservation and returns the
// server-confirmed copy with its assigned id.
func (c *Client) CreateReservation(ctx context.Context, res *api.Reservation) (*api.Reservation, error) {
	var created api.Reservation
	if err := c.do(ctx, http.MethodPost, api.Reservations, nil, res, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// CancelReservation deletes a reservation by id.
func (c *Client) CancelReservation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", api.Reservations, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}
