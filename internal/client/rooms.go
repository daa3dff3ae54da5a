/* Copyright (c) 2025 David Bulkow */

package client

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// LocalRoom is one entry of the locally known room catalog, keyed the
// way the floor plans name rooms.
type LocalRoom struct {
	Building string
	Name     string
	Floor    int
}

type roomKey struct {
	building string
	name     string
}

// directory is one immutable published generation of the id map.
type directory struct {
	ids           map[roomKey]int64
	authoritative bool
}

// RoomDirectory maps (building, room name) to the store's numeric room
// id. Initialize populates it from the store; when the listing is
// unavailable it falls back to sequential ids over the local catalog
// so callers always have some id to submit. Lookups read the most
// recently published snapshot and never block.
type RoomDirectory struct {
	client  *Client
	catalog []LocalRoom
	log     *zap.Logger
	current atomic.Pointer[directory]
}

func NewRoomDirectory(client *Client, catalog []LocalRoom, log *zap.Logger) *RoomDirectory {
	return &RoomDirectory{
		client:  client,
		catalog: catalog,
		log:     log,
	}
}

// Initialize fetches the room list and publishes the id map. On fetch
// failure it publishes sequential fallback ids instead and returns the
// fetch error for information; the directory is ready either way, and
// every catalog room has exactly one id until the next Refresh.
func (d *RoomDirectory) Initialize(ctx context.Context) error {
	rooms, err := d.client.Rooms(ctx)
	if err != nil {
		ids := make(map[roomKey]int64, len(d.catalog))
		for i, room := range d.catalog {
			ids[roomKey{building: room.Building, name: room.Name}] = int64(i + 1)
		}
		d.current.Store(&directory{ids: ids})
		d.log.Warn("room listing unavailable, using fallback ids",
			zap.Int("rooms", len(ids)), zap.Error(err))
		return err
	}

	ids := make(map[roomKey]int64, len(rooms))
	for _, room := range rooms {
		ids[roomKey{building: room.Building, name: room.Name}] = room.ID
	}
	d.current.Store(&directory{ids: ids, authoritative: true})
	d.log.Info("room directory populated", zap.Int("rooms", len(ids)))
	return nil
}

// Refresh re-runs Initialize, replacing the published map wholesale.
// Readers keep seeing the previous generation until the new one lands.
func (d *RoomDirectory) Refresh(ctx context.Context) error {
	return d.Initialize(ctx)
}

// Lookup returns the id for a room, without blocking. The second
// return is false before Initialize settles or for rooms the
// directory has never heard of.
func (d *RoomDirectory) Lookup(building, name string) (int64, bool) {
	dir := d.current.Load()
	if dir == nil {
		return 0, false
	}
	id, ok := dir.ids[roomKey{building: building, name: name}]
	return id, ok
}

// Ready reports whether Initialize has settled, by either path.
func (d *RoomDirectory) Ready() bool {
	return d.current.Load() != nil
}

// Authoritative reports whether the published ids came from the store
// rather than the local fallback generator.
func (d *RoomDirectory) Authoritative() bool {
	dir := d.current.Load()
	return dir != nil && dir.authoritative
}
