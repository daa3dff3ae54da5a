/* Copyright (c) 2025 David Bulkow */

//
// Saves a log of store mutations in JSONL format: one JSON record per
// line, not an array. Replayed in order at startup to rebuild the
// in-memory state.
//

package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dbulkow/classrooms/api"
)

const (
	opAdd    = "add"
	opDelete = "delete"
	opUser   = "user"
)

type jsonl struct {
	filename string
}

func NewJSONL(filename string) (*jsonl, error) {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}
	file.Close()

	return &jsonl{filename: filename}, nil
}

type jsonlog struct {
	Operation   string           `json:"op"`
	ID          int64            `json:"id,omitempty"`
	Reservation *api.Reservation `json:"res,omitempty"`
	User        *User            `json:"user,omitempty"`
}

func (j *jsonl) AddReservation(res *api.Reservation) error {
	return j.append(&jsonlog{Operation: opAdd, ID: res.ID, Reservation: res})
}

func (j *jsonl) DeleteReservation(id int64) error {
	return j.append(&jsonlog{Operation: opDelete, ID: id})
}

func (j *jsonl) AddUser(u *User) error {
	return j.append(&jsonlog{Operation: opUser, User: u})
}

func (j *jsonl) append(record *jsonlog) error {
	file, err := os.OpenFile(j.filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	err = json.NewEncoder(file).Encode(record)
	if err != nil {
		return fmt.Errorf("jsonl encode: %v", err)
	}

	return nil
}

func (j *jsonl) ReadLog(s *Store) error {
	file, err := os.Open(j.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record jsonlog

		err := json.Unmarshal(scanner.Bytes(), &record)
		if err != nil {
			return err
		}

		s.replay(record.Operation, record.ID, record.Reservation, record.User)
	}

	return scanner.Err()
}
