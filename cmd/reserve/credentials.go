/* Copyright (c) 2025 David Bulkow */

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// Credentials is the saved login, written after login or register and
// removed on logout. The token inside expires on the server's
// schedule; commands report an expired session when that happens.
type Credentials struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Token     string `json:"token"`
}

func CredFile() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		if home == "" {
			home = os.Getenv("USERPROFILE")
		}
		return filepath.Join(home, ".classrooms.json")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "classrooms", "credentials.json")
}

func loadCredentials(filename string) (*Credentials, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

func saveCredentials(filename string, creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, b, 0600)
}

func removeCredentials(filename string) error {
	err := os.Remove(filename)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
