/* Copyright (c) 2025 David Bulkow */

package main

import "github.com/dbulkow/classrooms/internal/client"

// defaultCatalog is the built-in campus floor plan, used to resolve
// room ids when the server's room listing cannot be fetched.
var defaultCatalog = []client.LocalRoom{
	{Building: "IT4", Name: "104", Floor: 1},
	{Building: "IT4", Name: "106", Floor: 1},
	{Building: "IT4", Name: "108", Floor: 1},
	{Building: "IT5", Name: "224", Floor: 2},
	{Building: "IT5", Name: "225", Floor: 2},
	{Building: "IT5", Name: "245", Floor: 2},
	{Building: "IT5", Name: "248", Floor: 2},
	{Building: "IT5", Name: "342", Floor: 3},
	{Building: "IT5", Name: "345", Floor: 3},
	{Building: "IT5", Name: "348", Floor: 3},
}

// floorOf returns a room's floor from the built-in plan, falling back
// to the first digit convention used by room numbering.
func floorOf(building, room string) int {
	for _, r := range defaultCatalog {
		if r.Building == building && r.Name == room {
			return r.Floor
		}
	}
	if len(room) > 0 && room[0] >= '1' && room[0] <= '9' {
		return int(room[0] - '0')
	}
	return 1
}
