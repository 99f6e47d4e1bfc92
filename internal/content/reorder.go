// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"slices"

	"github.com/lovelliph/Services/internal/store"
)

// ErrUnknownItem is returned when a reorder names an ID that is not listed.
var ErrUnknownItem = errors.New("reorder references an unknown item")

// PlanReorder moves the service draggedID to the index currently held by
// targetID. It returns the new visual order with positions renumbered
// 1..N, and one update for every service whose position changed.
func PlanReorder(items []store.Service, draggedID, targetID int64) ([]store.Service, []store.ServiceOrderUpdate, error) {
	from := slices.IndexFunc(items, func(s store.Service) bool { return s.ID == draggedID })
	to := slices.IndexFunc(items, func(s store.Service) bool { return s.ID == targetID })
	if from < 0 || to < 0 {
		return nil, nil, ErrUnknownItem
	}

	ordered := slices.Clone(items)
	if from != to {
		moved := ordered[from]
		ordered = slices.Delete(ordered, from, from+1)
		ordered = slices.Insert(ordered, to, moved)
	}
	ordered, updates := Renumber(ordered)
	return ordered, updates, nil
}

// Renumber assigns positions 1..N in slice order and reports the services
// whose stored position differs from the new one.
func Renumber(ordered []store.Service) ([]store.Service, []store.ServiceOrderUpdate) {
	var updates []store.ServiceOrderUpdate
	for i := range ordered {
		pos := int64(i + 1)
		if ordered[i].Position != pos {
			ordered[i].Position = pos
			updates = append(updates, store.ServiceOrderUpdate{ID: ordered[i].ID, Position: pos})
		}
	}
	return ordered, updates
}

// OrderFromIDs arranges items in the order given by ids, which must name
// every item exactly once. It backs the reorder endpoint that posts the
// full list after a drop.
func OrderFromIDs(items []store.Service, ids []int64) ([]store.Service, error) {
	if len(ids) != len(items) {
		return nil, ErrUnknownItem
	}
	byID := make(map[int64]store.Service, len(items))
	for _, s := range items {
		byID[s.ID] = s
	}
	ordered := make([]store.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, ErrUnknownItem
		}
		delete(byID, id)
		ordered = append(ordered, s)
	}
	return ordered, nil
}
