// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// parseIDParam reads the {id} URL parameter.
func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseIDList parses checkbox values into unique positive IDs, skipping
// anything that is not a number.
func parseIDList(values []string) []int64 {
	var ids []int64
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// listQuery is the search state of an admin list, kept in the query string.
type listQuery struct {
	Query    string
	Category string
}

func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()
	return listQuery{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	}
}

// safeNext returns next when it is a local admin path, otherwise the
// dashboard. Protects the login redirect from open redirects.
func safeNext(next string) string {
	if next == "" || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return redirectAdmin
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return redirectAdmin
	}
	if u.Path != redirectAdmin && !strings.HasPrefix(u.Path, redirectAdmin+"/") {
		return redirectAdmin
	}
	if u.Path == redirectLogin {
		return redirectAdmin
	}
	return u.RequestURI()
}

func formGetter(r *http.Request) func(string) string {
	return r.PostFormValue
}
