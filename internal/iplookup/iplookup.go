// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package iplookup determines the public address recorded with an
// application.
package iplookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lovelliph/Services/internal/util"
)

// DefaultURL is the public IP echo service queried when needed.
const DefaultURL = "https://api.ipify.org?format=json"

// maxBody bounds the response read from the lookup service.
const maxBody = 4 << 10

// Client asks an external echo service for this host's public address.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for url with the given request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PublicIP queries the service and returns the "ip" field of its JSON reply.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("building ip lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ip lookup request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("reading ip lookup response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", errors.New("ip lookup response is not valid JSON")
	}

	ip := gjson.GetBytes(body, "ip").String()
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("ip lookup returned invalid address %q", ip)
	}
	return ip, nil
}

// Resolver picks the address stored with an application: the request
// address when it is public, otherwise the result of the lookup service.
type Resolver struct {
	client *Client // nil disables the lookup
}

// NewResolver creates a Resolver. A nil client makes Resolve return the
// request address unchanged.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns the public address for requestIP.
func (r *Resolver) Resolve(ctx context.Context, requestIP string) (string, error) {
	if util.IsPublicAddress(requestIP) || r.client == nil {
		return requestIP, nil
	}
	return r.client.PublicIP(ctx)
}
