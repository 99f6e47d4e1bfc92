// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import "strconv"

// Carousel is the position of a wrap-around slider over n items.
type Carousel struct {
	Index int
	N     int
}

// NewCarousel normalises index into [0, n). Any index is accepted.
func NewCarousel(index, n int) Carousel {
	if n <= 0 {
		return Carousel{}
	}
	index %= n
	if index < 0 {
		index += n
	}
	return Carousel{Index: index, N: n}
}

// CarouselFromQuery reads the index from a query value such as ?t=2.
// A missing or malformed value starts at the first item.
func CarouselFromQuery(v string, n int) Carousel {
	i, err := strconv.Atoi(v)
	if err != nil {
		i = 0
	}
	return NewCarousel(i, n)
}

// Next is the index after the current one, wrapping to 0.
func (c Carousel) Next() int {
	if c.N == 0 {
		return 0
	}
	return (c.Index + 1) % c.N
}

// Prev is the index before the current one, wrapping to N-1.
func (c Carousel) Prev() int {
	if c.N == 0 {
		return 0
	}
	return (c.Index - 1 + c.N) % c.N
}

// Dots lists every index for the indicator row.
func (c Carousel) Dots() []int {
	out := make([]int, c.N)
	for i := range out {
		out[i] = i
	}
	return out
}
