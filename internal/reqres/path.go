// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reqres

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is either a field name or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

func KeySegment(key string) Segment {
	return Segment{key: key}
}

func IndexSegment(index int) Segment {
	if index < 0 {
		panic(fmt.Sprintf("reqres: negative path index %d", index))
	}
	return Segment{index: index, isIndex: true}
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

func (s Segment) Key() string {
	return s.key
}

func (s Segment) Index() int {
	return s.index
}

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path locates a node inside a data tree, root first.
type Path []Segment

func KeyPath(keys ...string) Path {
	path := make(Path, len(keys))
	for i, k := range keys {
		path[i] = KeySegment(k)
	}
	return path
}

// Key returns a new path extended with a field name. The receiver is never
// modified, so sibling paths can share a prefix safely.
func (p Path) Key(key string) Path {
	return p.append(KeySegment(key))
}

func (p Path) Index(index int) Path {
	return p.append(IndexSegment(index))
}

func (p Path) append(seg Segment) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, seg)
}

// String renders the dotted notation used in error messages, e.g. "arr.0.name".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// Get reads the node at path. The boolean is false when any step is missing
// or does not match the container type.
func Get(tree any, path Path) (any, bool) {
	current := tree
	for _, seg := range path {
		if seg.isIndex {
			arr, ok := asArray(current)
			if !ok || seg.index >= len(arr) {
				return nil, false
			}
			current = arr[seg.index]
			continue
		}

		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg.key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Set writes value at path and returns the updated tree. Missing
// intermediate containers are created as arrays when the following segment
// is an index and as objects otherwise.
func Set(tree any, path Path, value any) any {
	if len(path) == 0 {
		return value
	}

	seg, rest := path[0], path[1:]
	if seg.isIndex {
		arr, _ := tree.([]any)
		for len(arr) <= seg.index {
			arr = append(arr, nil)
		}
		child := arr[seg.index]
		if child == nil && len(rest) > 0 {
			child = containerFor(rest[0])
		}
		arr[seg.index] = Set(child, rest, value)
		return arr
	}

	obj, ok := tree.(map[string]any)
	if !ok || obj == nil {
		obj = make(map[string]any)
	}
	child, ok := obj[seg.key]
	if (!ok || child == nil) && len(rest) > 0 {
		child = containerFor(rest[0])
	}
	obj[seg.key] = Set(child, rest, value)
	return obj
}

func containerFor(next Segment) any {
	if next.isIndex {
		return make([]any, 0)
	}
	return make(map[string]any)
}
