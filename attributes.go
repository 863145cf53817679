/*
Copyright © 2021 the CFDS authors.
This file is part of CFDS.

CFDS is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

CFDS is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with CFDS.  If not, see <http://www.gnu.org/licenses/>.
*/

package cfds

// Attributes is an insertion-ordered attribute map. The zero value is not
// usable; create instances with NewAttributes.
type Attributes struct {
	keys []string
	m    map[string]interface{}
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{m: make(map[string]interface{})}
}

// Set stores val under key. Setting an existing key replaces its value but
// keeps its original position.
func (a *Attributes) Set(key string, val interface{}) {
	if _, ok := a.m[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.m[key] = val
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (interface{}, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.m[key]
	return v, ok
}

// Del removes key and returns its former value.
func (a *Attributes) Del(key string) (interface{}, bool) {
	v, ok := a.m[key]
	if !ok {
		return nil, false
	}
	delete(a.m, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the attribute names in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.keys...)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Clone returns an independent copy of a, or nil for a nil receiver.
// Attribute values are shared; the key order and map structure are not.
func (a *Attributes) Clone() *Attributes {
	if a == nil {
		return nil
	}
	c := NewAttributes()
	for _, k := range a.keys {
		c.Set(k, a.m[k])
	}
	return c
}

// Merge copies every attribute of b into a, in b's order. Keys already
// present in a are overwritten in place. b is never modified; a nil b is a
// no-op.
func (a *Attributes) Merge(b *Attributes) {
	if b == nil {
		return
	}
	for _, k := range b.keys {
		a.Set(k, b.m[k])
	}
}
