// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggplot

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/gogpu/ggplot/internal/reactive"
)

// EquationID identifies an equation for as long as it is in its list.
// Removing other equations does not change it.
type EquationID uuid.UUID

func newEquationID() EquationID {
	return EquationID(uuid.New())
}

// String returns the canonical UUID form of id.
func (id EquationID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero value.
func (id EquationID) IsZero() bool {
	return id == EquationID{}
}

// Equation is an entry of an equation list.
type Equation struct {
	ID   EquationID
	Text string
}

// Equations is an ordered list of equation texts.
//
// Positions follow list order: removing an equation shifts the later ones
// down by one. An index outside [0, Len()) panics, as slice indexing does.
// Equations is not safe for concurrent use.
type Equations struct {
	list []Equation
	rev  *reactive.Value[uint64]
}

// NewEquations returns a list holding texts in order.
func NewEquations(texts ...string) *Equations {
	e := &Equations{rev: reactive.New[uint64](0)}
	for _, t := range texts {
		e.list = append(e.list, Equation{ID: newEquationID(), Text: t})
	}
	return e
}

// Add appends an empty equation and returns its id.
func (e *Equations) Add() EquationID {
	return e.AddText("")
}

// AddText appends an equation with the given text and returns its id.
func (e *Equations) AddText(text string) EquationID {
	id := newEquationID()
	e.list = append(e.list, Equation{ID: id, Text: text})
	e.changed()
	return id
}

// Remove deletes the equation at index.
func (e *Equations) Remove(index int) {
	e.check(index)
	e.list = slices.Delete(e.list, index, index+1)
	e.changed()
}

// Update replaces the text of the equation at index. Setting the current
// text again is not a change.
func (e *Equations) Update(index int, text string) {
	e.check(index)
	if e.list[index].Text == text {
		return
	}
	e.list[index].Text = text
	e.changed()
}

// Len returns the number of equations.
func (e *Equations) Len() int { return len(e.list) }

// At returns the equation at index.
func (e *Equations) At(index int) Equation {
	e.check(index)
	return e.list[index]
}

// Text returns the text of the equation at index.
func (e *Equations) Text(index int) string { return e.At(index).Text }

// ID returns the id of the equation at index.
func (e *Equations) ID(index int) EquationID { return e.At(index).ID }

// Index returns the current position of id.
func (e *Equations) Index(id EquationID) (int, bool) {
	i := slices.IndexFunc(e.list, func(eq Equation) bool { return eq.ID == id })
	return i, i >= 0
}

// Texts returns the equation texts in order.
func (e *Equations) Texts() []string {
	out := make([]string, len(e.list))
	for i, eq := range e.list {
		out[i] = eq.Text
	}
	return out
}

// Snapshot returns a copy of the list.
func (e *Equations) Snapshot() []Equation {
	return slices.Clone(e.list)
}

// Subscribe registers fn to be called after every change to the list.
func (e *Equations) Subscribe(fn func()) (cancel func()) {
	return e.rev.Subscribe(func(uint64) { fn() })
}

// Revision counts the changes made to the list.
func (e *Equations) Revision() uint64 { return e.rev.Get() }

func (e *Equations) changed() {
	e.rev.Set(e.rev.Get() + 1)
}

func (e *Equations) check(index int) {
	if index < 0 || index >= len(e.list) {
		panic(fmt.Sprintf("ggplot: equation index %d out of range [0:%d]", index, len(e.list)))
	}
}
