/*
 Copyright 2026 The GoPlus Authors (goplus.org)
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at
     http://www.apache.org/licenses/LICENSE-2.0
 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package shapes declares overload groups with every GoPlus naming form.
// It is loaded from export data by tests.
package shapes

import (
	"math"
	"strings"
)

const (
	GopPackage = true // to indicate this is a Go+ package
)

// -----------------------------------------------------------------------------

type Shape interface {
	Area() float64
}

type Rect struct {
	W, H float64
}

func (r Rect) Area() float64 { return r.W * r.H }

type Circle struct {
	R float64
}

func (c Circle) Area() float64 { return math.Pi * c.R * c.R }

// -----------------------------------------------------------------------------

func Area__0(r Rect) float64 { return r.Area() }
func Area__1(c Circle) float64 { return c.Area() }
func Area__2(s Shape) float64 { return s.Area() }

func Scale__0(s Shape, k float64) Shape { return s }
func Scale__1(r Rect, k float64) Shape { return Rect{r.W * k, r.H * k} }

func NewRect(w, h float64) Rect { return Rect{w, h} }
func NewSquare(side float64) Rect { return Rect{side, side} }
func NewUnit(shapes ...Shape) Rect { return Rect{1, 1} }

const Gopo_New = "NewRect,NewSquare,NewUnit"

func Join__0(a, b string) string { return a + b }
func JoinAll(parts ...string) string { return strings.Join(parts, "") }

const Gopo__Join = ",JoinAll"

// -----------------------------------------------------------------------------

type Canvas struct {
	Shapes []Shape
}

func (c *Canvas) Draw__0(s Shape) { c.Shapes = append(c.Shapes, s) }
func (c *Canvas) Draw__1(s Shape, fill string) { c.Shapes = append(c.Shapes, s) }
func (c *Canvas) DrawAll(shapes ...Shape) { c.Shapes = append(c.Shapes, shapes...) }
func (c *Canvas) FillRect(r Rect) { c.Shapes = append(c.Shapes, r) }
func (c *Canvas) FillAny(v ...any) {}
func FillCanvas(c *Canvas, name string) {}

const Gopo_Canvas_Fill = ".FillRect,FillCanvas,.FillAny"

const Gopo__Canvas__Paint = ".DrawAll,.FillRect"

// -----------------------------------------------------------------------------
