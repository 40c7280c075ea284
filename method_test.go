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

package overload

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------

type counter struct {
	n int
}

func (c *counter) inc() int {
	c.n++
	return c.n
}

func (c *counter) incBy(d int) int {
	c.n += d
	return c.n
}

func (c *counter) incAll(ds ...int) int {
	for _, d := range ds {
		c.n += d
	}
	return c.n
}

func TestMethod(t *testing.T) {
	inc := NewMethod((*counter).inc).Add((*counter).incBy).Add((*counter).incAll)
	assert.Equal(t, "inc", inc.Name())

	c := &counter{}
	m := inc.Bind(c)
	assert.Same(t, inc, m.Func())

	ret, err := m.Call()
	require.NoError(t, err)
	assert.Equal(t, []any{1}, ret)

	ret, err = m.Call(10)
	require.NoError(t, err)
	assert.Equal(t, []any{11}, ret)

	ret, err = m.Call(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{17}, ret)

	_, err = m.Call("x")
	assert.ErrorIs(t, err, ErrInvalidCall)
	assert.Equal(t, 17, c.n)
}

func TestMethodUnbound(t *testing.T) {
	inc := NewMethod((*counter).inc).Add((*counter).incBy)
	c := &counter{}
	ret, err := inc.Call(c, 5)
	require.NoError(t, err)
	assert.Equal(t, []any{5}, ret)

	idx, err := inc.Select(c, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = inc.Call()
	assert.ErrorIs(t, err, ErrInvalidCall)
	_, err = inc.Select()
	assert.ErrorIs(t, err, ErrInvalidCall)
}

func TestMethodReceiverUnchecked(t *testing.T) {
	type A struct{}
	m := NewMethod(func(self any) string { return "ok" }).
		Add(func(self any, args ...any) string { return "args" })
	assert.Equal(t, "ok", firstOf(m.Bind(A{}).Call()))
	assert.Equal(t, "args", firstOf(m.Bind(A{}).Call(1)))
	assert.Equal(t, "ok", firstOf(m.Bind(nil).Call()))
}

func TestStaticBind(t *testing.T) {
	m := New(func() string { return "ok" }).
		Add(func(args ...any) string { return "args" })
	b := m.Bind(&counter{})
	assert.Equal(t, "ok", firstOf(b.Call()))
	assert.Equal(t, "args", firstOf(b.Call(1)))

	_, err := b.Call(Kw("x", 1), Kw("x", 2))
	assert.ErrorIs(t, err, ErrInvalidCall)
}

func TestMethodReceiverMismatch(t *testing.T) {
	inc := NewMethod((*counter).inc).Add((*counter).incBy)

	_, err := inc.Call(5)
	assert.ErrorIs(t, err, ErrInvalidCall)
	var e *InvalidCallError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "inc", e.Name)
	assert.Equal(t, 1, e.Tried)

	c := counter{}
	_, err = inc.Bind(c).Call()
	assert.ErrorIs(t, err, ErrInvalidCall)
	_, err = inc.Bind(c).Call(3)
	assert.ErrorIs(t, err, ErrInvalidCall)
	assert.Equal(t, 0, c.n)

	ret, err := inc.Call(&c, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{2}, ret)
}

func TestMethodError(t *testing.T) {
	errClosed := errors.New("closed")
	m := NewMethod(func(c *counter, name string) error {
		if c.n < 0 {
			return errClosed
		}
		return nil
	}, Params("name"))
	_, err := m.Bind(&counter{n: -1}).Call(Kw("name", "x"))
	assert.Equal(t, errClosed, err)
	ret, err := m.Bind(&counter{}).Call("x")
	require.NoError(t, err)
	assert.Empty(t, ret)
}

func firstOf(ret []any, err error) any {
	if err != nil {
		return err
	}
	if len(ret) == 0 {
		return nil
	}
	return fmt.Sprint(ret[0])
}

// ----------------------------------------------------------------------------
