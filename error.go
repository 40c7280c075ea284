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
)

// ----------------------------------------------------------------------------

// ErrInvalidCall is matched by every *InvalidCallError through errors.Is.
var ErrInvalidCall = errors.New("invalid call argument(s)")

// InvalidCallError is returned when no registered implementation accepts
// the call arguments.
type InvalidCallError struct {
	Name  string
	Args  Args
	Tried int // number of candidates scanned
}

func (p *InvalidCallError) Error() string {
	return p.Name + "(" + p.Args.String() + "): " + ErrInvalidCall.Error()
}

func (p *InvalidCallError) Unwrap() error {
	return ErrInvalidCall
}

// ----------------------------------------------------------------------------
