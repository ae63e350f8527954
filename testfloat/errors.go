// Copyright 2025 go-softfloat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testfloat

import "github.com/pkg/errors"

var (
	// ErrMalformedVector is returned for a line or value that does not
	// follow the vector syntax.
	ErrMalformedVector = errors.New("malformed test vector")

	// ErrUnknownOp is returned for an operation name missing from the
	// registry.
	ErrUnknownOp = errors.New("unknown operation")
)
