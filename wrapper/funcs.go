// Copyright 2025 Google LLC
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

package wrapper

import "github.com/SkylerLipthay/duktape-go/macros"

type (
	funcField struct {
		Name      string
		Type      string
		Separator string
	}

	function struct {
		Name       string
		ReturnType string
		Void       bool
		Params     []funcField
	}
)

func newFunc(desc macros.Descriptor) *function {
	fn := &function{
		Name:       desc.Name,
		ReturnType: desc.Return,
		Void:       desc.IsVoid(),
	}
	for i, p := range desc.Params {
		param := funcField{
			Name: p.Name,
			Type: p.Type,
		}
		if i < len(desc.Params)-1 {
			param.Separator = ", "
		}
		fn.Params = append(fn.Params, param)
	}
	return fn
}
