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

package macros

const ctx = "duk_context *"

// Duktape lists the Duktape API entry points that are only defined as macros.
var Duktape = Table{
	Func(ctx, "duk_create_heap_default"),
	Func(Void, "duk_xmove_top", P(ctx, "to_ctx"), P(ctx, "from_ctx"), P("duk_idx_t", "count")),
	Func(Void, "duk_xcopy_top", P(ctx, "to_ctx"), P(ctx, "from_ctx"), P("duk_idx_t", "count")),
	Func("const char *", "duk_push_string_file", P(ctx, "ctx"), P("const char *", "path")),
	Func("duk_idx_t", "duk_push_thread", P(ctx, "ctx")),
	Func("duk_idx_t", "duk_push_thread_new_globalenv", P(ctx, "ctx")),
	Func("duk_idx_t", "duk_push_error_object", P(ctx, "ctx"), P("duk_errcode_t", "err_code"), P("const char *", "fmt")),
	Func("void *", "duk_push_buffer", P(ctx, "ctx"), P("duk_size_t", "size"), P("duk_bool_t", "dynamic")),
	Func("void *", "duk_push_fixed_buffer", P(ctx, "ctx"), P("duk_size_t", "size")),
	Func("void *", "duk_push_dynamic_buffer", P(ctx, "ctx"), P("duk_size_t", "size")),
	Func(Void, "duk_push_external_buffer", P(ctx, "ctx")),
	Func("duk_bool_t", "duk_is_callable", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_primitive", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_object_coercible", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_eval_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_range_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_reference_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_syntax_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_type_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("duk_bool_t", "duk_is_uri_error", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func(Void, "duk_require_type_mask", P(ctx, "ctx"), P("duk_idx_t", "index"), P("duk_uint_t", "mask")),
	Func(Void, "duk_require_callable", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func(Void, "duk_require_object_coercible", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func("void *", "duk_to_buffer", P(ctx, "ctx"), P("duk_idx_t", "index"), P("duk_size_t *", "out_size")),
	Func("void *", "duk_to_fixed_buffer", P(ctx, "ctx"), P("duk_idx_t", "index"), P("duk_size_t *", "out_size")),
	Func("void *", "duk_to_dynamic_buffer", P(ctx, "ctx"), P("duk_idx_t", "index"), P("duk_size_t *", "out_size")),
	Func("const char *", "duk_safe_to_string", P(ctx, "ctx"), P("duk_idx_t", "index")),
	Func(Void, "duk_eval", P(ctx, "ctx")),
	Func(Void, "duk_eval_noresult", P(ctx, "ctx")),
	Func("duk_int_t", "duk_peval", P(ctx, "ctx")),
	Func("duk_int_t", "duk_peval_noresult", P(ctx, "ctx")),
	Func(Void, "duk_compile", P(ctx, "ctx"), P("duk_uint_t", "flags")),
	Func("duk_int_t", "duk_pcompile", P(ctx, "ctx"), P("duk_uint_t", "flags")),
	Func(Void, "duk_eval_string", P(ctx, "ctx"), P("const char *", "src")),
	Func(Void, "duk_eval_string_noresult", P(ctx, "ctx"), P("const char *", "src")),
	Func("duk_int_t", "duk_peval_string", P(ctx, "ctx"), P("const char *", "src")),
	Func("duk_int_t", "duk_peval_string_noresult", P(ctx, "ctx"), P("const char *", "src")),
	Func(Void, "duk_compile_string", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "src")),
	Func(Void, "duk_compile_string_filename", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "src")),
	Func("duk_int_t", "duk_pcompile_string", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "src")),
	Func("duk_int_t", "duk_pcompile_string_filename", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "src")),
	Func(Void, "duk_eval_lstring", P(ctx, "ctx"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func(Void, "duk_eval_lstring_noresult", P(ctx, "ctx"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func("duk_int_t", "duk_peval_lstring", P(ctx, "ctx"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func("duk_int_t", "duk_peval_lstring_noresult", P(ctx, "ctx"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func(Void, "duk_compile_lstring", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func(Void, "duk_compile_lstring_filename", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func("duk_int_t", "duk_pcompile_lstring", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func("duk_int_t", "duk_pcompile_lstring_filename", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "buf"), P("duk_size_t", "len")),
	Func(Void, "duk_eval_file", P(ctx, "ctx"), P("const char *", "path")),
	Func(Void, "duk_eval_file_noresult", P(ctx, "ctx"), P("const char *", "path")),
	Func("duk_int_t", "duk_peval_file", P(ctx, "ctx"), P("const char *", "path")),
	Func("duk_int_t", "duk_peval_file_noresult", P(ctx, "ctx"), P("const char *", "path")),
	Func(Void, "duk_compile_file", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "path")),
	Func("duk_int_t", "duk_pcompile_file", P(ctx, "ctx"), P("duk_uint_t", "flags"), P("const char *", "path")),
	Func(Void, "duk_dump_context_stdout", P(ctx, "ctx")),
	Func(Void, "duk_dump_context_stderr", P(ctx, "ctx")),
}
