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

package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/SkylerLipthay/duktape-go/features"
	"github.com/SkylerLipthay/duktape-go/macros"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "table [MACRO...]",
		Aliases: []string{"ls"},
		Short:   "List the wrapped macros",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMacros(cmd.OutOrStdout(), macros.Duktape, args)
		},
	}
}

// listMacros lists the macros of the table, or only the named ones.
func listMacros(w io.Writer, table macros.Table, names []string) error {
	if len(names) == 0 {
		names = table.Names()
	}
	index := make(map[string]int, len(table))
	for i, desc := range table {
		index[desc.Name] = i
	}
	var data [][]string
	for _, name := range names {
		desc, ok := table.Lookup(name)
		if !ok {
			return errors.Errorf("%s is not a wrapped macro", name)
		}
		data = append(data, []string{strconv.Itoa(index[name]), desc.Return, desc.Name, desc.ParamList()})
	}
	t := newTable(w, []string{"#", "RETURN", "NAME", "PARAMETERS"})
	t.AppendBulk(data)
	t.Render()
	return nil
}

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features [FEATURE...]",
		Short: "List the optional features and their build tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFeatures(cmd.OutOrStdout(), args)
		},
	}
}

// listFeatures lists the known features, or only the named ones.
func listFeatures(w io.Writer, names []string) error {
	if len(names) == 0 {
		names = features.Names()
	}
	var data [][]string
	for _, name := range names {
		t, ok := features.Lookup(name)
		if !ok {
			return errors.Errorf("unknown feature %q: known features are %s", name, strings.Join(features.Names(), ", "))
		}
		data = append(data, []string{t.Name, t.Tag(), t.Define, strings.Join(t.Undefs, " "), t.Doc})
	}
	table := newTable(w, []string{"NAME", "BUILD TAG", "DEFINE", "UNDEFINES", "DESCRIPTION"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
