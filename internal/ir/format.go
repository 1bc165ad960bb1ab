// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veryl-lang/veryl-analyzer/internal/intern"
)

// Format renders the whole lowered output deterministically: one block per
// component (see Component.Format), in the order components were produced
// (source declaration order, per spec.md §6 -- never by map iteration, which
// Go randomises). `velc ir` prints this text.
func (ir *Ir) Format(it *intern.Table) string {
	var b strings.Builder

	for _, c := range ir.Components {
		b.WriteString(c.Format(it))
	}

	return b.String()
}

// Format renders one component: its kind/name header, its ports (sorted by
// name) and remaining variables (sorted by VarID) for determinism, since
// Ports and Variables are maps, and its processes/instances in declaration
// order.
func (c *Component) Format(it *intern.Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s {\n", componentKindString(c.Kind), it.GetStr(c.Name))

	for _, name := range sortedVarNames(c) {
		v := c.Variables[c.Ports[name]]
		if v == nil {
			continue
		}

		fmt.Fprintf(&b, "  port %s %s: %s\n", v.Kind, name, v.Type.String())
	}

	for _, id := range sortedVarIDs(c) {
		v := c.Variables[id]
		if _, isPort := portName(c, id); isPort {
			continue
		}

		fmt.Fprintf(&b, "  %s %s: %s\n", v.Kind, pathString(it, v.Path), v.Type.String())
	}

	for _, p := range c.Processes {
		fmt.Fprintf(&b, "  process %s (%d statements)\n", procKindString(p.Kind), len(p.Body))
	}

	for _, inst := range c.Instances {
		fmt.Fprintf(&b, "  instance %s (%d connections)\n", it.GetStr(inst.Name), len(inst.PortConns))
	}

	b.WriteString("}\n")

	return b.String()
}

func componentKindString(k ComponentKind) string {
	switch k {
	case ComponentModule:
		return "module"
	case ComponentInterface:
		return "interface"
	case ComponentPackage:
		return "package"
	default:
		return "unknown"
	}
}

func procKindString(k ProcKind) string {
	switch k {
	case ProcAlwaysComb:
		return "always_comb"
	case ProcAlwaysFF:
		return "always_ff"
	case ProcInitial:
		return "initial"
	default:
		return "unknown"
	}
}

func portName(c *Component, id VarID) (string, bool) {
	for name, pid := range c.Ports {
		if pid == id {
			return name, true
		}
	}

	return "", false
}

func sortedVarNames(c *Component) []string {
	names := make([]string, 0, len(c.Ports))
	for name := range c.Ports {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func sortedVarIDs(c *Component) []VarID {
	ids := make([]VarID, 0, len(c.Variables))
	for id := range c.Variables {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func pathString(it *intern.Table, path VarPath) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = it.GetStr(id)
	}

	return strings.Join(parts, ".")
}
