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
package lower

import "github.com/veryl-lang/veryl-analyzer/internal/token"

// The non-terminal names this package dispatches on. These mirror the
// grammar rule names visible in the original parser's generated walker
// (Expression, BinaryOperator, ...); a leaf token carries the empty Kind and
// is read via Node.Leaf/Node.Text directly instead of one of these.
const (
	KindModule          token.Kind = "ModuleDeclaration"
	KindInterface       token.Kind = "InterfaceDeclaration"
	KindPackage         token.Kind = "PackageDeclaration"
	KindForGenerate     token.Kind = "ForGenerate"
	KindIfGenerate      token.Kind = "IfGenerate"
	KindIfGenerateBranch token.Kind = "IfGenerateBranch"
	KindCaseStatement   token.Kind = "CaseStatement"
	KindCaseBranch      token.Kind = "CaseBranch"
	KindIfStatement      token.Kind = "IfStatement"
	KindIfResetStatement token.Kind = "IfResetStatement"
	KindAssignStatement  token.Kind = "AssignStatement"
	KindConnectStatement token.Kind = "ConnectStatement"
	KindInstanceDecl    token.Kind = "InstanceDeclaration"
	KindPortConnection  token.Kind = "PortConnection"

	KindIdentifier        token.Kind = "Identifier"
	KindNumber            token.Kind = "Number"
	KindBinaryExpression   token.Kind = "BinaryExpression"
	KindUnaryExpression    token.Kind = "UnaryExpression"
	KindIfExpression       token.Kind = "IfExpression"
	KindConcatenation      token.Kind = "Concatenation"
	KindArrayLiteral       token.Kind = "ArrayLiteral"
	KindStructConstructor  token.Kind = "StructConstructor"
	KindFunctionCall       token.Kind = "FunctionCall"
	KindSystemFunctionCall token.Kind = "SystemFunctionCall"
)
