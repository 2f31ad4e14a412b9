// Package ast models the JavaScript abstract syntax tree consumed by the
// analysis core. It follows an ESTree-shaped contract: every Node carries a
// Kind, a Role describing its relation to its parent, ordered Children, a
// source Location, and a small Attrs map — see §3/§6 of the specification
// this module implements.
package ast

// Kind tags a Node with its ECMAScript grammar production. The set mirrors
// a standard ESTree grammar. KindUnknown is declared, but the parser does
// not produce it: unsupported productions are left out of the tree.
type Kind string

const (
	KindProgram   Kind = "Program"
	KindParseError Kind = "ParseError"
	KindUnknown   Kind = "Unknown"

	// Statements
	KindBlockStatement      Kind = "BlockStatement"
	KindExpressionStatement Kind = "ExpressionStatement"
	KindEmptyStatement      Kind = "EmptyStatement"
	KindDebuggerStatement   Kind = "DebuggerStatement"
	KindIfStatement         Kind = "IfStatement"
	KindForStatement        Kind = "ForStatement"
	KindForInStatement      Kind = "ForInStatement"
	KindForOfStatement      Kind = "ForOfStatement"
	KindWhileStatement      Kind = "WhileStatement"
	KindDoWhileStatement    Kind = "DoWhileStatement"
	KindSwitchStatement     Kind = "SwitchStatement"
	KindSwitchCase          Kind = "SwitchCase"
	KindBreakStatement      Kind = "BreakStatement"
	KindContinueStatement   Kind = "ContinueStatement"
	KindReturnStatement     Kind = "ReturnStatement"
	KindThrowStatement      Kind = "ThrowStatement"
	KindTryStatement        Kind = "TryStatement"
	KindCatchClause         Kind = "CatchClause"
	KindLabeledStatement    Kind = "LabeledStatement"

	// Declarations
	KindVariableDeclaration Kind = "VariableDeclaration"
	KindVariableDeclarator  Kind = "VariableDeclarator"
	KindFunctionDeclaration Kind = "FunctionDeclaration"
	KindClassDeclaration    Kind = "ClassDeclaration"

	// Expressions
	KindIdentifier             Kind = "Identifier"
	KindLiteral                Kind = "Literal"
	KindThisExpression         Kind = "ThisExpression"
	KindSuper                  Kind = "Super"
	KindArrayExpression        Kind = "ArrayExpression"
	KindObjectExpression       Kind = "ObjectExpression"
	KindProperty               Kind = "Property"
	KindFunctionExpression     Kind = "FunctionExpression"
	KindArrowFunctionExpression Kind = "ArrowFunctionExpression"
	KindClassExpression        Kind = "ClassExpression"
	KindClassBody              Kind = "ClassBody"
	KindMethodDefinition       Kind = "MethodDefinition"
	KindUnaryExpression        Kind = "UnaryExpression"
	KindUpdateExpression       Kind = "UpdateExpression"
	KindBinaryExpression       Kind = "BinaryExpression"
	KindLogicalExpression      Kind = "LogicalExpression"
	KindAssignmentExpression   Kind = "AssignmentExpression"
	KindConditionalExpression  Kind = "ConditionalExpression"
	KindSequenceExpression     Kind = "SequenceExpression"
	KindCallExpression         Kind = "CallExpression"
	KindNewExpression          Kind = "NewExpression"
	KindMemberExpression       Kind = "MemberExpression"
	KindSpreadElement          Kind = "SpreadElement"
	KindTemplateLiteral        Kind = "TemplateLiteral"
	KindTemplateElement        Kind = "TemplateElement"
	KindTaggedTemplateExpr     Kind = "TaggedTemplateExpression"
	KindYieldExpression        Kind = "YieldExpression"
	KindAwaitExpression        Kind = "AwaitExpression"
	KindMetaProperty           Kind = "MetaProperty"

	// Patterns
	KindArrayPattern      Kind = "ArrayPattern"
	KindObjectPattern     Kind = "ObjectPattern"
	KindAssignmentPattern Kind = "AssignmentPattern"
	KindRestElement       Kind = "RestElement"

	// Modules (not exercised by extension scripts directly, kept for parser completeness)
	KindImportDeclaration        Kind = "ImportDeclaration"
	KindImportSpecifier          Kind = "ImportSpecifier"
	KindImportDefaultSpecifier   Kind = "ImportDefaultSpecifier"
	KindImportNamespaceSpecifier Kind = "ImportNamespaceSpecifier"
	KindExportNamedDeclaration   Kind = "ExportNamedDeclaration"
	KindExportDefaultDeclaration Kind = "ExportDefaultDeclaration"
	KindExportAllDeclaration     Kind = "ExportAllDeclaration"
)

// IsStatement reports whether k is one of the Statement productions that
// control-flow edges connect (§3 "Edges").
func (k Kind) IsStatement() bool {
	switch k {
	case KindBlockStatement, KindExpressionStatement, KindEmptyStatement, KindDebuggerStatement,
		KindIfStatement, KindForStatement, KindForInStatement, KindForOfStatement,
		KindWhileStatement, KindDoWhileStatement, KindSwitchStatement, KindSwitchCase,
		KindBreakStatement, KindContinueStatement, KindReturnStatement, KindThrowStatement,
		KindTryStatement, KindCatchClause, KindLabeledStatement,
		KindVariableDeclaration, KindFunctionDeclaration, KindClassDeclaration, KindProgram:
		return true
	default:
		return false
	}
}

// IsFunction reports whether k introduces a function scope/carrier (§4.B Func model).
func (k Kind) IsFunction() bool {
	switch k {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression:
		return true
	default:
		return false
	}
}
