// Package report assembles the structured finding document per extension
// (§6 "Finding document (produced)") and serializes it as JSON or SARIF.
package report

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/rules"
)

// NodeDescriptor is one entry of a from_flow/to_flow list: an ordered
// position, source location, filename, the identifier name, and the line of
// code it appears on (§6).
type NodeDescriptor struct {
	No             int    `json:"no"`
	Location       string `json:"location"`
	Filename       string `json:"filename"`
	Identifier     string `json:"identifier"`
	LineOfCode     string `json:"line_of_code"`
}

// Rendezvous describes the common ancestor where a from_flow and a to_flow
// meet (§6).
type Rendezvous struct {
	Type       string `json:"type"`
	Location   string `json:"location"`
	Filename   string `json:"filename"`
	LineOfCode string `json:"line_of_code"`
}

// Danger is one finding: a source→sink flow pair plus their rendezvous
// point and, when the matcher produced more than one candidate flow for the
// same source/sink pair, its ordinal "k/N" position (§6).
type Danger struct {
	Class          string           `json:"class"`
	SourceAPI      string           `json:"source_api"`
	SinkAPI        string           `json:"sink_api"`
	FromFlow       []NodeDescriptor `json:"from_flow"`
	ToFlow         []NodeDescriptor `json:"to_flow"`
	Rendezvous     Rendezvous       `json:"rendezvous"`
	DataFlowNumber string           `json:"data_flow_number,omitempty"`
}

// SideReport holds the four per-side lists of §6, one instance each for the
// background page and the content script.
type SideReport struct {
	ExfiltrationDangers               []Danger `json:"exfiltration_dangers"`
	InfiltrationDangers               []Danger `json:"infiltration_dangers"`
	ExtensionStorageAccesses          []NodeDescriptor `json:"extension_storage_accesses"`
	ViolationsWithoutSensitiveAPI     []Danger `json:"31_violations_without_sensitive_api_access"`
}

// CodeStats is the line/function count pair doublex.py reports per side.
type CodeStats struct {
	Lines     int `json:"lines"`
	Functions int `json:"functions"`
}

// Benchmarks is the per-phase timing breakdown doublex.py's "benchmarks" key
// records.
type Benchmarks struct {
	ParseSeconds     float64 `json:"parse_seconds"`
	PDGSeconds       float64 `json:"pdg_seconds"`
	RulesSeconds     float64 `json:"rules_seconds"`
	TotalSeconds     float64 `json:"total_seconds"`
}

// Crash records a script that was marked crashed (ParseError or
// AbortDeadlineExceeded, §7).
type Crash struct {
	Side    string `json:"side"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Document is the top-level per-extension finding document (§6).
type Document struct {
	RunID                     string                `json:"run_id"`
	ExtensionPath             string                `json:"extension_path"`
	ContentScriptInjectedInto bool                  `json:"content_script_injected_into"`
	BP                        SideReport            `json:"bp"`
	CS                        SideReport            `json:"cs"`
	CodeStats                 map[string]CodeStats  `json:"code_stats"`
	Benchmarks                map[string]Benchmarks `json:"benchmarks"`
	Crashes                   []Crash               `json:"crashes"`
}

// NewDocument allocates a Document stamped with a fresh run id — the "stable
// external id" uuid fills for whole-document identity (SPEC_FULL's DOMAIN
// STACK note on google/uuid).
func NewDocument(extensionPath string) *Document {
	return &Document{
		RunID:         uuid.NewString(),
		ExtensionPath: extensionPath,
		CodeStats:     make(map[string]CodeStats),
		Benchmarks:    make(map[string]Benchmarks),
	}
}

// AddCrash appends a crash record.
func (d *Document) AddCrash(side, reason, message string) {
	d.Crashes = append(d.Crashes, Crash{Side: side, Reason: reason, Message: message})
}

func descriptorsFromFlow(flow []*ast.Node) []NodeDescriptor {
	out := make([]NodeDescriptor, 0, len(flow))
	for i, n := range flow {
		out = append(out, NodeDescriptor{
			No:         i + 1,
			Location:   locationString(n),
			Filename:   n.File,
			Identifier: n.Name(),
			LineOfCode: lineOfCode(n),
		})
	}
	return out
}

func locationString(n *ast.Node) string {
	l := n.Loc
	return fmt.Sprintf("%d:%d-%d:%d", l.StartLine, l.StartCol, l.EndLine, l.EndCol)
}

// lineOfCode best-effort renders the node's own surface syntax: an
// Identifier's name, a Literal's value, or its Kind as a fallback for
// anything else (the parser keeps no raw source slice on Node, so this is
// an approximation, not a source-text extraction).
func lineOfCode(n *ast.Node) string {
	switch n.Kind {
	case ast.KindIdentifier:
		return n.Name()
	case ast.KindLiteral:
		return fmt.Sprintf("%v", n.Attr("value"))
	default:
		return string(n.Kind)
	}
}

// DangerFromFinding converts a rules.Finding — the internal matcher output —
// into the JSON-serializable Danger shape.
func DangerFromFinding(f rules.Finding, total int) Danger {
	d := Danger{
		Class:     f.Class,
		SourceAPI: f.SourceAPI,
		SinkAPI:   f.SinkAPI,
		FromFlow:  descriptorsFromFlow(f.DoubleFlow.FromFlow),
		ToFlow:    descriptorsFromFlow(f.DoubleFlow.ToFlow),
		Rendezvous: Rendezvous{
			Type:       string(f.DoubleFlow.Rendezvous.Kind),
			Location:   locationString(f.DoubleFlow.Rendezvous),
			Filename:   f.DoubleFlow.Rendezvous.File,
			LineOfCode: lineOfCode(f.DoubleFlow.Rendezvous),
		},
	}
	if total > 1 {
		d.DataFlowNumber = fmt.Sprintf("%d/%d", f.DoubleFlow.Ordinal, f.DoubleFlow.Total)
	}
	return d
}

// DangersFromFindings converts a full findings slice, preserving order.
func DangersFromFindings(findings []rules.Finding) []Danger {
	out := make([]Danger, 0, len(findings))
	for _, f := range findings {
		out = append(out, DangerFromFinding(f, f.DoubleFlow.Total))
	}
	return out
}

// StorageAccessDescriptors converts raw storage-access call nodes into
// NodeDescriptors for the extension_storage_accesses list.
func StorageAccessDescriptors(calls []*ast.Node) []NodeDescriptor {
	return descriptorsFromFlow(calls)
}
