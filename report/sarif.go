package report

import (
	"encoding/json"
	"fmt"
	"io"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// WriteSARIF exports doc's dangers as a SARIF 2.1.0 run, the same
// enrichment the teacher offers for its own rule-engine findings, now
// driven off exfiltration/infiltration dangers instead of rule matches.
func WriteSARIF(w io.Writer, doc *Document) error {
	r, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("doublex-go", "https://github.com/k-gruenberg/doublex-go")

	seen := map[string]bool{}
	addRule := func(class string) {
		if seen[class] {
			return
		}
		seen[class] = true
		run.AddRule(class).
			WithDescription(ruleDescription(class)).
			WithName(class).
			WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("warning"))
	}

	addDangers := func(side string, dangers []Danger) {
		for _, d := range dangers {
			addRule(d.Class)
			addResult(run, side, d)
		}
	}
	addDangers("bp", doc.BP.ExfiltrationDangers)
	addDangers("bp", doc.BP.InfiltrationDangers)
	addDangers("bp", doc.BP.ViolationsWithoutSensitiveAPI)
	addDangers("cs", doc.CS.ExfiltrationDangers)
	addDangers("cs", doc.CS.InfiltrationDangers)
	addDangers("cs", doc.CS.ViolationsWithoutSensitiveAPI)

	r.AddRun(run)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func ruleDescription(class string) string {
	switch class {
	case "bp_exfiltration":
		return "Background-page data flow from a sensitive source to a renderer-reachable sink"
	case "bp_infiltration_uxss":
		return "Background-page data flow from attacker-controlled input to a DOM/eval sink without sanitization"
	case "cs_exfiltration":
		return "Content-script data flow from a sensitive source to a renderer-reachable sink"
	case "cs_infiltration_uxss":
		return "Content-script data flow from attacker-controlled input to a DOM sink without sanitization"
	case "bp_unchecked_privileged_sink":
		return "Privileged API reachable from a content-script message without an intervening sender check"
	default:
		return class
	}
}

func addResult(run *sarif.Run, side string, d Danger) {
	message := fmt.Sprintf("%s: %s -> %s (%s)", d.Class, d.SourceAPI, d.SinkAPI, side)

	result := run.CreateResultForRule(d.Class).WithMessage(sarif.NewTextMessage(message))
	result.WithLocations([]*sarif.Location{sarifLocation(d.Rendezvous.Filename, d.Rendezvous.LineOfCode, message)})

	var locs []*sarif.ThreadFlowLocation
	for _, n := range d.FromFlow {
		locs = append(locs, sarif.NewThreadFlowLocation().WithLocation(
			sarifLocation(n.Filename, n.LineOfCode, "source: "+n.Identifier)))
	}
	for _, n := range d.ToFlow {
		locs = append(locs, sarif.NewThreadFlowLocation().WithLocation(
			sarifLocation(n.Filename, n.LineOfCode, "sink: "+n.Identifier)))
	}
	if len(locs) > 0 {
		threadFlow := sarif.NewThreadFlow().WithLocations(locs)
		codeFlow := sarif.NewCodeFlow().
			WithThreadFlows([]*sarif.ThreadFlow{threadFlow}).
			WithMessage(sarif.NewTextMessage(message))
		result.WithCodeFlows([]*sarif.CodeFlow{codeFlow})
	}
}

func sarifLocation(filename, lineOfCode, message string) *sarif.Location {
	return sarif.NewLocation().
		WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filename)).
				WithRegion(sarif.NewRegion()),
		).
		WithMessage(sarif.NewTextMessage(message))
}
