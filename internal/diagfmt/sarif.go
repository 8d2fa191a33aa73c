package diagfmt

import (
	"encoding/json"
	"io"

	"rillint/internal/diag"
	"rillint/internal/source"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID   string       `json:"id"`
	Name string       `json:"name,omitempty"`
	Text *sarifText   `json:"shortDescription,omitempty"`
	Conf *sarifConfig `json:"defaultConfiguration,omitempty"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Related   []sarifLocation `json:"relatedLocations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	Physical sarifPhysical `json:"physicalLocation"`
	Message  *sarifText    `json:"message,omitempty"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

type sarifFix struct {
	Description sarifText           `json:"description"`
	Changes     []sarifArtifactEdit `json:"artifactChanges"`
}

type sarifArtifactEdit struct {
	Artifact     sarifArtifact      `json:"artifactLocation"`
	Replacements []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	Deleted  sarifRegion `json:"deletedRegion"`
	Inserted sarifText   `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

func sarifPhys(fs *source.FileSet, span source.Span) sarifPhysical {
	start, end := fs.Resolve(span)
	uri := ""
	if f, ok := fs.Lookup(span.File); ok {
		uri = f.FormatPath("relative", fs.BaseDir())
	}
	return sarifPhysical{
		Artifact: sarifArtifact{URI: uri},
		Region:   sarifRegion{StartLine: start.Line, StartColumn: start.Col, EndLine: end.Line, EndColumn: end.Col},
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Rules lists every
// code that appears in the bag; lint findings use the lint name as rule id.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion}},
		Results: []sarifResult{},
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !bag.HasErrors()}}
	}

	seen := map[string]bool{}
	ctx := diag.FixBuildContext{FileSet: fs}
	for _, d := range bag.Items() {
		id := d.Code.ID()
		if d.Lint != "" {
			id = d.Lint
		}
		if !seen[id] {
			seen[id] = true
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:   id,
				Name: d.Code.ID(),
				Text: &sarifText{Text: d.Code.Title()},
				Conf: &sarifConfig{Level: sarifLevel(d.Severity)},
			})
		}
		res := sarifResult{
			RuleID:    id,
			Level:     sarifLevel(d.Severity),
			Message:   sarifText{Text: d.Message},
			Locations: []sarifLocation{{Physical: sarifPhys(fs, d.Primary)}},
		}
		for _, n := range d.Notes {
			if n.Span == (source.Span{}) {
				res.Message.Text += "\nnote: " + n.Msg
				continue
			}
			res.Related = append(res.Related, sarifLocation{Physical: sarifPhys(fs, n.Span), Message: &sarifText{Text: n.Msg}})
		}
		for _, f := range d.Fixes {
			resolved, err := f.Resolve(ctx)
			if err != nil {
				continue
			}
			fix := sarifFix{Description: sarifText{Text: resolved.Title}}
			for _, e := range resolved.Edits {
				phys := sarifPhys(fs, e.Span)
				fix.Changes = append(fix.Changes, sarifArtifactEdit{
					Artifact:     phys.Artifact,
					Replacements: []sarifReplacement{{Deleted: phys.Region, Inserted: sarifText{Text: e.NewText}}},
				})
			}
			res.Fixes = append(res.Fixes, fix)
		}
		run.Results = append(run.Results, res)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}})
}
