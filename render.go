package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"recurrence/internal/model"
)

// renderJSON marshals v with canonical key ordering. Struct fields would
// serialize in declaration order, so v is first marshaled and decoded back
// into generic maps (numbers kept verbatim via UseNumber); encoding/json
// then writes every map's keys in sorted order at every depth, while
// arrays keep their original order.
func renderJSON(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func renderExpandText(result *model.ExpandResult) string {
	out := fmt.Sprintf("tz=%s count=%d\n", result.Tz, result.Count)
	for _, occ := range result.Occurrences {
		out += fmt.Sprintf("%s  (%s utc)  source=%s rule_index=%d\n",
			occ.StartLocal, occ.StartUTC, occ.Source, occ.RuleIndex)
	}
	return out
}

func renderFindingsText(f *model.Findings) string {
	out := ""
	for _, e := range f.Errors {
		out += fmt.Sprintf("ERROR %s: %s\n", e.Code, e.Message)
		if e.Details != "" {
			out += fmt.Sprintf("       %s\n", e.Details)
		}
	}
	for _, w := range f.Warnings {
		out += fmt.Sprintf("WARN  %s: %s\n", w.Code, w.Message)
		if w.Details != "" {
			out += fmt.Sprintf("       %s\n", w.Details)
		}
	}
	for _, h := range f.Hints {
		out += fmt.Sprintf("HINT  %s: %s\n", h.Code, h.Message)
		if h.Details != "" {
			out += fmt.Sprintf("       %s\n", h.Details)
		}
	}
	if out == "" {
		out = "no findings\n"
	}
	return out
}

func renderExplainText(r *model.ExplainResult) string {
	out := fmt.Sprintf("at=%s included=%v\n", r.At, r.Included)
	if r.Included {
		out += fmt.Sprintf("generated_by=%s", r.GeneratedBy)
		if r.GeneratedRuleIndex != nil {
			out += fmt.Sprintf(" rule_index=%d", *r.GeneratedRuleIndex)
		}
		out += "\n"
	} else if r.ExcludedBy != "" {
		out += fmt.Sprintf("excluded_by=%s\n", r.ExcludedBy)
	}
	for _, n := range r.Notes {
		out += fmt.Sprintf("note: %s\n", n)
	}
	return out
}
