// Package resolve turns a user-supplied name into exactly one record.
//
// Zero candidates is an error, one candidate is used as is, and several
// candidates are handed to a Chooser. Nothing here ever picks the first of
// several candidates on its own.
package resolve

import "slices"

// Choice is one selectable candidate.
type Choice struct {
	Label string
	Value string
}

// Chooser picks one value from several choices.
type Chooser interface {
	Select(message string, choices []Choice) (string, error)
}

// MultiChooser picks any number of values; selected values start checked.
type MultiChooser interface {
	MultiSelect(message string, choices []Choice, selected []string) ([]string, error)
}

// Request describes what is being resolved, for prompts and errors.
type Request struct {
	// What names the record kind, e.g. "team" or "workflow state".
	What string
	// Query is the user's search text; empty when the candidates were not searched.
	Query string
	// Message is shown when the user has to choose.
	Message string
}

// One applies the zero/one/many policy to candidates.
func One[T any](chooser Chooser, req Request, candidates []T, describe func(T) Choice) (T, error) {
	var zero T
	switch len(candidates) {
	case 0:
		return zero, &NotFoundError{What: req.What, Query: req.Query}
	case 1:
		return candidates[0], nil
	}

	choices := make([]Choice, len(candidates))
	for i, c := range candidates {
		choices[i] = describe(c)
	}

	value, err := chooser.Select(message(req), choices)
	if err != nil {
		return zero, err
	}
	i := slices.IndexFunc(choices, func(c Choice) bool { return c.Value == value })
	if i < 0 {
		return zero, &NotFoundError{What: req.What, Query: value}
	}
	return candidates[i], nil
}

func message(req Request) string {
	if req.Message != "" {
		return req.Message
	}
	return "Select " + req.What
}

// Strict is the non-interactive Chooser: it fails on every ambiguity.
type Strict struct {
	What  string
	Query string
}

// Select always fails, naming the candidates.
func (s Strict) Select(_ string, choices []Choice) (string, error) {
	return "", &AmbiguousError{What: s.What, Query: s.Query, Candidates: labels(choices)}
}

// MultiSelect always fails, naming the candidates.
func (s Strict) MultiSelect(_ string, choices []Choice, _ []string) ([]string, error) {
	return nil, &AmbiguousError{What: s.What, Query: s.Query, Candidates: labels(choices)}
}

// StrictOne resolves with a Strict chooser bound to req.
func StrictOne[T any](req Request, candidates []T, describe func(T) Choice) (T, error) {
	return One(Strict{What: req.What, Query: req.Query}, req, candidates, describe)
}

func labels(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}
