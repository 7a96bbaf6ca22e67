package aggregation

import "strings"

// scoredResponse is a scale response joined with its competency and the
// relationship role of the evaluation it came from.
type scoredResponse struct {
	competencyID string
	attrs        scaleAttrs
	role         string
	value        float64
}

// openTextBucket keeps comments per competency in encounter order.
type openTextBucket struct {
	order    []string
	comments map[string][]string
}

func (b *openTextBucket) add(competencyID, comment string) {
	if b.comments == nil {
		b.comments = make(map[string][]string)
	}
	if _, seen := b.comments[competencyID]; !seen {
		b.order = append(b.order, competencyID)
	}
	b.comments[competencyID] = append(b.comments[competencyID], comment)
}

// bucket is everything the engine needs about one evaluated person.
type bucket struct {
	evaluations []Evaluation
	scored      []scoredResponse
	openText    openTextBucket
}

// classification is the outcome of partitioning a snapshot by person.
type classification struct {
	byPerson map[string]*bucket
	// skipped counts responses dropped for dangling references, a
	// competency of unknown type or a scale answer without a value.
	skipped int
}

// classify partitions evaluations and responses by evaluated person. A
// response belongs to the person of the evaluation it resolves to through the
// index; blank open-text answers are discarded.
func classify(snap Snapshot, idx index) classification {
	out := classification{byPerson: make(map[string]*bucket)}

	for _, e := range snap.Evaluations {
		b := out.byPerson[e.PersonID]
		if b == nil {
			b = &bucket{}
			out.byPerson[e.PersonID] = b
		}
		b.evaluations = append(b.evaluations, e)
	}

	for _, r := range snap.Responses {
		eval, ok := idx.evaluations[r.EvaluationID]
		if !ok {
			out.skipped++
			continue
		}
		b := out.byPerson[eval.PersonID]
		if b == nil {
			out.skipped++
			continue
		}

		if _, attrs, ok := idx.scale(r.CompetencyID); ok {
			if r.Unanswered {
				out.skipped++
				continue
			}
			b.scored = append(b.scored, scoredResponse{
				competencyID: r.CompetencyID,
				attrs:        attrs,
				role:         eval.Relationship,
				value:        r.Value,
			})
			continue
		}

		if _, ok := idx.openText(r.CompetencyID); ok {
			if text := strings.TrimSpace(r.Comment); text != "" {
				b.openText.add(r.CompetencyID, text)
			}
			continue
		}

		out.skipped++
	}

	return out
}
