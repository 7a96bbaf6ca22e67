package aggregation

// scaleAttrs carries the grouping attributes only scale competencies have.
type scaleAttrs struct {
	dimension string
	group     string
}

// competencyKind is the resolved variant of a competency: scale carries its
// grouping attributes, open text carries nothing.
type competencyKind interface {
	isCompetencyKind()
}

type scaleKind struct{ scaleAttrs }

type openTextKind struct{}

func (scaleKind) isCompetencyKind()    {}
func (openTextKind) isCompetencyKind() {}

type indexedCompetency struct {
	Competency
	kind competencyKind
}

// index is the per-run lookup over competencies and evaluations.
type index struct {
	competencies map[string]indexedCompetency
	evaluations  map[string]Evaluation
	// scaleOrder lists scale competency ids once each, in first-seen order.
	scaleOrder []string
}

// resolveKind maps a type string to its variant; ok is false for anything
// other than scale or open text.
func resolveKind(c Competency) (competencyKind, bool) {
	switch c.Type {
	case TypeScale:
		return scaleKind{scaleAttrs{dimension: c.Dimension, group: c.Group}}, true
	case TypeOpenText:
		return openTextKind{}, true
	default:
		return nil, false
	}
}

// newIndex builds the lookups. Duplicate ids resolve to the last entry.
func newIndex(competencies []Competency, evaluations []Evaluation) index {
	idx := index{
		competencies: make(map[string]indexedCompetency, len(competencies)),
		evaluations:  make(map[string]Evaluation, len(evaluations)),
	}
	for _, c := range competencies {
		kind, ok := resolveKind(c)
		if !ok {
			// A later malformed duplicate still replaces an earlier valid one.
			delete(idx.competencies, c.ID)
			continue
		}
		idx.competencies[c.ID] = indexedCompetency{Competency: c, kind: kind}
	}
	for _, e := range evaluations {
		idx.evaluations[e.ID] = e
	}

	seen := make(map[string]struct{}, len(idx.competencies))
	for _, c := range competencies {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		if _, _, ok := idx.scale(c.ID); ok {
			idx.scaleOrder = append(idx.scaleOrder, c.ID)
		}
	}
	return idx
}

func (idx index) scale(id string) (indexedCompetency, scaleAttrs, bool) {
	c, ok := idx.competencies[id]
	if !ok {
		return indexedCompetency{}, scaleAttrs{}, false
	}
	s, ok := c.kind.(scaleKind)
	if !ok {
		return indexedCompetency{}, scaleAttrs{}, false
	}
	return c, s.scaleAttrs, true
}

func (idx index) openText(id string) (indexedCompetency, bool) {
	c, ok := idx.competencies[id]
	if !ok {
		return indexedCompetency{}, false
	}
	_, ok = c.kind.(openTextKind)
	return c, ok
}
