package aggregation

import "strings"

// aggregatePerson computes every metric for one person from their bucket.
func aggregatePerson(p Person, b *bucket, idx index) Result {
	perCompetency := newTallies[string]()
	roles := newTallies[string]()
	dimRoles := newTallies[dimensionRole]()
	groupRoles := newTallies[groupRole]()

	// Raw-response pass: per-competency sums, and the response-weighted role
	// and cross-tab tallies.
	for _, s := range b.scored {
		perCompetency.add(s.competencyID, s.value)
		roles.add(s.role, s.value)
		dimRoles.add(dimensionRole{dimension: s.attrs.dimension, role: s.role}, s.value)
		groupRoles.add(groupRole{dimension: s.attrs.dimension, group: s.attrs.group, role: s.role}, s.value)
	}
	competencyMeans := means(perCompetency)

	// Mean-of-means pass: each competency with data contributes its mean once.
	// Walking scaleOrder keeps float summation order fixed between runs.
	dimensions := newTallies[string]()
	skills := newTallies[string]()
	groups := newTallies[string]()
	var overall Tally
	for _, id := range idx.scaleOrder {
		mean, ok := competencyMeans[id]
		if !ok {
			continue
		}
		c, attrs, _ := idx.scale(id)
		dimensions.add(attrs.dimension, mean)
		skills.add(c.Title, mean)
		groups.add(attrs.group, mean)
		overall.Sum += mean
		overall.Count++
	}

	openText := make(map[string]OpenTextAnswers, len(b.openText.order))
	for _, id := range b.openText.order {
		c, _ := idx.openText(id)
		openText[id] = OpenTextAnswers{
			Title:    c.Title,
			Question: c.Question,
			Comments: b.openText.comments[id],
		}
	}

	comments := make([]string, 0)
	for _, e := range b.evaluations {
		if text := strings.TrimSpace(e.Comment); text != "" {
			comments = append(comments, text)
		}
	}

	return Result{
		PersonID:        p.ID,
		Name:            p.Name,
		Title:           p.Title,
		Area:            p.Area,
		EvaluationCount: len(b.evaluations),
		Overall:         overall.Mean(),
		ScoredCount:     len(b.scored),
		Competencies:    competencyMeans,
		Dimensions:      means(dimensions),
		Skills:          means(skills),
		Groups:          means(groups),
		Roles:           means(roles),
		DimensionRoles:  nestDimensionRoles(dimRoles),
		GroupRoles:      nestGroupRoles(groupRoles),
		Comments:        comments,
		OpenText:        openText,
	}
}
