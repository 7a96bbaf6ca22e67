package aggregation

// CompetencyType identifies how a competency is answered.
type CompetencyType string

const (
	TypeScale    CompetencyType = "scale"
	TypeOpenText CompetencyType = "text"
)

// NoGroup is the group key used for scale competencies without a group.
const NoGroup = ""

// Person is someone being rated in a cycle.
type Person struct {
	ID    string
	Name  string
	Title string
	Area  string
}

// Evaluation is one evaluator's completed submission for one person.
type Evaluation struct {
	ID           string
	PersonID     string
	Relationship string
	Comment      string
}

// Competency is a single question definition.
type Competency struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Question  string         `json:"question"`
	Type      CompetencyType `json:"type"`
	Dimension string         `json:"dimension"`
	Group     string         `json:"group"`
}

// Response is one answer to one competency within one evaluation.
type Response struct {
	EvaluationID string
	CompetencyID string
	Value        float64
	Comment      string

	// Unanswered marks a response stored without a numeric value. It is
	// skipped on scale competencies.
	Unanswered bool
}

// Snapshot holds the raw collections for a single aggregation run.
type Snapshot struct {
	Persons      []Person
	Evaluations  []Evaluation
	Competencies []Competency
	Responses    []Response
}

// Tally is a running sum and sample size for a cross-tab cell.
type Tally struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// Mean returns Sum/Count, or 0 for an empty tally.
func (t Tally) Mean() float64 {
	if t.Count == 0 {
		return 0
	}
	return t.Sum / float64(t.Count)
}

// OpenTextAnswers is the free-text payload for one competency.
type OpenTextAnswers struct {
	Title    string   `json:"title"`
	Question string   `json:"question"`
	Comments []string `json:"comments"`
}

// Result is the aggregated summary for one evaluated person.
//
// Competencies, Dimensions, Skills, Groups and Overall are means of
// per-competency means: every competency counts once regardless of how many
// responses it received. Roles, DimensionRoles and GroupRoles are accumulated
// per raw response, so they are weighted by response count. The two policies
// produce different numbers on the same data and both are intentional.
type Result struct {
	PersonID        string `json:"person_id"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Area            string `json:"area"`
	EvaluationCount int    `json:"evaluation_count"`

	// Overall is 0 when the person has no scored responses; check ScoredCount
	// to tell that apart from a genuine score.
	Overall     float64 `json:"overall"`
	ScoredCount int     `json:"scored_count"`

	Competencies map[string]float64 `json:"competencies"`
	Dimensions   map[string]float64 `json:"dimensions"`
	Skills       map[string]float64 `json:"skills"`
	Groups       map[string]float64 `json:"groups"`
	Roles        map[string]float64 `json:"roles"`

	// DimensionRoles is keyed dimension -> role.
	DimensionRoles map[string]map[string]Tally `json:"dimension_roles"`
	// GroupRoles is keyed dimension -> group -> role.
	GroupRoles map[string]map[string]map[string]Tally `json:"group_roles"`

	Comments []string                   `json:"comments"`
	OpenText map[string]OpenTextAnswers `json:"open_text"`
}
