package persona

// Keyword is one weighted profile term.
type Keyword struct {
	Term   string
	Weight float64
}

// Archetype is a known persona category with its label synonyms and curated
// keyword set. The table is immutable process-wide data; matching ties are
// broken by declaration order, first wins.
type Archetype struct {
	Name     string
	Synonyms []string
	Keywords []Keyword
}

var archetypes = []Archetype{
	{
		Name:     "researcher",
		Synonyms: []string{"researcher", "scientist", "phd", "postdoc", "academic", "professor"},
		Keywords: []Keyword{
			{"methodology", 1.5}, {"analysis", 1.0}, {"results", 1.5}, {"conclusion", 1.0},
			{"hypothesis", 1.0}, {"experiment", 1.0}, {"data", 1.0}, {"statistical", 1.0},
			{"correlation", 1.0}, {"significance", 1.0}, {"literature review", 1.5},
			{"related work", 1.0}, {"background", 1.0}, {"framework", 1.0}, {"conclusions", 1.0},
		},
	},
	{
		Name:     "student",
		Synonyms: []string{"student", "undergraduate", "learner", "pupil"},
		Keywords: []Keyword{
			{"introduction", 1.5}, {"overview", 1.0}, {"concept", 1.0}, {"definition", 1.5},
			{"example", 1.0}, {"explanation", 1.0}, {"summary", 1.0}, {"key points", 1.0},
			{"important", 1.0}, {"fundamental", 1.0}, {"basic", 1.0}, {"principles", 1.0},
			{"theory", 1.0}, {"practice", 1.0},
		},
	},
	{
		Name:     "analyst",
		Synonyms: []string{"analyst", "analytics", "consultant", "strategist"},
		Keywords: []Keyword{
			{"trend", 1.5}, {"analysis", 1.0}, {"performance", 1.0}, {"metrics", 1.5},
			{"data", 1.0}, {"statistics", 1.0}, {"comparison", 1.0}, {"benchmark", 1.0},
			{"evaluation", 1.0}, {"assessment", 1.0}, {"insights", 1.0}, {"findings", 1.0},
			{"recommendations", 1.0}, {"strategy", 1.0},
		},
	},
	{
		Name:     "manager",
		Synonyms: []string{"manager", "executive", "director", "lead", "supervisor"},
		Keywords: []Keyword{
			{"executive summary", 1.5}, {"overview", 1.0}, {"strategy", 1.5}, {"planning", 1.0},
			{"goals", 1.0}, {"objectives", 1.0}, {"implementation", 1.0}, {"timeline", 1.0},
			{"budget", 1.0}, {"resources", 1.0}, {"team", 1.0}, {"leadership", 1.0},
			{"decision", 1.0}, {"action", 1.0},
		},
	},
	{
		Name:     "journalist",
		Synonyms: []string{"journalist", "reporter", "editor", "writer", "correspondent"},
		Keywords: []Keyword{
			{"news", 1.0}, {"story", 1.0}, {"event", 1.0}, {"interview", 1.0}, {"quote", 1.0},
			{"source", 1.0}, {"background", 1.0}, {"context", 1.0}, {"timeline", 1.0},
			{"impact", 1.5}, {"reaction", 1.0}, {"statement", 1.0}, {"announcement", 1.0},
			{"development", 1.0},
		},
	},
}

// jobPresets maps well-known task families to curated keyword sets that are
// merged into the job-term subset when the job text names them.
var jobPresets = []Archetype{
	{
		Name:     "literature review",
		Synonyms: []string{"literature review", "survey"},
		Keywords: []Keyword{
			{"previous work", 1.0}, {"related research", 1.0}, {"background", 1.0},
			{"methodology", 1.0}, {"findings", 1.0}, {"conclusion", 1.0},
			{"limitations", 1.0}, {"future work", 1.0},
		},
	},
	{
		Name:     "exam preparation",
		Synonyms: []string{"exam", "test preparation", "study"},
		Keywords: []Keyword{
			{"key concepts", 1.0}, {"important", 1.0}, {"definition", 1.0}, {"example", 1.0},
			{"practice", 1.0}, {"review", 1.0}, {"summary", 1.0}, {"main points", 1.0},
			{"fundamental", 1.0},
		},
	},
	{
		Name:     "market analysis",
		Synonyms: []string{"market analysis", "market research"},
		Keywords: []Keyword{
			{"market", 1.0}, {"trend", 1.0}, {"competition", 1.0}, {"revenue", 1.0},
			{"growth", 1.0}, {"strategy", 1.0}, {"performance", 1.0}, {"forecast", 1.0},
			{"opportunity", 1.0},
		},
	},
	{
		Name:     "financial analysis",
		Synonyms: []string{"financial analysis", "financial review"},
		Keywords: []Keyword{
			{"financial", 1.0}, {"revenue", 1.0}, {"profit", 1.0}, {"loss", 1.0},
			{"investment", 1.0}, {"budget", 1.0}, {"expense", 1.0}, {"income", 1.0},
			{"balance", 1.0}, {"cash flow", 1.0},
		},
	},
	{
		Name:     "technical review",
		Synonyms: []string{"technical review", "architecture review", "code review"},
		Keywords: []Keyword{
			{"technology", 1.0}, {"system", 1.0}, {"architecture", 1.0},
			{"implementation", 1.0}, {"design", 1.0}, {"performance", 1.0},
			{"efficiency", 1.0}, {"optimization", 1.0}, {"scalability", 1.0},
		},
	},
}

// Archetypes returns the persona archetype table, immutable after init.
func Archetypes() []Archetype {
	return archetypes
}
