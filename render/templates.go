package render

// Slot is one named section of a template. Required slots fail the
// render when absent; optional slots are simply omitted, never rendered
// as empty headers.
type Slot struct {
	Name     string
	Heading  string
	Required bool
}

// Template is a named narrative skeleton: a fixed slot schema plus its
// assembly order. Adding a template means adding an entry here, not
// touching the renderer.
type Template struct {
	Name  string
	Slots []Slot
}

// Templates is the closed set of narrative archetypes.
var Templates = []Template{
	{
		Name: "crisis-resolution",
		Slots: []Slot{
			{Name: "crisis", Heading: "When Everything Broke", Required: true},
			{Name: "challenge", Heading: "What Made It Hard", Required: false},
			{Name: "discovery", Heading: "Finding the Real Problem", Required: true},
			{Name: "implementation", Heading: "The Fix", Required: true},
			{Name: "results", Heading: "What Changed", Required: true},
			{Name: "lessons", Heading: "Lessons Learned", Required: false},
			{Name: "conclusion", Heading: "Wrapping Up", Required: false},
		},
	},
	{
		Name: "deep-dive",
		Slots: []Slot{
			{Name: "overview", Heading: "Overview", Required: true},
			{Name: "background", Heading: "Background", Required: false},
			{Name: "architecture", Heading: "How It Works", Required: true},
			{Name: "implementation", Heading: "Implementation Details", Required: true},
			{Name: "tradeoffs", Heading: "Trade-offs", Required: false},
			{Name: "conclusion", Heading: "Closing Thoughts", Required: false},
		},
	},
	{
		Name: "tutorial",
		Slots: []Slot{
			{Name: "introduction", Heading: "What We're Building", Required: true},
			{Name: "prerequisites", Heading: "Before You Start", Required: false},
			{Name: "steps", Heading: "Step by Step", Required: true},
			{Name: "verification", Heading: "Checking It Works", Required: false},
			{Name: "troubleshooting", Heading: "When Things Go Wrong", Required: false},
			{Name: "summary", Heading: "Recap", Required: false},
		},
	},
}

// lookup finds a template by name.
func lookup(name string) (Template, bool) {
	for _, t := range Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
