package fakebackend

// VideoID names the fixture visit recording.
const VideoID = "discharge-visit"

// IndexID names the fixture index.
const IndexID = "demo-index"

// Transcript is a short discharge-instructions visit.
const Transcript = `Doctor: Good morning. Before you head home I want to go over your instructions.
You'll take the lisinopril, ten milligrams, once every morning with water.
Patient: Every morning, got it. What about the stitches?
Doctor: Keep the incision dry for forty-eight hours, then you can shower, but no baths or swimming for two weeks.
If you see redness spreading, or you get a fever over one hundred point four, call the clinic right away.
Patient: And when do I come back?
Doctor: Your follow-up is in ten days, with Doctor Patel. Walk for fifteen minutes twice a day, and avoid lifting anything over ten pounds.`

// Question is a quiz question as the backend emits it, with the correct
// answer given as option text.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// Questions is the fixture quiz.
var Questions = []Question{
	{
		Question: "How often should you take the lisinopril?",
		Options:  []string{"Twice a day", "Once every morning", "Only when dizzy", "Every other night"},
		Correct:  "Once every morning",
	},
	{
		Question: "How long should the incision be kept dry?",
		Options:  []string{"12 hours", "24 hours", "48 hours", "One week"},
		Correct:  "48 hours",
	},
	{
		Question: "Which temperature means you should call the clinic?",
		Options:  []string{"Over 99.0", "Over 100.4", "Over 102.0", "Any temperature"},
		Correct:  "Over 100.4",
	},
	{
		Question: "When is the follow-up appointment?",
		Options:  []string{"In three days", "In ten days", "In one month", "No follow-up is needed"},
		Correct:  "In ten days",
	},
	{
		Question: "What is the lifting limit during recovery?",
		Options:  []string{"No limit", "Five pounds", "Ten pounds", "Twenty-five pounds"},
		Correct:  "Ten pounds",
	},
}

// Clip is a fixture hint window, chosen when a query mentions one of its keywords.
type Clip struct {
	Keywords []string
	Start    float64
	End      float64
	Answer   string
}

// Clips are matched in order; the first is the fallback.
var Clips = []Clip{
	{
		Keywords: []string{"medicine", "medication", "lisinopril", "pill", "take"},
		Start:    4, End: 11.5,
		Answer: "Take lisinopril 10 mg once every morning with water.",
	},
	{
		Keywords: []string{"incision", "stitches", "shower", "bath", "swim", "dry"},
		Start:    14, End: 24,
		Answer: "Keep the incision dry for 48 hours. No baths or swimming for two weeks.",
	},
	{
		Keywords: []string{"fever", "redness", "call", "infection", "temperature"},
		Start:    24, End: 31,
		Answer: "Call the clinic for spreading redness or a fever over 100.4.",
	},
	{
		Keywords: []string{"follow", "appointment", "come back", "patel"},
		Start:    33, End: 38,
		Answer: "Your follow-up is in ten days with Dr. Patel.",
	},
	{
		Keywords: []string{"walk", "lift", "exercise", "activity"},
		Start:    38, End: 45,
		Answer: "Walk 15 minutes twice a day and avoid lifting over ten pounds.",
	},
}
