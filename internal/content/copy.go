package content

import "strings"

// Fixed page copy shared by the web and terminal sites.

var (
	HeroLabel    = "Est. 2005 · Las Vegas"
	HeroTitle    = "The Art of the Impossible"
	HeroSubtitle = "The ordinary becomes extraordinary. Stage illusions. Close-up magic. Mind-bending mentalism."

	AboutMe = "Magic, for me, has always been a way of telling stories. Long before the stages and the touring, there was a deck of cards, a kitchen table and a family who let me fool them every night. Every routine I perform today still starts the same way: with a story worth telling and an audience worth surprising."

	AboutPhilosophy = "I believe the best magic is not about the secret, but about the moment just before it is revealed, when a room full of strangers holds its breath together."
)

// Stat is one animated counter on the home page.
type Stat struct {
	Target int
	Suffix string
	Label  string
}

var HomeStats = []Stat{
	{Target: 500, Suffix: "+", Label: "Shows Performed"},
	{Target: 20, Suffix: "+", Label: "Years of Magic"},
	{Target: 15, Label: "Countries Toured"},
	{Target: 98, Suffix: "%", Label: "Client Satisfaction"},
}

// Milestone is one entry of the about page timeline.
type Milestone struct {
	Year        string
	Event       string
	Icon        string
	Description string
}

var Milestones = []Milestone{
	{"2015", "First Professional Performance", "🌟", "Began mesmerizing audiences with the art of storytelling through magic."},
	{"2018", "International Debut", "🌍", "First international performance, bringing wonder to audiences across borders."},
	{"2020", "Virtual Magic", "💻", "Built interactive online shows while theatres were closed."},
	{"2022", "Corporate Entertainment", "💼", "Became a regular on the corporate gala and product launch circuit."},
	{"2024", "Global Recognition", "🏆", "Named among the most inventive illusionists of the decade."},
}

// Belief is one of the about page values.
type Belief struct {
	Title       string
	Icon        string
	Description string
}

var Beliefs = []Belief{
	{"Storytelling First", "📖", "Every trick tells a tale. Magic is a narrative art that connects people."},
	{"Create Wonder", "✨", "Reignite the childlike wonder in every audience member."},
	{"Inspire Dreams", "💫", "Through the impossible, show people what they might be capable of."},
	{"Connect Globally", "🌐", "Magic crosses language and culture and unites people through shared awe."},
}

// Callout is a labelled promotional block.
type Callout struct {
	Label string
	Title string
	Text  string
}

var (
	Showreel = Callout{
		Label: "Watch & Believe",
		Title: "See the Magic Unfold",
		Text:  "Highlights from over two decades of performances that have captivated audiences from Las Vegas to London.",
	}
	BookingCTA = Callout{
		Label: "Ready to Be Amazed?",
		Title: "Let's Create Something Magical",
		Text:  "Whether it's an intimate gathering or a grand gala, every show delivers moments that transcend the ordinary.",
	}
)

// Testimonial is a client quote on the home page.
type Testimonial struct {
	Quote  string
	Name   string
	Role   string
	Rating int
}

// Stars renders the rating as a row of stars.
func (t Testimonial) Stars() string {
	return strings.Repeat("★", max(t.Rating, 0))
}

var Testimonials = []Testimonial{
	{"Magnus left our entire corporate gala absolutely speechless. Even our most skeptical executives were completely baffled. An unforgettable evening.", "Sarah Chen", "Event Director, Fortune 500", 5},
	{"Our wedding guests are still talking about the performance a year later. It added a layer of pure magic to our special day that no other entertainer could.", "Michael & Emma Thornton", "Newlyweds", 5},
	{"I have seen performers across four continents. Magnus stands in a class entirely his own. The illusions were flawless; the showmanship, extraordinary.", "Roberto Alvarez", "Entertainment Producer", 5},
}

// ProcessStep is one step of the booking process.
type ProcessStep struct {
	Step        string
	Title       string
	Description string
}

var BookingProcess = []ProcessStep{
	{"01", "Enquire", "Share your event details and vision."},
	{"02", "Consult", "We tailor the perfect performance for your needs."},
	{"03", "Confirm", "Lock in the date with a simple booking process."},
	{"04", "Be Amazed", "Experience magic that exceeds all expectations."},
}
