package content

// Bundled default content. Pages render these when the remote service is
// unreachable or returns nothing, so the site never goes blank.

// DefaultServices returns a fresh copy of the six bundled offerings.
func DefaultServices() []Service {
	return []Service{
		{
			ID: "1", Name: "Stage Illusions", Slug: "stage-illusions", Icon: "🎭",
			ShortDescription: "Grand-scale illusions that leave audiences speechless",
			Description:      "Large-scale stage illusions for theatres and galas, from levitation to vanishing acts, built around your event and your audience.",
			Features:         []string{"Full stage setup", "Theatrical lighting", "Custom illusions", "Audience participation", "Professional sound design"},
			Price:            "From $5,000",
			IsPopular:        true,
		},
		{
			ID: "2", Name: "Close-up Magic", Slug: "close-up-magic", Icon: "🃏",
			ShortDescription: "Intimate wonder performed inches from your eyes",
			Description:      "Cards, coins and borrowed objects transform in your guests' own hands. Strolling table-to-table magic that needs no stage and no setup.",
			Features:         []string{"Table-to-table performance", "Interactive effects", "No setup required", "Perfect for cocktail hours", "Custom themed effects"},
			Price:            "From $1,500",
		},
		{
			ID: "3", Name: "Corporate Events", Slug: "corporate-events", Icon: "🏢",
			ShortDescription: "Unforgettable entertainment for your business occasions",
			Description:      "Tailored performances for launches, conferences and annual galas that weave your brand and message into the show.",
			Features:         []string{"Brand integration", "Keynote-style performances", "Team building options", "Product reveals", "Custom messaging"},
			Price:            "From $3,500",
			IsPopular:        true,
		},
		{
			ID: "4", Name: "Wedding Shows", Slug: "wedding-shows", Icon: "💍",
			ShortDescription: "Make your special day truly magical",
			Description:      "Personal routines that tell your story, from cocktail hour sleight of hand to a reception show your guests will talk about for years.",
			Features:         []string{"Personalized routines", "Cocktail hour magic", "Ceremony enhancements", "Reception show", "Ring magic specialty"},
			Price:            "From $2,500",
		},
		{
			ID: "5", Name: "Mentalism", Slug: "mentalism", Icon: "🔮",
			ShortDescription: "Mind-reading and psychological illusions",
			Description:      "Thoughts read, choices predicted and the impossible demonstrated live, with the audience in control of every decision.",
			Features:         []string{"Mind reading demonstrations", "Psychological illusions", "Prediction reveals", "Remote viewing", "Audience choice effects"},
			Price:            "From $2,000",
			IsPopular:        true,
		},
		{
			ID: "6", Name: "Virtual Magic", Slug: "virtual-magic", Icon: "💻",
			ShortDescription: "Online performances that defy the digital divide",
			Description:      "Interactive shows delivered through your video platform for remote teams and online events, with nothing for viewers to install.",
			Features:         []string{"Zoom/Teams compatible", "Screen magic effects", "Interactive participation", "Global reach", "No equipment needed for viewers"},
			Price:            "From $800",
		},
	}
}

// DefaultBlogs returns a fresh copy of the bundled posts, newest first
// except for the featured post which leads.
func DefaultBlogs() []Blog {
	return []Blog{
		{
			ID: "1", Slug: "live-performances-shared-moments", Category: "Performance",
			Title:       "Turning Live Performances into Shared Moments of Amazement",
			Excerpt:     "Why magic witnessed together becomes a memory the whole room keeps.",
			CreatedAt:   "2024-02-15",
			ReadingTime: 8,
			IsFeatured:  true,
			Content: `## The Magic of Shared Experience

Magic seen alone is impressive. Magic seen together is unforgettable.

### The Collective Wonder

A room gasping at once turns strangers into witnesses of the same impossible moment.

> "Magic is the only art form that needs witnesses to exist." — Magnus

### Creating Memories

Every routine is built to be interactive, so the moment belongs to the audience as much as to the performer.`,
		},
		{
			ID: "2", Slug: "designing-personal-magical-experiences", Category: "Craft",
			Title:       "Designing Magical Experiences That Feel Personal",
			Excerpt:     "How tailored illusions make each show feel like it was made for one guest.",
			CreatedAt:   "2024-02-08",
			ReadingTime: 6,
			Content: `## The Art of Personal Magic

Every guest arrives with their own story and their own skepticism.

### Reading the Room

Energy, timing and the collective breath decide how a performance unfolds.

### Custom Moments

No two shows are alike. Each one adapts to the people in front of it.`,
		},
		{
			ID: "3", Slug: "science-audience-engagement", Category: "Science",
			Title:       "The Science of Real Audience Engagement",
			Excerpt:     "The psychology behind what makes audiences lean in and remember.",
			CreatedAt:   "2024-02-01",
			ReadingTime: 10,
			Content: `## The Psychology of Wonder

Engagement is engineered: every gesture and pause is calibrated.

### The Power of Surprise

Novelty releases dopamine, and dopamine writes memories.

### Building Anticipation

The setup matters as much as the reveal.`,
		},
		{
			ID: "4", Slug: "signature-style-preparation", Category: "Craft",
			Title:       "Where Preparation Becomes Performance",
			Excerpt:     "Behind every effortless moment are hours of practice and planning.",
			CreatedAt:   "2024-01-20",
			ReadingTime: 7,
			Content: `## The Hidden Work

What looks spontaneous is thousands of hours of repetition.

### The Illusion of Effortlessness

The best performances look easy because the preparation is invisible.`,
		},
		{
			ID: "5", Slug: "holi-celebration-colors-joy", Category: "Celebration",
			Title:       "Celebrating the Colors of Joy",
			Excerpt:     "A festival of colour, community and a little impossible wonder.",
			CreatedAt:   "2024-03-15",
			ReadingTime: 5,
			Content: `## A Magical Holi

Colour, joy and community sit close to the spirit of magic.

### Colors and Wonder

This year's shows celebrated with audiences across the city.`,
		},
		{
			ID: "6", Slug: "behind-the-curtain-touring", Category: "Performance",
			Title:       "Behind the Curtain: A Season on Tour",
			Excerpt:     "Forty cities, one trunk of props and the lessons learned along the way.",
			CreatedAt:   "2024-01-05",
			ReadingTime: 9,
			Content: `## On the Road

Touring is logistics first and magic second.

### Every Stage Is Different

Sightlines, lighting and acoustics change the show night to night.`,
		},
	}
}

// CategoryColors maps post categories to their accent colours.
var CategoryColors = map[string]string{
	"Performance": "#c9a227",
	"Craft":       "#8b1a2a",
	"Science":     "#2a4d8b",
	"Celebration": "#8b2a7a",
}
