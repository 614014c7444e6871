package content

// Document is the site content file. Each section is optional; a missing
// section leaves the matching part of the page as the skeleton shipped it.
type Document struct {
	Site     *Site     `yaml:"site"`
	Hero     *Hero     `yaml:"hero"`
	About    *About    `yaml:"about"`
	Research *Research `yaml:"research"`
	Contact  *Contact  `yaml:"contact"`
	Footer   *Footer   `yaml:"footer"`
}

// Site holds page-level fields.
type Site struct {
	Title string `yaml:"title"`
	Logo  string `yaml:"logo"`
}

// Link is a named, iconed link used by the hero social row and the contact
// section.
type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// Hero is the landing section. Description may span lines.
type Hero struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Bio         []string `yaml:"bio"`
	Portrait    string   `yaml:"portrait"`
	Social      []Link   `yaml:"social"`
}

// About holds the biography paragraphs and the research area tags.
type About struct {
	Title        string   `yaml:"title"`
	Paragraphs   []string `yaml:"paragraphs"`
	ResearchTags []string `yaml:"research_tags"`
}

// Research lists the research area cards in display order.
type Research struct {
	Title string `yaml:"title"`
	Cards []Card `yaml:"cards"`
}

// Card is one research area tile.
type Card struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Contact is the closing call to action.
type Contact struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Links   []Link `yaml:"links"`
}

// Footer is the page footer line.
type Footer struct {
	Text string `yaml:"text"`
}

// Publications is the publications file. Order is rendering order.
type Publications struct {
	Publications []Publication `yaml:"publications"`
}

// Publication is one paper. Text fields use the markup dialect.
type Publication struct {
	Title   string `yaml:"title"`
	Authors string `yaml:"authors"`
	Venue   string `yaml:"venue"`
	Bib     string `yaml:"bib"`
	Image   string `yaml:"image"`
	Link    string `yaml:"link"`
}
