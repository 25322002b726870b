package notion

// Page properties are a tagged union on the wire: each property value object
// carries exactly one type-specific field. Every concrete PropertyValue
// marshals its single variant, so the union never emits null siblings.

type PropertyValue interface {
	property()
}

// Properties is the property set sent with a page create or update.
type Properties map[string]PropertyValue

type TitleProperty struct {
	Title []RichText `json:"title"`
}

type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

type MultiSelectProperty struct {
	MultiSelect []SelectOption `json:"multi_select"`
}

type NumberProperty struct {
	Number float64 `json:"number"`
}

type URLProperty struct {
	URL string `json:"url"`
}

type DateProperty struct {
	Date Date `json:"date"`
}

func (TitleProperty) property()       {}
func (RichTextProperty) property()    {}
func (MultiSelectProperty) property() {}
func (NumberProperty) property()      {}
func (URLProperty) property()         {}
func (DateProperty) property()        {}

type RichText struct {
	Type string `json:"type,omitempty"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type Date struct {
	Start string `json:"start"`
}

func NewTitle(s string) TitleProperty {
	return TitleProperty{Title: richText(s)}
}

func NewRichText(s string) RichTextProperty {
	return RichTextProperty{RichText: richText(s)}
}

// NewMultiSelect keeps option order as given. An empty name list produces an
// empty (non-null) option array, which clears the property on update.
func NewMultiSelect(names []string) MultiSelectProperty {
	opts := make([]SelectOption, 0, len(names))
	for _, n := range names {
		opts = append(opts, SelectOption{Name: n})
	}
	return MultiSelectProperty{MultiSelect: opts}
}

func NewNumber(n float64) NumberProperty {
	return NumberProperty{Number: n}
}

func NewURL(u string) URLProperty {
	return URLProperty{URL: u}
}

func NewDate(start string) DateProperty {
	return DateProperty{Date: Date{Start: start}}
}

// Block is page body content; only the block kinds this tool emits are
// modeled.
type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Heading2  *BlockText `json:"heading_2,omitempty"`
	Paragraph *BlockText `json:"paragraph,omitempty"`
}

type BlockText struct {
	RichText []RichText `json:"rich_text"`
}

func NewHeading2(s string) Block {
	return Block{Object: "block", Type: "heading_2", Heading2: &BlockText{RichText: richText(s)}}
}

func NewParagraph(s string) Block {
	return Block{Object: "block", Type: "paragraph", Paragraph: &BlockText{RichText: richText(s)}}
}

func richText(s string) []RichText {
	return []RichText{{Type: "text", Text: &Text{Content: s}}}
}
