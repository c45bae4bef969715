package recommend

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	UserMessage string     `json:"user_message"`
	History     []ChatTurn `json:"history"`
}

type ChatResponse struct {
	Message         string           `json:"message"`
	Intent          Intent           `json:"intent"`
	SearchText      string           `json:"search_text"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Intent is the structured, best-effort interpretation of a user message.
// Every field is nullable; the universal fallback keeps only the raw message
// as the query.
type Intent struct {
	Query    *string  `json:"query"`
	Room     *string  `json:"room"`
	Style    *string  `json:"style"`
	Material *string  `json:"material"`
	Color    *string  `json:"color"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

type Recommendation struct {
	ID                   string   `json:"id"`
	Score                float64  `json:"score"`
	Title                string   `json:"title"`
	Brand                string   `json:"brand"`
	Price                *float64 `json:"price"`
	Categories           string   `json:"categories"`
	Material             string   `json:"material"`
	Color                *string  `json:"color"`
	Images               []string `json:"images"`
	Description          *string  `json:"description"`
	GeneratedDescription string   `json:"generated_description"`
}

type SearchResponse struct {
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Results []Recommendation `json:"results"`
}
