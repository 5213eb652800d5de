package projects

type Details struct {
	Overview       string   `json:"overview"`
	Challenge      string   `json:"challenge"`
	Solution       string   `json:"solution"`
	Results        string   `json:"results"`
	Specifications []string `json:"specifications,omitempty"`
	Gallery        []string `json:"gallery,omitempty"`
	KeyFeatures    []string `json:"keyFeatures,omitempty"`
}

type Project struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	Category       string  `json:"category"`
	Client         string  `json:"client"`
	CompletionDate string  `json:"completionDate"`
	Image          string  `json:"image"`
	Description    string  `json:"description"`
	Featured       bool    `json:"featured,omitempty"`
	Details        Details `json:"details"`
}

// Summary is the list shape; details are only served on the detail route.
type Summary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Category       string `json:"category"`
	Client         string `json:"client"`
	CompletionDate string `json:"completionDate"`
	Image          string `json:"image"`
	Description    string `json:"description"`
	Featured       bool   `json:"featured,omitempty"`
}

func (p Project) Summary() Summary {
	return Summary{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Category:       p.Category,
		Client:         p.Client,
		CompletionDate: p.CompletionDate,
		Image:          p.Image,
		Description:    p.Description,
		Featured:       p.Featured,
	}
}
