package domain

type (
	Product struct {
		Slug        string
		Title       string
		Description string
		Price       float64
		InStock     int
		Sizes       []string
		Tags        []string
		Type        string
		Gender      string
		Images      []string
	}

	// A ProductSummary is the reduced projection returned by the term search.
	ProductSummary struct {
		Slug    string
		Title   string
		Price   float64
		InStock bool
		Images  []string
	}
)
