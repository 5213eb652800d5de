package projects

import "strings"

// Catalog is the compiled-in project portfolio. Projects are editorial content
// released with the site, not admin-mutable rows.
type Catalog struct {
	items []Project
}

func NewCatalog() *Catalog {
	return &Catalog{items: portfolio}
}

func NewCatalogWith(items []Project) *Catalog {
	return &Catalog{items: items}
}

type Filter struct {
	Category string
	Featured *bool
}

func (c *Catalog) List(filter Filter) []Summary {
	category := strings.ToLower(strings.TrimSpace(filter.Category))

	out := make([]Summary, 0, len(c.items))
	for _, p := range c.items {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p.Summary())
	}
	return out
}

func (c *Catalog) GetBySlug(slug string) (Project, bool) {
	slug = strings.TrimSpace(slug)
	for _, p := range c.items {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}

func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range c.items {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

var portfolio = []Project{
	{
		ID:             "prj-001",
		Title:          "Durban Port Berth Deepening",
		Slug:           "durban-port-berth-deepening",
		Category:       "Maritime",
		Client:         "Transnet National Ports Authority",
		CompletionDate: "2024-08",
		Image:          "/images/projects/durban-berth.jpg",
		Description:    "Structural and geotechnical engineering for the deepening and lengthening of container berths.",
		Featured:       true,
		Details: Details{
			Overview:  "Multi-year upgrade of existing quay walls to accommodate new-generation container vessels.",
			Challenge: "Deepening alongside live berth operations without interrupting terminal throughput.",
			Solution:  "Staged anchored-pile retaining system designed around the existing caisson wall, with continuous monitoring.",
			Results:   "Berth pocket deepened to 16.5 m chart datum with zero unplanned operational downtime.",
			Specifications: []string{
				"1,210 m quay wall",
				"16.5 m dredge depth",
				"Anchored combi-wall retention",
			},
			KeyFeatures: []string{
				"Live-operations staging",
				"Real-time wall deflection monitoring",
			},
			Gallery: []string{
				"/images/projects/durban-berth-1.jpg",
				"/images/projects/durban-berth-2.jpg",
			},
		},
	},
	{
		ID:             "prj-002",
		Title:          "Richards Bay Coal Conveyor Rehabilitation",
		Slug:           "richards-bay-coal-conveyor-rehabilitation",
		Category:       "Industrial",
		Client:         "Richards Bay Coal Terminal",
		CompletionDate: "2023-11",
		Image:          "/images/projects/rbct-conveyor.jpg",
		Description:    "Condition assessment and structural rehabilitation of overland conveyor gantries.",
		Details: Details{
			Overview:  "Corrosion-driven rehabilitation programme across 4.2 km of elevated conveyor structure.",
			Challenge: "Severe chloride corrosion in a marine-industrial atmosphere with restricted shutdown windows.",
			Solution:  "Prioritised member replacement schedule from drone-based inspection data, executed in rolling night shutdowns.",
			Results:   "Design life extended by 25 years at roughly a third of replacement cost.",
			Specifications: []string{
				"4.2 km conveyor gantry",
				"380 t replacement steel",
			},
		},
	},
	{
		ID:             "prj-003",
		Title:          "Mossel Bay Desalination Intake",
		Slug:           "mossel-bay-desalination-intake",
		Category:       "Water",
		Client:         "Mossel Bay Municipality",
		CompletionDate: "2024-03",
		Image:          "/images/projects/mossel-bay-intake.jpg",
		Description:    "Marine intake and brine outfall design for a 15 Ml/day desalination plant.",
		Featured:       true,
		Details: Details{
			Overview:  "Open-sea intake, pump station and diffuser outfall for a drought-response desalination facility.",
			Challenge: "High-energy surf zone crossing with strict environmental limits on brine dispersion.",
			Solution:  "Directionally drilled intake pipelines beneath the surf zone and a multi-port diffuser validated by CFD dispersion modelling.",
			Results:   "Commissioned within 18 months of appointment; brine salinity at the mixing-zone boundary within 1% of ambient.",
			KeyFeatures: []string{
				"HDD surf-zone crossing",
				"CFD-validated diffuser design",
			},
		},
	},
	{
		ID:             "prj-004",
		Title:          "Cape Winelands Pedestrian Bridges",
		Slug:           "cape-winelands-pedestrian-bridges",
		Category:       "Structural",
		Client:         "Cape Winelands District Municipality",
		CompletionDate: "2022-06",
		Image:          "/images/projects/winelands-bridges.jpg",
		Description:    "Design and construction supervision of five rural pedestrian river crossings.",
		Details: Details{
			Overview:  "Programme of weathering-steel truss bridges giving school routes year-round river crossings.",
			Challenge: "Remote sites with flood-prone rivers and minimal construction plant availability.",
			Solution:  "Standardised modular truss spans fabricated off-site and erected with mobile cranes in the dry season.",
			Results:   "All five crossings delivered under a single wet season, serving an estimated 3,000 daily users.",
		},
	},
}
