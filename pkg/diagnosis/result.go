package diagnosis

// Stage is how far the detected problem has progressed.
type Stage string

const (
	StageInitial      Stage = "initial"
	StageIntermediate Stage = "intermediate"
	StageAdvanced     Stage = "advanced"
)

// Problem describes the detected disease.
type Problem struct {
	ScientificName string   `json:"scientific_name"`
	CommonName     string   `json:"common_name"`
	Description    string   `json:"description"`
	Symptoms       []string `json:"symptoms"`
	Stage          Stage    `json:"stage"`
	ImpactPercent  int      `json:"impact_percent"`
}

// Solutions groups the recommended treatments.
type Solutions struct {
	Biological   []string `json:"biological"`
	Conventional []string `json:"conventional"`
	Preventive   []string `json:"preventive"`
}

// Costs per hectare, in euros.
type Costs struct {
	Biological   int `json:"biological"`
	Conventional int `json:"conventional"`
}

// Result is a complete diagnosis.
type Result struct {
	Problem   Problem      `json:"problem"`
	Solutions Solutions    `json:"solutions"`
	Timeline  string       `json:"timeline"`
	Costs     Costs        `json:"costs"`
	Context   *CropContext `json:"context,omitempty"`
}

// MockResult returns the canned brown rust diagnosis.
func MockResult() Result {
	return Result{
		Problem: Problem{
			ScientificName: "Puccinia triticina",
			CommonName:     "Rouille brune du blé",
			Description:    "La rouille brune est une maladie fongique affectant principalement le blé. Elle se développe dans des conditions de température modérée (15-25°C) et d'humidité élevée.",
			Symptoms: []string{
				"Pustules de couleur orange-brun sur les feuilles",
				"Lésions circulaires ou ovales de 1-2mm",
				"Tissus chlorotiques autour des pustules",
				"Réduction de la photosynthèse",
			},
			Stage:         StageIntermediate,
			ImpactPercent: 45,
		},
		Solutions: Solutions{
			Biological: []string{
				"Application de Bacillus subtilis (4kg/ha) en pulvérisation foliaire",
				"Rotation des cultures avec des espèces non-hôtes",
				"Utilisation de variétés résistantes lors du prochain semis",
			},
			Conventional: []string{
				"Traitement au tébuconazole (250g/ha)",
				"Application d'azoxystrobine (200g/ha) si infection sévère",
				"Pulvérisation de prothioconazole (125g/ha) préventive aux stades sensibles",
			},
			Preventive: []string{
				"Rotation des cultures sur 2-3 ans minimum",
				"Élimination des résidus de culture après la récolte",
				"Espacement adéquat entre les plants pour réduire l'humidité foliaire",
			},
		},
		Timeline: "Intervention urgente recommandée dans les 3-5 jours. Application en matinée par temps sec avec au moins 2 heures sans pluie après traitement.",
		Costs: Costs{
			Biological:   65,
			Conventional: 42,
		},
	}
}
