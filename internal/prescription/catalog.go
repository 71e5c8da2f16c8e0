package prescription

import "github.com/WailSalutem-Health-Care/clinic-service/internal/query"

var catalog = []Medication{
	{
		ID: "1", Name: "Amoxicilline", Dosage: "500mg", Frequency: "3 fois par jour", Duration: "7 jours",
		Instructions: "À prendre après les repas", Category: "Antibiotique",
		Contraindications: "Allergie aux pénicillines", SideEffects: "Nausées, diarrhée, éruptions cutanées",
	},
	{
		ID: "2", Name: "Ibuprofène", Dosage: "400mg", Frequency: "3 fois par jour", Duration: "5 jours",
		Instructions: "À prendre avec de la nourriture", Category: "Anti-inflammatoire",
		Contraindications: "Ulcère gastrique, insuffisance rénale", SideEffects: "Maux d'estomac, vertiges",
	},
	{
		ID: "3", Name: "Paracétamol", Dosage: "1000mg", Frequency: "3 fois par jour", Duration: "5 jours",
		Instructions: "Maximum 4g par jour", Category: "Antalgique",
		Contraindications: "Insuffisance hépatique sévère", SideEffects: "Rares aux doses thérapeutiques",
	},
	{
		ID: "4", Name: "Chlorhexidine", Dosage: "0.12%", Frequency: "2 fois par jour", Duration: "10 jours",
		Instructions: "Bain de bouche après brossage", Category: "Antiseptique",
		Contraindications: "Hypersensibilité à la chlorhexidine", SideEffects: "Coloration des dents, altération du goût",
	},
	{
		ID: "5", Name: "Codéine", Dosage: "30mg", Frequency: "4 fois par jour", Duration: "3 jours",
		Instructions: "En cas de douleur intense", Category: "Antalgique opiacé",
		Contraindications: "Insuffisance respiratoire, enfants < 12 ans", SideEffects: "Somnolence, constipation, nausées",
	},
	{
		ID: "6", Name: "Métronidazole", Dosage: "500mg", Frequency: "2 fois par jour", Duration: "7 jours",
		Instructions: "Éviter l'alcool", Category: "Antibiotique",
		Contraindications: "Grossesse 1er trimestre", SideEffects: "Goût métallique, nausées",
	},
	{
		ID: "7", Name: "Diclofénac", Dosage: "50mg", Frequency: "2 fois par jour", Duration: "5 jours",
		Instructions: "Après les repas", Category: "Anti-inflammatoire",
		Contraindications: "Ulcère gastroduodénal", SideEffects: "Troubles digestifs",
	},
	{
		ID: "8", Name: "Prednisolone", Dosage: "20mg", Frequency: "1 fois par jour", Duration: "5 jours",
		Instructions: "Le matin avec de la nourriture", Category: "Corticoïde",
		Contraindications: "Infections virales, mycosiques", SideEffects: "Insomnie, augmentation de l'appétit",
	},
}

// Catalog returns a copy of every known medication
func Catalog() []Medication {
	out := make([]Medication, len(catalog))
	copy(out, catalog)
	return out
}

func LookupMedication(id string) (Medication, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Medication{}, false
}

// SearchCatalog matches medications by name or category text, optionally
// restricted to one exact category
func SearchCatalog(term, category string) []Medication {
	return query.Apply(catalog,
		query.Contains(term,
			func(m Medication) string { return m.Name },
			func(m Medication) string { return m.Category },
		),
		query.Equals(category, func(m Medication) string { return m.Category }),
	)
}

// Categories lists the distinct catalog categories in catalog order
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range catalog {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}
