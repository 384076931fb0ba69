package catalog

// Kit is one purchasable capsule kit offered at onboarding.
type Kit struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Description   string `json:"description"`
	TreatmentDays int    `json:"treatment_days"`
}

var kits = []Kit{
	{ID: "1_pote", Label: "1 Pote", Description: "30 dias de tratamento", TreatmentDays: 30},
	{ID: "3_potes", Label: "3 Potes", Description: "90 dias de tratamento", TreatmentDays: 90},
	{ID: "5_potes", Label: "5 Potes", Description: "150 dias de tratamento", TreatmentDays: 150},
}

// Kits returns the full kit table in display order.
func Kits() []Kit {
	out := make([]Kit, len(kits))
	copy(out, kits)
	return out
}

// KitByID looks up a kit by its identifier.
func KitByID(id string) (*Kit, bool) {
	for i := range kits {
		if kits[i].ID == id {
			return &kits[i], true
		}
	}
	return nil, false
}
