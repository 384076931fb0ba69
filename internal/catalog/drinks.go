package catalog

// Time-of-day slots for detox suggestions.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeNight     = "night"
)

// DetoxDrink is one recipe of the detox catalog.
type DetoxDrink struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TimeOfDay   string   `json:"time_of_day"`
	Benefits    []string `json:"benefits"`
	Ingredients []string `json:"ingredients"`
	Preparation []string `json:"preparation"`
}

var detoxDrinks = []DetoxDrink{
	{
		ID: "detox-1", Name: "Suco Verde Clássico", TimeOfDay: TimeMorning,
		Benefits:    []string{"Desintoxica", "Acelera o metabolismo"},
		Ingredients: []string{"1 folha de couve", "1/2 maçã", "Suco de 1 limão", "200ml de água de coco", "Gengibre a gosto"},
		Preparation: []string{"Bata tudo no liquidificador", "Coe se preferir", "Beba em jejum"},
	},
	{
		ID: "detox-2", Name: "Água com Limão e Gengibre", TimeOfDay: TimeMorning,
		Benefits:    []string{"Hidrata", "Reduz inchaço"},
		Ingredients: []string{"Suco de 1/2 limão", "2 rodelas de gengibre", "250ml de água morna"},
		Preparation: []string{"Misture o limão na água morna", "Adicione o gengibre", "Beba ao acordar"},
	},
	{
		ID: "detox-3", Name: "Chá de Hibisco Gelado", TimeOfDay: TimeAfternoon,
		Benefits:    []string{"Diurético natural", "Controla o apetite"},
		Ingredients: []string{"1 colher de hibisco seco", "300ml de água", "Gelo", "Hortelã"},
		Preparation: []string{"Faça a infusão por 5 minutos", "Deixe esfriar", "Sirva com gelo e hortelã"},
	},
	{
		ID: "detox-4", Name: "Suco de Abacaxi com Hortelã", TimeOfDay: TimeAfternoon,
		Benefits:    []string{"Digestivo", "Anti-inflamatório"},
		Ingredients: []string{"2 fatias de abacaxi", "Folhas de hortelã", "200ml de água gelada"},
		Preparation: []string{"Bata tudo no liquidificador", "Não adicione açúcar", "Beba na hora"},
	},
	{
		ID: "detox-5", Name: "Chá de Camomila com Maracujá", TimeOfDay: TimeNight,
		Benefits:    []string{"Relaxa", "Melhora o sono"},
		Ingredients: []string{"1 sachê de camomila", "Polpa de 1/2 maracujá", "250ml de água quente"},
		Preparation: []string{"Prepare o chá de camomila", "Misture a polpa de maracujá", "Beba 30 min antes de dormir"},
	},
	{
		ID: "detox-6", Name: "Leite Dourado", TimeOfDay: TimeNight,
		Benefits:    []string{"Anti-inflamatório", "Conforto noturno"},
		Ingredients: []string{"1 colher de chá de cúrcuma", "200ml de leite vegetal", "Pitada de pimenta-do-reino", "Canela"},
		Preparation: []string{"Aqueça o leite", "Misture a cúrcuma e a pimenta", "Polvilhe canela"},
	},
}

// DrinksByTimeOfDay returns the recipes suggested for a slot.
func DrinksByTimeOfDay(timeOfDay string) []DetoxDrink {
	out := make([]DetoxDrink, 0)
	for _, d := range detoxDrinks {
		if d.TimeOfDay == timeOfDay {
			out = append(out, d)
		}
	}
	return out
}
