// Package catalog holds the app's static content tables: journey messages,
// exercises, detox drinks, kits and achievement definitions. Everything here
// is immutable, loaded once at init, with no mutation path.
package catalog

// JourneyMessage is a day-indexed retention message. Days are sparse and
// unique; lookup is by exact day match.
type JourneyMessage struct {
	Day      int      `json:"day"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Body     []string `json:"body"`
	Action   *Action  `json:"action,omitempty"`
}

// Action is an optional call-to-action attached to a message.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

var journeyMessages = []JourneyMessage{
	{
		Day:      1,
		Title:    "Seja bem-vinda ao LeveFit!",
		Subtitle: "DIA 1 — BOAS-VINDAS",
		Body: []string{
			"A partir de hoje, seu foco não é comer menos.",
			"É controlar o apetite 💚",
			"Tome suas cápsulas direitinho e registre tudo no app.",
			"Seu progresso começa agora ✨",
		},
	},
	{
		Day:      3,
		Title:    "Seu corpo está se adaptando",
		Subtitle: "DIA 3 — ADAPTAÇÃO",
		Body: []string{
			"É normal perceber menos fome ou menos vontade de beliscar.",
			"Seu corpo está começando a responder ao LeveFit.",
			"Continue firme! 💚",
		},
	},
	{
		Day:      5,
		Title:    "Parabéns!",
		Subtitle: "DIA 5 — PRIMEIRA CONQUISTA",
		Body: []string{
			"Você completou seus primeiros dias de uso 🎉",
			"Pequenas conquistas constroem grandes resultados.",
			"Não pare agora!",
		},
	},
	{
		Day:      7,
		Title:    "Semana 1 concluída!",
		Subtitle: "DIA 7 — SEMANA 1",
		Body: []string{
			"Seu corpo já começou o processo.",
			"Continue usando o app e completando as conquistas.",
			"O melhor vem na hora certa 💚",
		},
	},
	{
		Day:      10,
		Title:    "Constância gera resultado",
		Subtitle: "DIA 10 — CONSTÂNCIA",
		Body: []string{
			"Agora o controle do apetite fica mais perceptível.",
			"Continue firme.",
			"Seu esforço está sendo registrado.",
		},
	},
	{
		Day:      14,
		Title:    "2 semanas completas!",
		Subtitle: "DIA 14 — SEMANA 2",
		Body: []string{
			"Seu corpo já está respondendo.",
			"Muitas pessoas percebem diferença nessa fase.",
			"Continue 💪",
		},
	},
	{
		Day:      18,
		Title:    "Falta pouco...",
		Subtitle: "DIA 18 — ANTECIPAÇÃO",
		Body: []string{
			"Você está muito próxima de completar uma fase importante do seu processo.",
			"Continue registrando tudo no app 💚",
		},
	},
	{
		Day:      21,
		Title:    "Você está perto!",
		Subtitle: "DIA 21 — PRÉ-DESBLOQUEIO",
		Body: []string{
			"Você está perto de liberar um benefício especial 🎁",
			"Mantenha o uso correto das cápsulas e acompanhe seu progresso.",
		},
	},
	{
		Day:      23,
		Title:    "Atenção!",
		Subtitle: "DIA 23 — ALERTA DE BENEFÍCIO",
		Body: []string{
			"Você está entre as pessoas que mais evoluíram no processo.",
			"Complete suas conquistas para liberar seu benefício exclusivo 💚",
		},
	},
	{
		Day:      25,
		Title:    "PARABÉNS!",
		Subtitle: "DIA 25 — DESBLOQUEIO FINAL 🔥",
		Body: []string{
			"Você completou 75% do seu progresso 🎯",
			"Agora você desbloqueou:",
			"💊 Compre 1 LeveFit por R$297",
			"🎁 Ganhe outro TOTALMENTE GRÁTIS",
		},
		Action: &Action{
			Label: "Garanta agora e não interrompa seus resultados!",
			URL:   "/settings",
		},
	},
}

// JourneyMessageForDay returns the message authored for the given day, if
// any. Duplicate authored days would be a data error; the first match wins.
func JourneyMessageForDay(day int) (*JourneyMessage, bool) {
	for i := range journeyMessages {
		if journeyMessages[i].Day == day {
			return &journeyMessages[i], true
		}
	}
	return nil, false
}

// JourneyDays lists the authored days in ascending order.
func JourneyDays() []int {
	days := make([]int, 0, len(journeyMessages))
	for i := range journeyMessages {
		days = append(days, journeyMessages[i].Day)
	}
	return days
}
