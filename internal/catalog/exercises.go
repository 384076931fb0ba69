package catalog

// Exercise difficulty tiers.
const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyIntense  = "intense"
)

// Exercise is one entry of the workout catalog.
type Exercise struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Difficulty  string   `json:"difficulty"`
	Category    string   `json:"category"`
	Duration    string   `json:"duration"`
	Calories    int      `json:"calories"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// ExerciseCategoryLabels maps category keys to display labels.
var ExerciseCategoryLabels = map[string]string{
	"caminhada":        "Caminhada",
	"corrida":          "Corrida",
	"danca":            "Dança",
	"yoga_pilates":     "Yoga & Pilates",
	"natacao_aquatico": "Natação & Aquático",
	"ciclismo":         "Ciclismo",
	"esportes":         "Esportes",
	"funcional":        "Funcional & HIIT",
	"alongamento":      "Alongamento & Relaxamento",
	"musculacao":       "Musculação",
	"outros":           "Outros",
}

var exercises = []Exercise{
	// Fácil
	{ID: "easy-1", Name: "Caminhada Leve", Difficulty: DifficultyEasy, Category: "caminhada", Duration: "30 min", Calories: 150, Description: "Caminhada em ritmo confortável para iniciantes", Steps: []string{"Aqueça por 5 minutos", "Caminhe em ritmo moderado por 20 min", "Desacelere nos últimos 5 min"}},
	{ID: "easy-14", Name: "Caminhada na Praia", Difficulty: DifficultyEasy, Category: "caminhada", Duration: "40 min", Calories: 180, Description: "Caminhe na areia para maior resistência", Steps: []string{"Comece pela areia dura", "Gradualmente vá para areia fofa", "Termine com os pés na água"}},
	{ID: "easy-11", Name: "Marcha Estacionária", Difficulty: DifficultyEasy, Category: "caminhada", Duration: "15 min", Calories: 70, Description: "Marche no lugar elevando os joelhos", Steps: []string{"Postura ereta", "Eleve joelhos alternadamente", "Balance os braços"}},
	{ID: "easy-3", Name: "Yoga para Iniciantes", Difficulty: DifficultyEasy, Category: "yoga_pilates", Duration: "20 min", Calories: 80, Description: "Posturas básicas de yoga para flexibilidade", Steps: []string{"Postura da montanha", "Cachorro olhando para baixo", "Postura da criança", "Relaxamento final"}},
	{ID: "easy-10", Name: "Pilates Básico", Difficulty: DifficultyEasy, Category: "yoga_pilates", Duration: "20 min", Calories: 85, Description: "Fortalecimento do core com movimentos controlados", Steps: []string{"Respiração diafragmática", "Elevação de pernas alternadas", "Pontes de glúteo"}},
	{ID: "easy-2", Name: "Alongamento Matinal", Difficulty: DifficultyEasy, Category: "alongamento", Duration: "15 min", Calories: 50, Description: "Sequência de alongamentos para despertar o corpo", Steps: []string{"Alongue pescoço e ombros", "Estique braços e pernas", "Faça rotações suaves"}},
	{ID: "easy-13", Name: "Respiração Profunda", Difficulty: DifficultyEasy, Category: "alongamento", Duration: "10 min", Calories: 20, Description: "Exercícios de respiração para relaxamento", Steps: []string{"Inspire contando até 4", "Segure por 4 segundos", "Expire lentamente por 6"}},
	{ID: "easy-4", Name: "Dança Livre", Difficulty: DifficultyEasy, Category: "danca", Duration: "20 min", Calories: 120, Description: "Dance suas músicas favoritas em casa", Steps: []string{"Escolha músicas animadas", "Movimente-se livremente", "Divirta-se e relaxe"}},
	{ID: "easy-8", Name: "Hidroginástica", Difficulty: DifficultyEasy, Category: "natacao_aquatico", Duration: "30 min", Calories: 200, Description: "Exercícios na água para baixo impacto", Steps: []string{"Entre na piscina", "Faça movimentos de caminhada", "Exercite braços e pernas"}},
	{ID: "easy-7", Name: "Bicicleta Estacionária", Difficulty: DifficultyEasy, Category: "ciclismo", Duration: "20 min", Calories: 100, Description: "Pedale em ritmo confortável", Steps: []string{"Ajuste o banco", "Pedale em ritmo leve", "Mantenha postura ereta"}},
	{ID: "easy-5", Name: "Subir Escadas", Difficulty: DifficultyEasy, Category: "funcional", Duration: "10 min", Calories: 80, Description: "Suba e desça escadas em ritmo leve", Steps: []string{"Comece devagar", "Aumente gradualmente", "Descanse quando necessário"}},
	{ID: "easy-23", Name: "Agachamento com Apoio", Difficulty: DifficultyEasy, Category: "funcional", Duration: "10 min", Calories: 50, Description: "Agachamentos segurando em uma cadeira", Steps: []string{"Segure na cadeira", "Desça lentamente", "Suba controladamente"}},
	{ID: "easy-42", Name: "Pingue Pongue", Difficulty: DifficultyEasy, Category: "esportes", Duration: "30 min", Calories: 150, Description: "Partida de tênis de mesa", Steps: []string{"Postura adequada", "Rebata a bola", "Movimente-se lateralmente"}},
	{ID: "easy-15", Name: "Jardinagem", Difficulty: DifficultyEasy, Category: "outros", Duration: "45 min", Calories: 150, Description: "Atividades de jardinagem como exercício", Steps: []string{"Plante e regue", "Arranque ervas daninhas", "Cave e revolva a terra"}},

	// Moderado
	{ID: "mod-1", Name: "Caminhada Acelerada", Difficulty: DifficultyModerate, Category: "caminhada", Duration: "40 min", Calories: 250, Description: "Caminhada em ritmo forte com inclinações", Steps: []string{"Aqueça por 5 minutos", "Alterne ritmo forte e moderado", "Inclua subidas no percurso"}},
	{ID: "mod-2", Name: "Corrida Leve", Difficulty: DifficultyModerate, Category: "corrida", Duration: "25 min", Calories: 280, Description: "Trote contínuo em ritmo conversável", Steps: []string{"Aqueça caminhando", "Trote sem perder o fôlego", "Desacelere gradualmente"}},
	{ID: "mod-3", Name: "Zumba", Difficulty: DifficultyModerate, Category: "danca", Duration: "40 min", Calories: 350, Description: "Aula de dança aeróbica com ritmos latinos", Steps: []string{"Acompanhe a coreografia", "Mantenha o ritmo", "Hidrate-se nos intervalos"}},
	{ID: "mod-4", Name: "Pilates Intermediário", Difficulty: DifficultyModerate, Category: "yoga_pilates", Duration: "30 min", Calories: 150, Description: "Sequências de pilates com maior exigência do core", Steps: []string{"Cem (the hundred)", "Prancha com variações", "Alongamento final"}},
	{ID: "mod-5", Name: "Natação Contínua", Difficulty: DifficultyModerate, Category: "natacao_aquatico", Duration: "30 min", Calories: 300, Description: "Nado crawl em ritmo constante", Steps: []string{"Aqueça com 2 voltas leves", "Nade 20 min sem parar", "Solte os braços ao final"}},
	{ID: "mod-6", Name: "Pedalada Urbana", Difficulty: DifficultyModerate, Category: "ciclismo", Duration: "45 min", Calories: 320, Description: "Pedale na cidade ou parque em ritmo firme", Steps: []string{"Verifique a bicicleta", "Mantenha cadência constante", "Use equipamento de segurança"}},
	{ID: "mod-7", Name: "Circuito Funcional", Difficulty: DifficultyModerate, Category: "funcional", Duration: "30 min", Calories: 300, Description: "Circuito de agachamentos, flexões e prancha", Steps: []string{"3 rodadas de 4 exercícios", "40s de trabalho, 20s de descanso", "Alongue ao final"}},
	{ID: "mod-8", Name: "Treino com Halteres", Difficulty: DifficultyModerate, Category: "musculacao", Duration: "35 min", Calories: 220, Description: "Treino de força para corpo inteiro com pesos leves", Steps: []string{"Agachamento com halteres", "Desenvolvimento de ombros", "Remada curvada"}},

	// Intenso
	{ID: "int-1", Name: "Corrida Intervalada", Difficulty: DifficultyIntense, Category: "corrida", Duration: "30 min", Calories: 400, Description: "Tiros de corrida alternados com recuperação", Steps: []string{"Aqueça por 10 minutos", "8 tiros de 1 min forte", "1 min de trote entre tiros"}},
	{ID: "int-2", Name: "HIIT Completo", Difficulty: DifficultyIntense, Category: "funcional", Duration: "25 min", Calories: 380, Description: "Treino intervalado de alta intensidade sem equipamento", Steps: []string{"Burpees", "Mountain climbers", "Agachamento com salto", "Descanso ativo de 30s"}},
	{ID: "int-3", Name: "Spinning", Difficulty: DifficultyIntense, Category: "ciclismo", Duration: "45 min", Calories: 500, Description: "Pedalada indoor com variações de carga", Steps: []string{"Aquecimento progressivo", "Subidas com carga alta", "Sprints finais"}},
	{ID: "int-4", Name: "Natação de Tiros", Difficulty: DifficultyIntense, Category: "natacao_aquatico", Duration: "40 min", Calories: 450, Description: "Séries de nado em velocidade máxima", Steps: []string{"Aqueça 200m", "10x50m forte", "Solte 100m"}},
	{ID: "int-5", Name: "Musculação Pesada", Difficulty: DifficultyIntense, Category: "musculacao", Duration: "50 min", Calories: 350, Description: "Treino de força com cargas desafiadoras", Steps: []string{"Agachamento livre", "Levantamento terra", "Supino", "Descanso de 90s entre séries"}},
	{ID: "int-6", Name: "Futebol", Difficulty: DifficultyIntense, Category: "esportes", Duration: "60 min", Calories: 550, Description: "Partida completa com corridas e sprints", Steps: []string{"Aqueça com alongamento dinâmico", "Jogue os dois tempos", "Hidrate-se nos intervalos"}},
}

// ExercisesByDifficulty filters the catalog by difficulty tier.
func ExercisesByDifficulty(difficulty string) []Exercise {
	out := make([]Exercise, 0)
	for _, e := range exercises {
		if e.Difficulty == difficulty {
			out = append(out, e)
		}
	}
	return out
}

// ExercisesByDifficultyAndCategory filters by tier and, when category is
// non-empty, by category.
func ExercisesByDifficultyAndCategory(difficulty, category string) []Exercise {
	out := make([]Exercise, 0)
	for _, e := range exercises {
		if e.Difficulty != difficulty {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CategoriesForDifficulty lists the categories that have at least one entry
// in the tier, in catalog order.
func CategoriesForDifficulty(difficulty string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, e := range exercises {
		if e.Difficulty != difficulty || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}
