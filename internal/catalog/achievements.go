package catalog

// Metrics an achievement can track.
const (
	MetricCapsuleDays = "capsule_days"
	MetricWaterDays   = "water_days"
	MetricWaterStreak = "water_streak"
)

// Achievement is a static definition; the user's standing against it is
// computed from progress counters.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
	Threshold   int    `json:"threshold"`
}

var achievements = []Achievement{
	{ID: "first-capsule", Name: "Primeiro Passo", Description: "Tomou sua primeira cápsula", Metric: MetricCapsuleDays, Threshold: 1},
	{ID: "week-capsule", Name: "Semana Completa", Description: "7 dias tomando a cápsula", Metric: MetricCapsuleDays, Threshold: 7},
	{ID: "month-capsule", Name: "Mês de Dedicação", Description: "30 dias tomando a cápsula", Metric: MetricCapsuleDays, Threshold: 30},
	{ID: "hydration-start", Name: "Hidratação Iniciada", Description: "Primeiro dia batendo meta de água", Metric: MetricWaterDays, Threshold: 1},
	{ID: "hydration-week", Name: "Semana Hidratada", Description: "7 dias batendo a meta de água", Metric: MetricWaterDays, Threshold: 7},
	{ID: "consistency", Name: "Consistência", Description: "15 dias de cápsula", Metric: MetricCapsuleDays, Threshold: 15},
	{ID: "master", Name: "Mestre LeveFit", Description: "60 dias de tratamento", Metric: MetricCapsuleDays, Threshold: 60},
	{ID: "fire", Name: "Em Chamas", Description: "3 dias seguidos de hidratação", Metric: MetricWaterStreak, Threshold: 3},
}

// Achievements returns the definitions in display order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}
