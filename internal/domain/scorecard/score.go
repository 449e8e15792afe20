package scorecard

// ComputeScore returns the weighted achievement percentage for one period's
// KPI values. Each KPI contributes weight * min(actual/target, 1); KPIs with
// a non-positive target or weight are skipped. Returns 0 when nothing is
// scorable.
func ComputeScore(kpis []KPI, values map[string]float64) float64 {
	var totalWeight, achieved float64
	for _, kpi := range kpis {
		if kpi.Weight <= 0 || kpi.Target <= 0 {
			continue
		}
		totalWeight += kpi.Weight
		ratio := values[kpi.ID] / kpi.Target
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
		achieved += kpi.Weight * ratio
	}
	if totalWeight == 0 {
		return 0
	}
	return achieved / totalWeight * 100
}
