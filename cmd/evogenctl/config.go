package main

import (
	"encoding/json"
	"os"

	evoapi "evogen/pkg/evogen"
)

func loadRunRequestFromConfig(path string) (evoapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return evoapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return evoapi.RunRequest{}, err
	}

	var req evoapi.RunRequest
	if v, ok := asString(raw["problem"]); ok {
		req.Problem = v
	}
	if v, ok := asInt(raw["population"]); ok {
		req.Population = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		req.Generations = v
	}
	if v, ok := asFloat64(raw["crossover_prob"]); ok {
		req.CrossoverProb = &v
	}
	if v, ok := asFloat64(raw["mutation_prob"]); ok {
		req.MutationProb = &v
	}
	if v, ok := asInt(raw["solutions"]); ok {
		req.Solutions = v
	}
	if v, ok := asInt(raw["breed_size"]); ok {
		req.BreedSize = v
	}
	if v, ok := asInt(raw["parent_pairs"]); ok {
		req.ParentPairs = v
	}
	if v, ok := asInt(raw["eval_budget"]); ok {
		req.EvalBudget = v
	}
	if v, ok := asInt(raw["restart_tolerance"]); ok {
		req.RestartTolerance = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asString(raw["mating"]); ok {
		req.Mating = v
	}
	if v, ok := asString(raw["survivor"]); ok {
		req.Survivor = v
	}
	if values, ok := raw["collectors"].([]any); ok {
		for _, value := range values {
			if v, ok := asString(value); ok {
				req.Collectors = append(req.Collectors, v)
			}
		}
	}
	return req, nil
}

func overrideFromFlags(req *evoapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "problem":
			req.Problem = v.(string)
		case "pop":
			req.Population = v.(int)
		case "gens":
			req.Generations = v.(int)
		case "crossover-prob":
			req.CrossoverProb = v.(*float64)
		case "mutation-prob":
			req.MutationProb = v.(*float64)
		case "solutions":
			req.Solutions = v.(int)
		case "breed-size":
			req.BreedSize = v.(int)
		case "pairs":
			req.ParentPairs = v.(int)
		case "evals":
			req.EvalBudget = v.(int)
		case "restart-tolerance":
			req.RestartTolerance = v.(int)
		case "seed":
			req.Seed = v.(int64)
		case "mating":
			req.Mating = v.(string)
		case "survivor":
			req.Survivor = v.(string)
		}
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
