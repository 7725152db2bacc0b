package service

import "match-service/internal/match/model"

const (
	MinLimit = 1
	MaxLimit = 10
)

func checkThreshold(name string, v int) error {
	if v < 0 || v > 100 {
		return configErr("%s %d out of range [0,100]", name, v)
	}
	return nil
}

func checkLimit(v int) error {
	if v < MinLimit || v > MaxLimit {
		return configErr("limit %d out of range [%d,%d]", v, MinLimit, MaxLimit)
	}
	return nil
}

// ValidateCriteria: все три критерия обязаны быть заполнены.
func ValidateCriteria(cs model.Criteria) error {
	for i, c := range cs {
		if c.Threshold < 0 || c.Threshold > 100 {
			return configErr("criterion %d: threshold %d out of range [0,100]", i+1, c.Threshold)
		}
		if c.LeftColumn == "" || c.RightColumn == "" {
			return configErr("criterion %d: left and right columns must be set", i+1)
		}
	}
	return nil
}

// Validate проверяет запрос целиком, до чтения данных.
func Validate(req model.Request) error {
	if req.LeftSheet == "" || req.RightSheet == "" {
		return configErr("both sheets must be selected")
	}
	if req.LeftSheet == req.RightSheet {
		return configErr("left and right sheet are the same (%q)", req.LeftSheet)
	}
	if req.LeftColumn == "" || req.RightColumn == "" {
		return configErr("match columns must be set")
	}
	if req.Mode != model.ModeSimilarity && req.Mode != model.ModeKeyword {
		return configErr("unknown mode %q", req.Mode)
	}
	// keyword их не использует, но проверяем одинаково
	if err := checkThreshold("threshold", req.Threshold); err != nil {
		return err
	}
	if err := checkLimit(req.Limit); err != nil {
		return err
	}
	if req.SelfDecide != nil {
		return ValidateCriteria(*req.SelfDecide)
	}
	return nil
}
