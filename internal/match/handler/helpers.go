package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"match-service/internal/config"
	"match-service/internal/match/model"
	"match-service/internal/match/service"
)

// errBadForm: кривые параметры формы, 400
var errBadForm = errors.New("bad form")

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// intParam: пусто → def, не число → ошибка (молча дефолт тут не подставляем).
func intParam(r *http.Request, name string, def int) (int, error) {
	s := strings.TrimSpace(r.FormValue(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadForm, name, s)
	}
	return n, nil
}

// parseRequest: параметры прогона из формы. Имена листов подставляет вызывающий.
func parseRequest(r *http.Request, cfg config.Config) (model.Request, error) {
	var req model.Request
	var err error

	req.LeftColumn = strings.TrimSpace(r.FormValue("left_col"))
	req.RightColumn = strings.TrimSpace(r.FormValue("right_col"))
	if req.Threshold, err = intParam(r, "threshold", cfg.DefaultThreshold); err != nil {
		return req, err
	}
	if req.Limit, err = intParam(r, "limit", cfg.DefaultLimit); err != nil {
		return req, err
	}
	if req.Mode, err = model.ParseMode(r.FormValue("mode")); err != nil {
		return req, fmt.Errorf("%w: %v", errBadForm, err)
	}

	if toBool(r.FormValue("self_decide"), false) {
		cs, err := parseCriteria(r)
		if err != nil {
			return req, err
		}
		req.SelfDecide = &cs
	}
	return req, nil
}

// parseCriteria: sd1_threshold, sd1_left, sd1_right, sd1_skip_blank ... sd3_*
func parseCriteria(r *http.Request) (model.Criteria, error) {
	var cs model.Criteria
	for i := range cs {
		p := fmt.Sprintf("sd%d_", i+1)
		th, err := intParam(r, p+"threshold", model.DefaultCriterionThreshold)
		if err != nil {
			return cs, err
		}
		cs[i] = model.Criterion{
			Threshold:         th,
			LeftColumn:        strings.TrimSpace(r.FormValue(p + "left")),
			RightColumn:       strings.TrimSpace(r.FormValue(p + "right")),
			IgnoreIfBothBlank: toBool(r.FormValue(p+"skip_blank"), false),
		}
	}
	return cs, nil
}

// statusFor: ошибки параметров и данных → 400, остальное → 500.
func statusFor(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadForm),
		errors.Is(err, service.ErrConfig),
		errors.Is(err, service.ErrMissingColumn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) int {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	_ = writeJSON(w, status, map[string]string{"error": msg})
	return status
}
